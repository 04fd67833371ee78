// SPDX-License-Identifier: EPL-2.0

// Package pcmsource adapts go-audio integer PCM decoders to audio.Source.
package pcmsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/soundobjects/utils"
)

var ErrUnsupportedBitDepth = errors.New("pcmsource: only 16, 24 and 32 bit PCM is supported")

// Reader is the part of the go-audio wav and aiff decoders used here.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	buf        *goaudio.IntBuffer
	done       bool
}

// CheckBitDepth reports whether bitDepth can be scaled to float samples.
func CheckBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	}

	return fmt.Errorf("%w: got %d", ErrUnsupportedBitDepth, bitDepth)
}

func New(dec Reader, sampleRate, channels, bitDepth int) *Source {
	return &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: &goaudio.Format{NumChannels: s.channels, SampleRate: s.sampleRate},
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.PCMToFloat(v, s.bitDepth)
	}

	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	if err == io.EOF || n < len(dst) {
		s.done = true
		return n, io.EOF
	}

	return n, nil
}

// ReadSeeker returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return bytes.NewReader(data), nil
}
