// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const pcmFormat = 1

// fullReader turns short reads into full ones so go-audio never sees a
// partial sample.
type fullReader struct{ r io.Reader }

func (f fullReader) Read(p []byte) (int, error) {
	n, err := io.ReadFull(f.r, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	return n, err
}

// Reader streams the integer samples of a mono mixdown.
type Reader struct {
	file       *os.File
	dec        *wav.Decoder
	buf        *goaudio.IntBuffer
	frames     int
	pos        int
	sampleRate int
	bitDepth   int
}

// OpenReader opens a mono integer PCM WAV file.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	r, err := newReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}

func newReader(f *os.File) (*Reader, error) {
	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrNotPCM, dec.WavAudioFormat)
	}
	if dec.NumChans != 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrNotMono, dec.NumChans)
	}
	switch dec.BitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bit", ErrNotPCM, dec.BitDepth)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	sampleBytes := int(dec.BitDepth) / 8
	frames := dec.PCMSize / sampleBytes
	dec.PCMChunk.R = fullReader{r: io.LimitReader(dec.PCMChunk.R, int64(frames*sampleBytes))}

	return &Reader{
		file:       f,
		dec:        dec,
		buf:        &goaudio.IntBuffer{Format: &goaudio.Format{NumChannels: 1, SampleRate: int(dec.SampleRate)}},
		frames:     frames,
		sampleRate: int(dec.SampleRate),
		bitDepth:   int(dec.BitDepth),
	}, nil
}

// Len is the number of samples in the file.
func (r *Reader) Len() int        { return r.frames }
func (r *Reader) SampleRate() int { return r.sampleRate }
func (r *Reader) BitDepth() int   { return r.bitDepth }

// Read fills dst with the next samples and returns io.EOF once every sample
// has been read.
func (r *Reader) Read(dst []int) (int, error) {
	if r.pos >= r.frames {
		return 0, io.EOF
	}

	r.buf.Data = dst[:min(len(dst), r.frames-r.pos)]
	if len(r.buf.Data) == 0 {
		return 0, nil
	}

	n, err := r.dec.PCMBuffer(r.buf)
	r.pos += n
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: %d of %d samples", ErrShortRead, r.pos, r.frames)
	}

	return n, nil
}

func (r *Reader) Close() error {
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
