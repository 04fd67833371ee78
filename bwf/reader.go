// SPDX-License-Identifier: EPL-2.0

package bwf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

// Info is the chunk table of a file. Chunks holds every chunk except the
// sample data, whose padded size is kept in DataSize.
type Info struct {
	Chunks   []Chunk
	DataSize int
}

// Chunk returns the first chunk with id.
func (i *Info) Chunk(id string) ([]byte, bool) {
	for _, c := range i.Chunks {
		if c.ID == id {
			return c.Data, true
		}
	}
	return nil, false
}

// Bext decodes the bext chunk.
func (i *Info) Bext() (*Bext, error) {
	data, ok := i.Chunk(BextID)
	if !ok {
		return nil, fmt.Errorf("%w: no bext chunk", ErrBextSize)
	}

	var b Bext
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &b, nil
}

// ReadChunks walks the RIFF chunks of r. Padded payloads keep their pad
// byte, so text chunks may end in a NUL.
func ReadChunks(r io.Reader) (*Info, error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWave, err)
	}
	if p.Format != riff.WavFormatID {
		return nil, fmt.Errorf("%w: form %q", ErrNotWave, p.Format[:])
	}

	info := &Info{}
	for {
		ch, err := p.NextChunk()
		if errors.Is(err, io.EOF) {
			return info, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if ch.ID == riff.DataFormatID {
			info.DataSize = ch.Size
			if _, err := io.CopyN(io.Discard, ch.R, int64(ch.Size)); err != nil {
				return nil, fmt.Errorf("data chunk: %w", err)
			}
			continue
		}

		data := make([]byte, ch.Size)
		if _, err := io.ReadFull(ch.R, data); err != nil {
			return nil, fmt.Errorf("%s chunk: %w", ch.ID[:], err)
		}
		info.Chunks = append(info.Chunks, Chunk{ID: string(ch.ID[:]), Data: data})
	}
}

// XML returns an axml payload without its pad byte.
func XML(data []byte) []byte {
	return bytes.TrimRight(data, "\x00")
}

// ReadPCM decodes every interleaved sample of rs.
func ReadPCM(rs io.ReadSeeker) (*goaudio.IntBuffer, error) {
	dec := wav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWave, err)
	}

	frameBytes := int(dec.BitDepth) / 8 * int(dec.NumChans)
	if dec.WavAudioFormat != pcmFormat || frameBytes == 0 {
		return nil, fmt.Errorf("%w: format %d, %d bytes per frame", ErrInvalidFormat, dec.WavAudioFormat, frameBytes)
	}
	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, fmt.Errorf("%w: no data chunk", ErrNotWave)
	}
	dec.PCMChunk.R = io.LimitReader(dec.PCMChunk.R, int64(dec.PCMSize-dec.PCMSize%frameBytes))

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return buf, nil
}
