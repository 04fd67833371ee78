// SPDX-License-Identifier: EPL-2.0

package bwf

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

const pcmFormat = 1

// Chunk IDs of the export metadata.
const (
	BextID = "bext"
	AxmlID = "axml"
	ChnaID = "chna"
)

// Chunk is one RIFF sub chunk.
type Chunk struct {
	ID   string
	Data []byte
}

type Writer struct {
	enc      *wav.Encoder
	chunks   []Chunk
	channels int
	frames   int
	closed   bool
}

// NewWriter starts an interleaved PCM file on w. w is not closed by the
// writer.
func NewWriter(w io.WriteSeeker, sampleRate, bitDepth, channels int) (*Writer, error) {
	switch {
	case sampleRate <= 0, channels <= 0, channels > 0xffff:
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFormat, channels, sampleRate)
	case bitDepth != 16 && bitDepth != 24 && bitDepth != 32:
		return nil, fmt.Errorf("%w: %d bit", ErrInvalidFormat, bitDepth)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, channels, pcmFormat)
	// Lays down the header and data chunk id even if no frame follows.
	empty := &goaudio.IntBuffer{Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}}
	if err := enc.Write(empty); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &Writer{enc: enc, channels: channels}, nil
}

func (w *Writer) Channels() int { return w.channels }

// Frames is the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }

// AddChunk queues a chunk to follow the sample data.
func (w *Writer) AddChunk(id string, data []byte) error {
	if w.closed {
		return ErrClosed
	}
	if len(id) != 4 {
		return fmt.Errorf("%w: %q", ErrInvalidChunkID, id)
	}
	switch [4]byte([]byte(id)) {
	case riff.RiffID, riff.FmtID, riff.DataFormatID:
		return fmt.Errorf("%w: %q", ErrReservedChunk, id)
	}

	w.chunks = append(w.chunks, Chunk{ID: id, Data: data})
	return nil
}

// Write appends interleaved frames.
func (w *Writer) Write(buf *goaudio.IntBuffer) error {
	if w.closed {
		return ErrClosed
	}
	if buf.Format == nil || buf.Format.NumChannels != w.channels {
		return ErrChannelCount
	}

	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	w.frames += buf.NumFrames()

	return nil
}

func (w *Writer) pad(n int) error {
	if n%2 == 0 {
		return nil
	}
	return w.enc.AddLE(uint8(0))
}

// Close writes the queued chunks and patches the RIFF and data sizes.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.pad(w.frames * w.channels * w.enc.BitDepth / 8); err != nil {
		return fmt.Errorf("%w", err)
	}

	for _, c := range w.chunks {
		if err := w.enc.AddLE([]byte(c.ID)); err != nil {
			return fmt.Errorf("%s chunk: %w", c.ID, err)
		}
		if err := w.enc.AddLE(uint32(len(c.Data))); err != nil {
			return fmt.Errorf("%s chunk: %w", c.ID, err)
		}
		if err := w.enc.AddLE(c.Data); err != nil {
			return fmt.Errorf("%s chunk: %w", c.ID, err)
		}
		if err := w.pad(len(c.Data)); err != nil {
			return fmt.Errorf("%s chunk: %w", c.ID, err)
		}
	}

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
