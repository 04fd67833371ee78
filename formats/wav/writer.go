// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/soundobjects/formats/internal/pcmsource"
	"github.com/ik5/soundobjects/utils"
)

const writeChunk = 8192

// WriteMono writes float samples as a mono integer PCM WAV file. Samples are
// clamped to [-1,1]. w is not closed.
func WriteMono(w io.WriteSeeker, sampleRate, bitDepth int, samples []float32) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidWriteParams, sampleRate)
	}
	if err := pcmsource.CheckBitDepth(bitDepth); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWriteParams, err)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, 0, min(len(samples), writeChunk)),
		SourceBitDepth: bitDepth,
	}

	dataBytes := len(samples) * bitDepth / 8

	// An empty first write still lays down the header and data chunk id.
	for first := true; first || len(samples) > 0; first = false {
		part := samples[:min(len(samples), writeChunk)]
		samples = samples[len(part):]

		buf.Data = buf.Data[:len(part)]
		for i, s := range part {
			buf.Data[i] = utils.FloatToPCM(s, bitDepth)
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if dataBytes%2 == 1 {
		if err := enc.AddLE(uint8(0)); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
