// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/soundobjects/audio"
	"github.com/ik5/soundobjects/formats/internal/pcmsource"
)

const pcmFormat = 1

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcmsource.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil || dec.NumChans == 0 {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	if err := pcmsource.CheckBitDepth(int(dec.BitDepth)); err != nil {
		return nil, err
	}
	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, ErrPCMNotFound
	}
	// The riff chunk reader is the whole file and its size includes the pad
	// byte; stop at the last whole frame.
	frameBytes := int(dec.BitDepth) / 8 * int(dec.NumChans)
	dec.PCMChunk.R = io.LimitReader(dec.PCMChunk.R, int64(dec.PCMSize-dec.PCMSize%frameBytes))

	return pcmsource.New(dec, int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth)), nil
}
