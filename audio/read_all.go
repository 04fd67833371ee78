// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// ReadAll drains src and returns every sample it produced.
func ReadAll(src Source, bufferSize int) ([]float32, error) {
	if bufferSize < src.Channels() {
		bufferSize = 4096
	}
	bufferSize -= bufferSize % src.Channels()

	out := make([]float32, 0, bufferSize)
	buf := make([]float32, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF || (n == 0 && err == nil) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
	}
}

// ResampleToMono runs src through a Resampler and a MonoMixer and collects
// the result at targetRate.
func ResampleToMono(src Source, targetRate int, bufferSize int) ([]float32, error) {
	if targetRate <= 0 {
		return nil, ErrInvalidRate
	}

	mono := NewMonoMixer(NewResampler(src, targetRate))

	return ReadAll(mono, bufferSize)
}
