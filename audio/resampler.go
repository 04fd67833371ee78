// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/soundobjects/utils"
)

// Resampler streams src at another sample rate using Catmull-Rom interpolation
// over a four frame window. Channel count is preserved. A one-pole low-pass
// filter softens aliasing when downsampling.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	window [4][]float32 // frames idx-1, idx, idx+1, idx+2
	real   [4]bool      // false for frames duplicated past the end
	primed bool
	pos    float64

	in      []float32
	inPos   int
	inLen   int
	drained bool

	lowPass bool
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		in:       make([]float32, 4096-4096%channels),
		state:    make([]float32, channels),
	}
	r.lowPass = r.step > 1
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// nextFrame copies the next source frame into dst. It reports false once the
// source is drained.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	for r.inPos >= r.inLen {
		if r.drained {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		switch {
		case err == io.EOF, n == 0 && err == nil:
			r.drained = true
		case err != nil:
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowPass {
		for c := range dst {
			dst[c] = 0.5*dst[c] + 0.5*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}

// load fills slot i from the source, duplicating slot i-1 past the end.
func (r *Resampler) load(i int) error {
	ok, err := r.nextFrame(r.window[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[i], r.window[i-1])
	}
	r.real[i] = ok

	return nil
}

func (r *Resampler) prime() (bool, error) {
	r.primed = true

	ok, err := r.nextFrame(r.window[1])
	if err != nil || !ok {
		return false, err
	}
	if r.lowPass {
		copy(r.state, r.window[1])
	}
	copy(r.window[0], r.window[1])
	r.real[1] = true

	if err := r.load(2); err != nil {
		return false, err
	}
	if err := r.load(3); err != nil {
		return false, err
	}

	return true, nil
}

func (r *Resampler) shift() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.real[:], r.real[1:])
	r.window[3] = first

	return r.load(3)
}

// ReadSamples produces interleaved samples at the destination rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.step == 1 {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1 {
			r.pos--
			if err := r.shift(); err != nil {
				return written, err
			}
		}
		if !r.real[1] {
			return written, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}
		written += r.channels
		r.pos += r.step
	}

	return written, nil
}
