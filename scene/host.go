// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"context"
	"fmt"

	"github.com/ik5/soundobjects/geom"
)

// Source is a sound emitter with scheduled activation windows.
type Source interface {
	Name() string
	ActiveIntervals() []geom.FrameInterval
}

// PositionSource answers transform queries. Implementations that move a
// timeline cursor to answer must put it back before returning.
type PositionSource interface {
	TransformAt(name string, frame int) (geom.Transform, error)
	CameraAt(frame int) (geom.Transform, error)
}

// Mixer controls mute flags and renders what is audible.
type Mixer interface {
	Muted(name string) bool
	SetMuted(name string, muted bool) error
	RenderMonoMixdown(ctx context.Context, path string, bitDepth int) error
}

type Host interface {
	PositionSource
	Mixer

	Name() string
	FrameRange() geom.FrameInterval
	FPS() int
	SampleRate() int
	Sources() []Source
}

// ActivityRange is the span from the earliest activation start to the
// latest activation end of src.
func ActivityRange(src Source) (geom.FrameInterval, error) {
	intervals := src.ActiveIntervals()
	if len(intervals) == 0 {
		return geom.FrameInterval{}, fmt.Errorf("%w: %s", ErrNoActivation, src.Name())
	}

	fi, err := geom.Union(intervals)
	if err != nil {
		return geom.FrameInterval{}, fmt.Errorf("%s: %w", src.Name(), err)
	}

	return fi, nil
}

// Names lists the names of sources in order.
func Names(sources []Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.Name()
	}

	return out
}
