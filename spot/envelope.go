// SPDX-License-Identifier: EPL-2.0

package spot

import (
	"fmt"
	"math"

	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/scene"
)

// DefaultRange is the camera distance under which a source counts as near.
const DefaultRange = 5.0

// Envelope follows one source relative to the camera.
type Envelope struct {
	Range float64
	// Enters is the first frame inside Range; valid when Entered is set.
	Enters  int
	Entered bool
	// Exits is the first frame back outside Range; valid when Exited is set.
	Exits  int
	Exited bool
	// Closest is the first frame at MinDistance among the scanned frames.
	Closest     int
	MinDistance float64
}

// NewEnvelope scans frames until the source leaves the range it entered, or
// until the end of frames.
func NewEnvelope(ps scene.PositionSource, name string, frames geom.FrameInterval, consideredRange float64) (Envelope, error) {
	if !(consideredRange > 0) {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidRange, consideredRange)
	}

	env := Envelope{Range: consideredRange, Closest: frames.Start, MinDistance: math.MaxFloat64}
	inRange := false

	for f := frames.Start; f <= frames.End; f++ {
		target, err := ps.TransformAt(name, f)
		if err != nil {
			return Envelope{}, fmt.Errorf("%w", err)
		}
		camera, err := ps.CameraAt(f)
		if err != nil {
			return Envelope{}, fmt.Errorf("%w", err)
		}
		d := target.Location.Sub(camera.Location).Norm()

		if d < consideredRange && !inRange {
			env.Enters, env.Entered, inRange = f, true, true
		}
		if d < env.MinDistance {
			env.Closest, env.MinDistance = f, d
		}
		if d > consideredRange && inRange {
			env.Exits, env.Exited = f, true
			break
		}
	}

	return env, nil
}
