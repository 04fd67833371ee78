// SPDX-License-Identifier: EPL-2.0

package spot

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/soundbank"
)

type Mode string

const (
	StartFrame     Mode = "START_FRAME"
	MinDistance    Mode = "MIN_DISTANCE"
	Random         Mode = "RANDOM"
	RandomGaussian Mode = "RANDOM_GAUSSIAN"
)

// ParseMode accepts a mode name in any case, with "-" for "_".
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToUpper(strings.ReplaceAll(s, "-", "_")))
	switch m {
	case StartFrame, MinDistance, Random, RandomGaussian:
		return m, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Placement holds what Place needs to put one clip on the timeline.
type Placement struct {
	Mode Mode
	// Frames is the scene frame range.
	Frames   geom.FrameInterval
	Envelope Envelope
	Sound    soundbank.Info
	// SyncPeak moves the clip back so its peak falls on the trigger frame.
	SyncPeak bool
	// StdDev is the spread of RANDOM_GAUSSIAN in frames.
	StdDev float64
	Rand   *rand.Rand
}

// Place returns the inclusive frame window of the clip.
func Place(p Placement) (geom.FrameInterval, error) {
	var start int

	switch p.Mode {
	case StartFrame:
		start = p.Frames.Start
	case MinDistance:
		start = p.Envelope.Closest
	case Random:
		if p.Rand == nil {
			return geom.FrameInterval{}, fmt.Errorf("%w: %s", ErrNoRand, p.Mode)
		}
		span := float64(p.Frames.End - p.Frames.Start)
		start = p.Frames.Start + int(math.Floor(p.Rand.Float64()*span))
	case RandomGaussian:
		if p.Rand == nil {
			return geom.FrameInterval{}, fmt.Errorf("%w: %s", ErrNoRand, p.Mode)
		}
		if p.StdDev < 0 {
			return geom.FrameInterval{}, fmt.Errorf("%w: %v", ErrInvalidStdDev, p.StdDev)
		}
		// Centred on the middle of the window, not on its length from frame 0.
		mean := float64(p.Frames.Start) + float64(p.Frames.End-p.Frames.Start)/2
		start = int(math.Floor(p.Rand.NormFloat64()*p.StdDev + mean))
	default:
		return geom.FrameInterval{}, fmt.Errorf("%w: %q", ErrUnknownMode, p.Mode)
	}

	if p.SyncPeak {
		start -= int(p.Sound.PeakFrame)
	}
	start = max(start, 0)

	length := max(int(math.Ceil(p.Sound.Frames)), 1)

	return geom.FrameInterval{Start: start, End: start + length - 1}, nil
}
