// SPDX-License-Identifier: EPL-2.0

package partition

import (
	"fmt"
	"math"

	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/scene"
)

// Scene is the part of a host the partitioner reads.
type Scene interface {
	scene.PositionSource
	FrameRange() geom.FrameInterval
	Sources() []scene.Source
}

// Result is the outcome of one partitioning pass.
type Result struct {
	Groups   []Group
	Overflow []Group
	// Skipped names sources without a usable activation schedule.
	Skipped []string
}

// ClosestApproach scans every frame of frames and returns the smallest
// distance between the source and the camera and the first frame it occurs.
func ClosestApproach(ps scene.PositionSource, name string, frames geom.FrameInterval) (float64, int, error) {
	best, at := math.MaxFloat64, frames.Start

	for f := frames.Start; f <= frames.End; f++ {
		target, err := ps.TransformAt(name, f)
		if err != nil {
			return 0, 0, fmt.Errorf("%w", err)
		}
		camera, err := ps.CameraAt(f)
		if err != nil {
			return 0, 0, fmt.Errorf("%w", err)
		}

		if d := target.Location.Sub(camera.Location).Norm(); d < best {
			best, at = d, f
		}
	}

	return best, at, nil
}

// Candidates turns the scene's sources into candidates. Sources without a
// valid activation schedule are left out and named in skipped.
func Candidates(sc Scene, log *logger.Logger) (cands []Candidate, skipped []string, err error) {
	log = logger.OrDefault(log)
	frames := sc.FrameRange()
	if !frames.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmptyScene, frames)
	}

	for _, src := range sc.Sources() {
		interval, err := scene.ActivityRange(src)
		if err != nil {
			log.Warn().Err(err).Str("source", src.Name()).Msg("source skipped")
			skipped = append(skipped, src.Name())
			continue
		}

		dist, at, err := ClosestApproach(sc, src.Name(), frames)
		if err != nil {
			return nil, nil, fmt.Errorf("closest approach of %s: %w", src.Name(), err)
		}

		cands = append(cands, Candidate{
			Name:         src.Name(),
			Interval:     interval,
			Priority:     dist,
			ClosestFrame: at,
		})
	}

	return cands, skipped, nil
}

// Partition groups the sources of sc into at most maxGroups objects.
func Partition(sc Scene, maxGroups int, log *logger.Logger) (Result, error) {
	if maxGroups < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrNegativeMax, maxGroups)
	}
	log = logger.OrDefault(log)

	cands, skipped, err := Candidates(sc, log)
	if err != nil {
		return Result{}, err
	}

	groups, overflow := Assign(cands, maxGroups)
	res := Result{Groups: groups, Overflow: overflow, Skipped: skipped}

	for i, g := range groups {
		log.Debug().Int("object", i).Str("name", g.Name()).Strs("members", g.Names()).Msg("object group")
	}
	for _, g := range overflow {
		log.Warn().Str("name", g.Name()).Strs("members", g.Names()).Msg("object limit reached, group dropped")
	}
	log.Info().
		Int("objects", len(groups)).
		Int("sources", len(cands)).
		Int("ignored", len(skipped)).
		Int("overflow", len(overflow)).
		Msg("partitioned sources")

	return res, nil
}
