// SPDX-License-Identifier: EPL-2.0

package trajectory

import (
	"fmt"

	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/partition"
	"github.com/ik5/soundobjects/scene"
)

type Sampler struct {
	Positions scene.PositionSource
	RoomSize  float64
	// Tolerance is the largest L∞ distance still treated as the same
	// position. Zero means exact equality.
	Tolerance float64
	FPS       int
}

func (s Sampler) validate() error {
	switch {
	case !(s.RoomSize > 0):
		return fmt.Errorf("%w: %v", ErrInvalidRoomSize, s.RoomSize)
	case s.FPS <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidFPS, s.FPS)
	case s.Tolerance < 0:
		return fmt.Errorf("%w: %v", ErrInvalidTolerance, s.Tolerance)
	}

	return nil
}

func (s Sampler) same(a, b geom.Vec3) bool {
	if s.Tolerance == 0 {
		return a == b
	}
	return a.Sub(b).Chebyshev() <= s.Tolerance
}

// Position is the room-normalized position of name at frame.
func (s Sampler) Position(name string, frame int) (geom.Vec3, error) {
	target, err := s.Positions.TransformAt(name, frame)
	if err != nil {
		return geom.Vec3{}, fmt.Errorf("%w", err)
	}
	camera, err := s.Positions.CameraAt(frame)
	if err != nil {
		return geom.Vec3{}, fmt.Errorf("%w", err)
	}

	return geom.RoomNorm(geom.RelativeVector(camera, target), s.RoomSize), nil
}

// Sample compacts the group's motion into blocks covering its span.
func (s Sampler) Sample(g partition.Group) ([]Block, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if len(g.Members) == 0 {
		return nil, ErrEmptyGroup
	}

	span := g.Span()
	var blocks []Block

	for f := span.Start; f <= span.End; f++ {
		member, ok := g.At(f)
		if !ok {
			blocks[len(blocks)-1].Frames++
			continue
		}

		pos, err := s.Position(member.Name, f)
		if err != nil {
			return nil, fmt.Errorf("%s at frame %d: %w", member.Name, f, err)
		}

		if n := len(blocks); n > 0 && s.same(pos, blocks[n-1].Position) {
			blocks[n-1].Frames++
			continue
		}

		blocks = append(blocks, Block{
			Position:   pos,
			StartFrame: f,
			Frames:     1,
			FPS:        s.FPS,
			Jump:       true,
		})
	}

	return blocks, nil
}
