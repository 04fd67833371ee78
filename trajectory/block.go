// SPDX-License-Identifier: EPL-2.0

package trajectory

import (
	"math/big"

	"github.com/ik5/soundobjects/geom"
)

// Block is a run of frames with one normalized position.
type Block struct {
	Position   geom.Vec3
	StartFrame int
	Frames     int
	FPS        int
	// Jump asks the renderer to move to Position within
	// InterpolationLength instead of ramping from the previous block.
	Jump bool
}

// Start is StartFrame in seconds.
func (b Block) Start() *big.Rat {
	return big.NewRat(int64(b.StartFrame), int64(b.FPS))
}

func (b Block) Duration() *big.Rat {
	return big.NewRat(int64(b.Frames), int64(b.FPS))
}

// InterpolationLength is half a frame.
func (b Block) InterpolationLength() *big.Rat {
	return big.NewRat(1, 2*int64(b.FPS))
}

// EndFrame is the first frame after the block.
func (b Block) EndFrame() int {
	return b.StartFrame + b.Frames
}
