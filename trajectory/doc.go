// SPDX-License-Identifier: EPL-2.0

// Package trajectory turns the motion of an object group into ADM position
// blocks.
//
// Every frame of the group's span is sampled: the active member's location
// is taken relative to the camera, normalized to the room, and compared to
// the position of the current block. An equal position extends the block by
// one frame, anything else opens a new one. Frames between members hold the
// current block so the blocks always cover the whole span.
//
// Equality is exact by default. Sampler.Tolerance switches to an L∞
// comparison for scenes with numeric jitter.
package trajectory
