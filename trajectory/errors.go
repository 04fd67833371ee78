// SPDX-License-Identifier: EPL-2.0

package trajectory

import "errors"

var (
	ErrInvalidRoomSize  = errors.New("trajectory: room size must be positive")
	ErrInvalidFPS       = errors.New("trajectory: fps must be positive")
	ErrInvalidTolerance = errors.New("trajectory: tolerance must not be negative")
	ErrEmptyGroup       = errors.New("trajectory: group has no members")
)
