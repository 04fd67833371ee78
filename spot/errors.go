// SPDX-License-Identifier: EPL-2.0

package spot

import "errors"

var (
	ErrUnknownMode   = errors.New("spot: unknown trigger mode")
	ErrNoRand        = errors.New("spot: random trigger mode needs a random source")
	ErrInvalidStdDev = errors.New("spot: standard deviation must not be negative")
	ErrInvalidRange  = errors.New("spot: considered range must be positive")
)
