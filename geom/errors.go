// SPDX-License-Identifier: EPL-2.0

package geom

import "errors"

var (
	// ErrInvalidInterval is returned when an interval starts after it ends.
	ErrInvalidInterval = errors.New("geom: interval start is after its end")
	// ErrEmptySchedule is returned when a union is requested over no intervals.
	ErrEmptySchedule = errors.New("geom: no intervals to join")
)
