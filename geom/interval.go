// SPDX-License-Identifier: EPL-2.0

package geom

import "fmt"

// FrameInterval is an inclusive range of scene frames.
type FrameInterval struct {
	Start int `yaml:"frame_start"`
	End   int `yaml:"frame_end"`
}

// Valid reports whether the interval can take part in overlap tests.
func (fi FrameInterval) Valid() bool { return fi.Start <= fi.End }

// Len is the number of frames covered, both ends included.
func (fi FrameInterval) Len() int {
	if !fi.Valid() {
		return 0
	}
	return fi.End - fi.Start + 1
}

// Contains reports whether frame lies inside the interval.
func (fi FrameInterval) Contains(frame int) bool {
	return fi.Start <= frame && frame <= fi.End
}

// Overlaps reports whether the two intervals share at least one frame.
func (fi FrameInterval) Overlaps(other FrameInterval) bool {
	return fi.Contains(other.Start) || other.Contains(fi.Start)
}

func (fi FrameInterval) String() string {
	return fmt.Sprintf("[%d,%d]", fi.Start, fi.End)
}

// Union returns the smallest interval covering every interval in list.
// An empty list yields ErrEmptySchedule and a malformed member ErrInvalidInterval.
func Union(list []FrameInterval) (FrameInterval, error) {
	if len(list) == 0 {
		return FrameInterval{}, ErrEmptySchedule
	}

	out := list[0]
	for _, fi := range list {
		if !fi.Valid() {
			return FrameInterval{}, fmt.Errorf("%w: %s", ErrInvalidInterval, fi)
		}
		out.Start = min(out.Start, fi.Start)
		out.End = max(out.End, fi.End)
	}

	return out, nil
}
