// SPDX-License-Identifier: EPL-2.0

package partition

import (
	"cmp"
	"slices"

	"github.com/ik5/soundobjects/geom"
)

// Candidate is a playable source with its activity range and priority.
// Lower priority values are placed first.
type Candidate struct {
	Name         string
	Interval     geom.FrameInterval
	Priority     float64
	ClosestFrame int
}

// Group is a set of sources that never play at the same time.
type Group struct {
	Members []Candidate
}

// Name is the name of the earliest member.
func (g Group) Name() string {
	if len(g.Members) == 0 {
		return ""
	}
	return g.Members[0].Name
}

func (g Group) Names() []string {
	out := make([]string, len(g.Members))
	for i, m := range g.Members {
		out[i] = m.Name
	}

	return out
}

// Span runs from the first member's start to the last member's end.
func (g Group) Span() geom.FrameInterval {
	span := g.Members[0].Interval
	for _, m := range g.Members[1:] {
		span.Start = min(span.Start, m.Interval.Start)
		span.End = max(span.End, m.Interval.End)
	}

	return span
}

// At returns the member active at frame.
func (g Group) At(frame int) (Candidate, bool) {
	for _, m := range g.Members {
		if m.Interval.Contains(frame) {
			return m, true
		}
	}

	return Candidate{}, false
}

func (g Group) accepts(c Candidate) bool {
	for _, m := range g.Members {
		if m.Interval.Overlaps(c.Interval) {
			return false
		}
	}

	return true
}

// Assign bins candidates first-fit in priority order, then moves groups
// beyond maxGroups to overflow. Candidates must have valid intervals.
func Assign(cands []Candidate, maxGroups int) (groups, overflow []Group) {
	ordered := slices.Clone(cands)
	slices.SortStableFunc(ordered, func(a, b Candidate) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	var bins []Group
	for _, c := range ordered {
		placed := false
		for i := range bins {
			if bins[i].accepts(c) {
				bins[i].Members = append(bins[i].Members, c)
				placed = true
				break
			}
		}
		if !placed {
			bins = append(bins, Group{Members: []Candidate{c}})
		}
	}

	for _, g := range bins {
		slices.SortStableFunc(g.Members, func(a, b Candidate) int {
			return cmp.Compare(a.Interval.Start, b.Interval.Start)
		})
	}

	if len(bins) <= maxGroups {
		return bins, nil
	}

	return bins[:maxGroups:maxGroups], bins[maxGroups:]
}
