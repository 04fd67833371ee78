// SPDX-License-Identifier: EPL-2.0

package partition

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/ik5/soundobjects/geom"
)

func cand(name string, start, end int, priority float64) Candidate {
	return Candidate{Name: name, Interval: geom.FrameInterval{Start: start, End: end}, Priority: priority}
}

func groupNames(groups []Group) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = g.Names()
	}

	return out
}

func equalNames(a, b [][]string) bool {
	return slices.EqualFunc(a, b, func(x, y []string) bool { return slices.Equal(x, y) })
}

func TestAssign_Scenarios(t *testing.T) {
	t.Parallel()

	three := []Candidate{
		cand("source0", 0, 10, 1),
		cand("source1", 5, 15, 2),
		cand("source2", 20, 30, 3),
	}

	tests := []struct {
		name         string
		cands        []Candidate
		max          int
		wantGroups   [][]string
		wantOverflow [][]string
	}{
		{
			name:       "overlap splits one source off",
			cands:      three,
			max:        24,
			wantGroups: [][]string{{"source0", "source2"}, {"source1"}},
		},
		{
			name:         "limit of one",
			cands:        three,
			max:          1,
			wantGroups:   [][]string{{"source0", "source2"}},
			wantOverflow: [][]string{{"source1"}},
		},
		{
			name:         "limit of zero",
			cands:        three,
			max:          0,
			wantGroups:   [][]string{},
			wantOverflow: [][]string{{"source0", "source2"}, {"source1"}},
		},
		{
			name: "members reordered by start",
			cands: []Candidate{
				cand("late", 50, 60, 0.5),
				cand("early", 0, 10, 4),
				cand("middle", 20, 30, 2),
			},
			max:        24,
			wantGroups: [][]string{{"early", "middle", "late"}},
		},
		{
			name: "closest source opens the first group",
			cands: []Candidate{
				cand("far", 0, 10, 9),
				cand("near", 0, 10, 1),
			},
			max:        24,
			wantGroups: [][]string{{"near"}, {"far"}},
		},
		{
			name: "ties keep input order",
			cands: []Candidate{
				cand("b", 0, 10, 1),
				cand("a", 0, 10, 1),
				cand("c", 0, 10, 1),
			},
			max:        24,
			wantGroups: [][]string{{"b"}, {"a"}, {"c"}},
		},
		{
			name: "touching intervals overlap",
			cands: []Candidate{
				cand("a", 0, 10, 1),
				cand("b", 10, 20, 2),
			},
			max:        24,
			wantGroups: [][]string{{"a"}, {"b"}},
		},
		{name: "no candidates", max: 24, wantGroups: [][]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			groups, overflow := Assign(tt.cands, tt.max)
			if got := groupNames(groups); !equalNames(got, tt.wantGroups) {
				t.Errorf("groups = %v, want %v", got, tt.wantGroups)
			}
			if got := groupNames(overflow); !equalNames(got, tt.wantOverflow) {
				t.Errorf("overflow = %v, want %v", got, tt.wantOverflow)
			}
		})
	}
}

func TestAssign_DisjointSourcesShareOneGroup(t *testing.T) {
	t.Parallel()

	var cands []Candidate
	for i := range 20 {
		cands = append(cands, cand(string(rune('a'+i)), i*10, i*10+9, float64(20-i)))
	}

	groups, overflow := Assign(cands, 24)
	if len(groups) != 1 || len(overflow) != 0 {
		t.Fatalf("got %d groups, %d overflow; want 1, 0", len(groups), len(overflow))
	}
	if len(groups[0].Members) != 20 {
		t.Errorf("members = %d, want 20", len(groups[0].Members))
	}
}

func TestAssign_OverlappingSourcesGetOwnGroups(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 12; n++ {
		var cands []Candidate
		for i := range n {
			cands = append(cands, cand(string(rune('a'+i)), i, 100+i, float64(i)))
		}

		groups, _ := Assign(cands, 118)
		if len(groups) != n {
			t.Errorf("n=%d: got %d groups", n, len(groups))
		}
	}
}

func TestAssign_TruncationAndNoOverlap(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))

	for round := range 50 {
		var cands []Candidate
		for i := range 1 + rng.IntN(30) {
			start := rng.IntN(200)
			cands = append(cands, cand(string(rune('A'+i)), start, start+rng.IntN(40), rng.Float64()))
		}

		all, _ := Assign(cands, 1000)
		limit := rng.IntN(len(all) + 2)
		groups, overflow := Assign(cands, limit)

		wantKept := min(limit, len(all))
		if len(groups) != wantKept || len(overflow) != len(all)-wantKept {
			t.Fatalf("round %d: %d groups + %d overflow from %d with limit %d",
				round, len(groups), len(overflow), len(all), limit)
		}
		if got, want := groupNames(append(slices.Clone(groups), overflow...)), groupNames(all); !equalNames(got, want) {
			t.Fatalf("round %d: union %v differs from %v", round, got, want)
		}

		seen := 0
		for _, g := range all {
			seen += len(g.Members)
			for i, a := range g.Members {
				for _, b := range g.Members[i+1:] {
					if a.Interval.Overlaps(b.Interval) {
						t.Fatalf("round %d: %s and %s overlap in %s", round, a.Name, b.Name, g.Name())
					}
				}
				if i > 0 && g.Members[i-1].Interval.Start > a.Interval.Start {
					t.Fatalf("round %d: group %s not ordered by start", round, g.Name())
				}
			}
		}
		if seen != len(cands) {
			t.Fatalf("round %d: %d members placed, want %d", round, seen, len(cands))
		}
	}
}

func TestGroup_SpanAndAt(t *testing.T) {
	t.Parallel()

	g := Group{Members: []Candidate{cand("a", 0, 10, 0), cand("b", 20, 30, 0)}}

	if g.Name() != "a" {
		t.Errorf("Name() = %q", g.Name())
	}
	if g.Span() != (geom.FrameInterval{Start: 0, End: 30}) {
		t.Errorf("Span() = %v", g.Span())
	}
	if m, ok := g.At(25); !ok || m.Name != "b" {
		t.Errorf("At(25) = %v, %v", m.Name, ok)
	}
	if _, ok := g.At(15); ok {
		t.Error("At(15) found a member inside the gap")
	}
}
