package slots

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start_at"`
	End   time.Time `json:"end_at"`
}

func (iv Interval) IsZeroLength() bool {
	return !iv.Start.Before(iv.End)
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies entirely inside iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

func sortIntervals(ivs []Interval) {
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Start.Equal(ivs[j].Start) {
			return ivs[i].End.Before(ivs[j].End)
		}
		return ivs[i].Start.Before(ivs[j].Start)
	})
}

// subtractOne removes block from iv, returning what remains. A block in the
// middle splits iv into two pieces; a covering block leaves nothing.
func subtractOne(iv, block Interval) []Interval {
	if !iv.Overlaps(block) {
		return []Interval{iv}
	}

	var out []Interval
	if iv.Start.Before(block.Start) {
		out = append(out, Interval{Start: iv.Start, End: block.Start})
	}
	if block.End.Before(iv.End) {
		out = append(out, Interval{Start: block.End, End: iv.End})
	}
	return out
}

// Subtract removes every block from every candidate. Candidates and blocks
// need not be sorted on entry; the result is sorted by start time. Adjacent
// results are never merged: a zero-length gap still marks a rule boundary.
//
// Both sides are walked in start order with a persistent cursor, so a season
// of past bookings is skipped once instead of rescanned per candidate.
func Subtract(candidates, blocks []Interval) []Interval {
	sortedBlocks := make([]Interval, len(blocks))
	copy(sortedBlocks, blocks)
	sortIntervals(sortedBlocks)

	sortedCands := make([]Interval, len(candidates))
	copy(sortedCands, candidates)
	sortIntervals(sortedCands)

	out := make([]Interval, 0, len(sortedCands))
	cursor := 0
	for _, cand := range sortedCands {
		// A block ending at or before this candidate's start cannot touch it,
		// nor any later candidate, so the cursor never moves back.
		for cursor < len(sortedBlocks) && !sortedBlocks[cursor].End.After(cand.Start) {
			cursor++
		}

		remaining := []Interval{cand}
		for i := cursor; i < len(sortedBlocks); i++ {
			block := sortedBlocks[i]
			if block.Start.After(cand.End) {
				break
			}
			next := remaining[:0:0]
			for _, piece := range remaining {
				next = append(next, subtractOne(piece, block)...)
			}
			remaining = next
			if len(remaining) == 0 {
				break
			}
		}
		out = append(out, remaining...)
	}

	sortIntervals(out)
	return out
}
