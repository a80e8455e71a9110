package slots

import (
	"time"

	"emvibook/internal/calendar"
	"emvibook/internal/ledger"
)

// ResolvedSlot is a concrete open interval derived at query time. It is never
// persisted; callers must tolerate a returned slot being claimed by a
// concurrent reservation before they act on it.
type ResolvedSlot struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// Project maps each active rule onto every date in [from, to) matching its
// weekday, clamped to the query window. Candidates come back sorted by start;
// overlapping candidates from distinct rules are kept distinct.
func Project(rules []calendar.AvailabilityRule, from, to time.Time) []Interval {
	from = from.UTC()
	to = to.UTC()

	var candidates []Interval
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for ; day.Before(to); day = day.AddDate(0, 0, 1) {
		for _, rule := range rules {
			if !rule.Active || int(day.Weekday()) != rule.Weekday {
				continue
			}

			iv := Interval{
				Start: day.Add(time.Duration(rule.StartMinute) * time.Minute),
				End:   day.Add(time.Duration(rule.EndMinute) * time.Minute),
			}
			if iv.Start.Before(from) {
				iv.Start = from
			}
			if iv.End.After(to) {
				iv.End = to
			}
			if iv.IsZeroLength() {
				continue
			}
			candidates = append(candidates, iv)
		}
	}

	sortIntervals(candidates)
	return candidates
}

// Resolve computes the open bookable intervals for one artist over [from, to):
// rule projection minus time off minus held bookings, with remainders shorter
// than minIncrement dropped. Inputs are read fresh by the caller per query;
// nothing here is cached.
func Resolve(
	rules []calendar.AvailabilityRule,
	exceptions []calendar.TimeOffException,
	bookings []ledger.Booking,
	from, to time.Time,
	minIncrement time.Duration,
) []ResolvedSlot {
	candidates := Project(rules, from, to)
	if len(candidates) == 0 {
		return []ResolvedSlot{}
	}

	blocks := make([]Interval, 0, len(exceptions)+len(bookings))
	for _, exc := range exceptions {
		blocks = append(blocks, Interval{Start: exc.StartAt.UTC(), End: exc.EndAt.UTC()})
	}
	for _, b := range bookings {
		if !b.Status.Blocks() {
			continue
		}
		blocks = append(blocks, Interval{Start: b.StartAt.UTC(), End: b.EndAt.UTC()})
	}

	open := Subtract(candidates, blocks)

	out := make([]ResolvedSlot, 0, len(open))
	for _, iv := range open {
		if minIncrement > 0 && iv.Duration() < minIncrement {
			continue
		}
		out = append(out, ResolvedSlot{StartAt: iv.Start, EndAt: iv.End})
	}
	return out
}
