package testmaker

import (
	"fmt"
	"slices"
	"sort"
)

type (
	// Timeline is an ordered schedule of stimulus events. Events stay
	// sorted by onset at all times; equal onsets preserve insertion order.
	// A Timeline is not safe for concurrent mutation, but once mutation
	// stops any number of goroutines may query or export it
	Timeline struct {
		Name        string
		Description string
		events      []Event
	}
)

// NewTimeline creates an empty Timeline
func NewTimeline(name, description string) *Timeline {
	return &Timeline{
		Name:        name,
		Description: description,
	}
}

// Add schedules an event, keeping the timeline sorted by onset. Events
// sharing an onset stay in the order they were added
func (tl *Timeline) Add(ev Event) {
	tl.events = append(tl.events, ev)
	tl.sort()
}

// Remove deletes the event at the given position in onset order. The
// timeline is unchanged when the index is out of range
func (tl *Timeline) Remove(i int) error {
	if i < 0 || i >= len(tl.events) {
		return fmt.Errorf(
			"%w: %d of %d", ErrIndexOutOfRange, i, len(tl.events),
		)
	}
	tl.events = append(tl.events[:i], tl.events[i+1:]...)
	return nil
}

// Replace swaps the event at the given position for a new one, then
// restores onset order. Same error contract as Remove
func (tl *Timeline) Replace(i int, ev Event) error {
	if i < 0 || i >= len(tl.events) {
		return fmt.Errorf(
			"%w: %d of %d", ErrIndexOutOfRange, i, len(tl.events),
		)
	}
	tl.events[i] = ev
	tl.sort()
	return nil
}

// Events returns the events in onset order. The slice is a copy; mutating
// it does not affect the timeline
func (tl *Timeline) Events() []Event {
	return slices.Clone(tl.events)
}

// Len returns the number of scheduled events
func (tl *Timeline) Len() int {
	return len(tl.events)
}

// ActiveAt returns the events being presented at the given instant, in
// onset order. Interval ends are inclusive, so a zero-duration event is
// reported at exactly its onset. Tolerance widens every event's window on
// both sides; pass 0 for exact timing
func (tl *Timeline) ActiveAt(atMS, toleranceMS int64) []Event {
	var active []Event
	for _, ev := range tl.events {
		if ev.ActiveAt(atMS, toleranceMS) {
			active = append(active, ev)
		}
	}
	return active
}

// TotalDurationMS returns the instant the last stimulus ends, 0 when the
// timeline is empty
func (tl *Timeline) TotalDurationMS() int64 {
	var total int64
	for _, ev := range tl.events {
		if end := ev.EndMS(); end > total {
			total = end
		}
	}
	return total
}

func (tl *Timeline) sort() {
	sort.SliceStable(tl.events, func(i, j int) bool {
		return tl.events[i].OnsetMS < tl.events[j].OnsetMS
	})
}
