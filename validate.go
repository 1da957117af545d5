package testmaker

import "fmt"

type (
	// Problem is one advisory finding from Validate, pinned to the event
	// and document field it concerns. Problems never block an export; they
	// exist to be surfaced to the researcher before a session runs
	Problem struct {
		EventIndex int
		Field      string
		Message    string
	}
)

// String formats the problem as "events[i].field: message"
func (p Problem) String() string {
	return fmt.Sprintf("events[%d].%s: %s", p.EventIndex, p.Field, p.Message)
}

// Validate inspects every event and returns the problems found, in event
// order. A nil result means the timeline is presentable as-is
func (tl *Timeline) Validate() []Problem {
	var problems []Problem
	for i, ev := range tl.events {
		problems = append(problems, validateEvent(i, ev)...)
	}
	return problems
}

func validateEvent(i int, ev Event) []Problem {
	var ps []Problem
	if ev.OnsetMS < 0 {
		ps = append(ps, problem(i, "timestamp_ms", "must not be negative"))
	}
	if ev.Data == nil {
		ps = append(ps, problem(i, "data", "event has no payload"))
		return ps
	}
	if ev.Kind() == "" {
		ps = append(ps, problem(i, "event_type", "missing modality tag"))
	}
	if ev.DurationMS() < 0 {
		ps = append(ps, problem(i, "duration_ms", "must not be negative"))
	}
	if ev.Source() == "" {
		ps = append(ps, problem(i, "source_path", "no stimulus file set"))
	}

	switch data := ev.Data.(type) {
	case *Image:
		if data.Position != "" && !data.Position.IsValid() {
			ps = append(ps, problem(i, "position", fmt.Sprintf(
				"unrecognized placement %q", data.Position,
			)))
		}
	case *Audio:
		if data.Volume < 0 || data.Volume > 1 {
			ps = append(ps, problem(
				i, "volume", "must be between 0.0 and 1.0",
			))
		}
	}
	return ps
}

func problem(i int, field, msg string) Problem {
	return Problem{
		EventIndex: i,
		Field:      field,
		Message:    msg,
	}
}
