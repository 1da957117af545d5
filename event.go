package testmaker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type (
	// Kind tags the modality of a stimulus event. The set is open: documents
	// written by newer tools may carry kinds this package has no payload
	// shape for, and those survive a decode/encode round trip untouched
	Kind string

	// Position places a visual stimulus on the presentation surface, either
	// as a named anchor or as custom "x,y" pixel coordinates
	Position string

	// Fields holds payload fields that have no typed home, keyed by their
	// document names and carried through encode and decode verbatim
	Fields map[string]json.RawMessage

	// Payload is the modality-specific half of an Event
	Payload interface {
		// Kind reports the payload's modality tag
		Kind() Kind

		// Source returns the stimulus file path, or "" when none is set
		Source() string

		// Duration returns the presentation length in milliseconds
		Duration() int64
	}

	// Image is the payload of a visual stimulus
	Image struct {
		SourcePath string
		DurationMS int64
		Position   Position
		Extra      Fields
	}

	// Audio is the payload of an auditory stimulus. Volume ranges from 0.0
	// (silent) to 1.0 (full)
	Audio struct {
		SourcePath string
		DurationMS int64
		Volume     float64
		Extra      Fields
	}

	// Opaque is the payload of a kind this package has no shape for. All of
	// its fields stay raw so nothing is lost on re-encode
	Opaque struct {
		EventKind Kind
		Fields    Fields
	}

	// Event is a single stimulus scheduled on a Timeline. Identity is
	// positional: exports number events by their place in onset order, and
	// nothing else names them
	Event struct {
		OnsetMS int64
		Data    Payload
	}
)

const (
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

const (
	PositionTop    Position = "top"
	PositionCenter Position = "center"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
)

// NewImage builds a visual stimulus event
func NewImage(
	onsetMS int64, path string, durationMS int64, pos Position,
) Event {
	return Event{
		OnsetMS: onsetMS,
		Data: &Image{
			SourcePath: path,
			DurationMS: durationMS,
			Position:   pos,
		},
	}
}

// NewAudio builds an auditory stimulus event
func NewAudio(
	onsetMS int64, path string, durationMS int64, volume float64,
) Event {
	return Event{
		OnsetMS: onsetMS,
		Data: &Audio{
			SourcePath: path,
			DurationMS: durationMS,
			Volume:     volume,
		},
	}
}

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether this package has a payload shape for the kind
func (k Kind) IsValid() bool {
	switch k {
	case KindImage, KindAudio:
		return true
	default:
		return false
	}
}

// CustomPosition builds a Position from pixel coordinates
func CustomPosition(x, y int) Position {
	return Position(fmt.Sprintf("%d,%d", x, y))
}

// IsValid reports whether the position is a named anchor or custom "x,y"
// coordinates
func (p Position) IsValid() bool {
	switch p {
	case PositionTop, PositionCenter, PositionBottom,
		PositionLeft, PositionRight:
		return true
	default:
		x, y, ok := strings.Cut(string(p), ",")
		return ok && isCoord(x) && isCoord(y)
	}
}

func isCoord(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

func (i *Image) Kind() Kind {
	return KindImage
}

func (i *Image) Source() string {
	return i.SourcePath
}

func (i *Image) Duration() int64 {
	return i.DurationMS
}

func (a *Audio) Kind() Kind {
	return KindAudio
}

func (a *Audio) Source() string {
	return a.SourcePath
}

func (a *Audio) Duration() int64 {
	return a.DurationMS
}

func (o *Opaque) Kind() Kind {
	return o.EventKind
}

// Source reads source_path from the raw fields, "" when absent
func (o *Opaque) Source() string {
	var s string
	if raw, ok := o.Fields["source_path"]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// Duration reads duration_ms from the raw fields, 0 when absent
func (o *Opaque) Duration() int64 {
	var d int64
	if raw, ok := o.Fields["duration_ms"]; ok {
		_ = json.Unmarshal(raw, &d)
	}
	return d
}

// Kind reports the modality of the event's payload, "" when it has none
func (e Event) Kind() Kind {
	if e.Data == nil {
		return ""
	}
	return e.Data.Kind()
}

// Source returns the payload's stimulus file path, "" when it has none
func (e Event) Source() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.Source()
}

// DurationMS returns the payload's presentation length, 0 when it has none
func (e Event) DurationMS() int64 {
	if e.Data == nil {
		return 0
	}
	return e.Data.Duration()
}

// EndMS returns the instant the stimulus stops being presented
func (e Event) EndMS() int64 {
	return e.OnsetMS + e.DurationMS()
}

// ActiveAt reports whether the stimulus is being presented at the given
// instant. Both interval ends are inclusive, so a zero-duration event is
// active at exactly its onset. A non-zero tolerance widens the window on
// both sides
func (e Event) ActiveAt(atMS, toleranceMS int64) bool {
	return e.OnsetMS-toleranceMS <= atMS && atMS <= e.EndMS()+toleranceMS
}
