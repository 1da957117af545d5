package testmaker

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

type (
	// JSONCodec reads and writes the native timeline document. It is the
	// only codec that decodes; the marker formats are write-only exports.
	// Encoding is deterministic, so encode, decode, encode yields the same
	// bytes both times
	JSONCodec struct{}

	jsonDocument struct {
		Metadata jsonMetadata `json:"metadata"`
		Events   []jsonEvent  `json:"events"`
	}

	jsonMetadata struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		DurationMS  int64  `json:"duration_ms"`
	}

	jsonEvent struct {
		EventType   string `json:"event_type"`
		TimestampMS int64  `json:"timestamp_ms"`
		Data        Fields `json:"data"`
	}

	// decode-side shapes; pointers distinguish absent from zero
	rawDocument struct {
		Metadata *rawMetadata `json:"metadata"`
		Events   *[]rawEvent  `json:"events"`
	}

	rawMetadata struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	rawEvent struct {
		EventType   *string `json:"event_type"`
		TimestampMS *int64  `json:"timestamp_ms"`
		Data        Fields  `json:"data"`
	}
)

// Format returns FormatJSON
func (JSONCodec) Format() Format {
	return FormatJSON
}

// Encode writes the native document: a metadata block whose duration_ms is
// recomputed from the events, then the events in onset order
func (JSONCodec) Encode(w io.Writer, tl *Timeline) error {
	doc := jsonDocument{
		Metadata: jsonMetadata{
			Name:        tl.Name,
			Description: tl.Description,
			DurationMS:  tl.TotalDurationMS(),
		},
		Events: make([]jsonEvent, 0, tl.Len()),
	}
	for _, ev := range tl.events {
		doc.Events = append(doc.Events, jsonEvent{
			EventType:   string(ev.Kind()),
			TimestampMS: ev.OnsetMS,
			Data:        payloadFields(ev.Data),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode rebuilds a Timeline from a native document. Events are re-sorted
// on the way in, so a hand-edited document comes back ordered. A document
// without metadata or events, or an event without event_type or
// timestamp_ms, fails with ErrMalformedDocument
func (JSONCodec) Decode(r io.Reader) (*Timeline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Metadata == nil {
		return nil, fmt.Errorf("%w: missing metadata", ErrMalformedDocument)
	}
	if doc.Events == nil {
		return nil, fmt.Errorf("%w: missing events", ErrMalformedDocument)
	}

	tl := NewTimeline(doc.Metadata.Name, doc.Metadata.Description)
	for i, ev := range *doc.Events {
		if ev.EventType == nil {
			return nil, fmt.Errorf(
				"%w: events[%d] has no event_type", ErrMalformedDocument, i,
			)
		}
		if ev.TimestampMS == nil {
			return nil, fmt.Errorf(
				"%w: events[%d] has no timestamp_ms", ErrMalformedDocument, i,
			)
		}
		tl.Add(Event{
			OnsetMS: *ev.TimestampMS,
			Data:    decodePayload(Kind(*ev.EventType), ev.Data),
		})
	}
	return tl, nil
}

// LoadTimeline reads and decodes a native document from disk
func LoadTimeline(path string) (*Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return JSONCodec{}.Decode(f)
}

// payloadFields renders a payload into its document fields. Typed fields
// are always emitted, including zero values, to keep encoding a pure
// function of the event; Extra fields ride along under their own keys
func payloadFields(p Payload) Fields {
	switch data := p.(type) {
	case *Image:
		f := cloneFields(data.Extra)
		f["source_path"] = rawField(data.SourcePath)
		f["duration_ms"] = rawField(data.DurationMS)
		f["position"] = rawField(string(data.Position))
		return f
	case *Audio:
		f := cloneFields(data.Extra)
		f["source_path"] = rawField(data.SourcePath)
		f["duration_ms"] = rawField(data.DurationMS)
		f["volume"] = rawField(data.Volume)
		return f
	case *Opaque:
		return cloneFields(data.Fields)
	case nil:
		return Fields{}
	default:
		f := Fields{}
		f["source_path"] = rawField(p.Source())
		f["duration_ms"] = rawField(p.Duration())
		return f
	}
}

func decodePayload(kind Kind, fields Fields) Payload {
	switch kind {
	case KindImage:
		return &Image{
			SourcePath: fieldString(fields, "source_path"),
			DurationMS: fieldInt(fields, "duration_ms"),
			Position:   Position(fieldString(fields, "position")),
			Extra: extraFields(
				fields, "source_path", "duration_ms", "position",
			),
		}
	case KindAudio:
		return &Audio{
			SourcePath: fieldString(fields, "source_path"),
			DurationMS: fieldInt(fields, "duration_ms"),
			Volume:     fieldFloat(fields, "volume", 1.0),
			Extra: extraFields(
				fields, "source_path", "duration_ms", "volume",
			),
		}
	default:
		return &Opaque{
			EventKind: kind,
			Fields:    extraFields(fields),
		}
	}
}

func rawField(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func cloneFields(f Fields) Fields {
	out := make(Fields, len(f)+3)
	for k, v := range f {
		out[k] = v
	}
	return out
}

func fieldString(f Fields, key string) string {
	var s string
	if raw, ok := f[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

func fieldInt(f Fields, key string) int64 {
	var n int64
	if raw, ok := f[key]; ok {
		_ = json.Unmarshal(raw, &n)
	}
	return n
}

func fieldFloat(f Fields, key string, absent float64) float64 {
	raw, ok := f[key]
	if !ok {
		return absent
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return absent
	}
	return n
}

func extraFields(f Fields, known ...string) Fields {
	out := Fields{}
	for k, v := range f {
		if !slices.Contains(known, k) {
			out[k] = v
		}
	}
	return out
}
