package stream

import "strconv"

// EventType identifies the kind of row change an event describes.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is one row change published by the remote store. Payloads are
// dynamically shaped; consumers must go through the accessor methods instead
// of reaching into the maps directly.
type Event struct {
	Type EventType      `json:"event_type"`
	New  map[string]any `json:"new,omitempty"`
	Old  map[string]any `json:"old,omitempty"`
}

// EntityID extracts the affected row id, preferring the new payload and
// falling back to the old one (deletions only carry old). Returns false when
// neither payload has a usable id.
func (e Event) EntityID() (string, bool) {
	if id, ok := stringField(e.New, "id"); ok {
		return id, true
	}
	return stringField(e.Old, "id")
}

// Field returns a string field from the new payload, falling back to old.
func (e Event) Field(name string) (string, bool) {
	if v, ok := stringField(e.New, name); ok {
		return v, true
	}
	return stringField(e.Old, name)
}

// BoolField returns a boolean field from the new payload, falling back to old.
func (e Event) BoolField(name string) (bool, bool) {
	if v, ok := boolField(e.New, name); ok {
		return v, true
	}
	return boolField(e.Old, name)
}

func stringField(payload map[string]any, name string) (string, bool) {
	if payload == nil {
		return "", false
	}
	switch v := payload[name].(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64:
		// JSON numbers decode as float64
		return strconv.FormatInt(int64(v), 10), true
	default:
		return "", false
	}
}

func boolField(payload map[string]any, name string) (bool, bool) {
	if payload == nil {
		return false, false
	}
	switch v := payload[name].(type) {
	case bool:
		return v, true
	case float64:
		return v != 0, true
	default:
		return false, false
	}
}

// Filter decides whether a subscriber receives an event.
type Filter func(Event) bool

// FieldTrue filters to events whose payload has the named boolean field set.
func FieldTrue(name string) Filter {
	return func(e Event) bool {
		v, ok := e.BoolField(name)
		return ok && v
	}
}
