package asciicast

import "encoding/json"

// EventType tags the channel an event was recorded on.
type EventType string

const (
	// Output marks data written to the pty's stdout.
	Output EventType = "o"
	// Input marks data read from stdin. The core pipeline drops these.
	Input EventType = "i"
)

// Event is one `[time, type, data]` record of a v2 stream.
type Event struct {
	Time float64
	Type EventType
	Data string
}

// UnmarshalJSON decodes the 3-element array form of an event record.
func (e *Event) UnmarshalJSON(data []byte) error {
	var v [3]json.RawMessage
	if err := json.Unmarshal(data, &v); err != nil {
		return &MalformedRecordError{Reason: "event is not a 3-element array", Err: err}
	}

	var t float64
	if err := json.Unmarshal(v[0], &t); err != nil {
		return &MalformedRecordError{Reason: "event time is not a number", Err: err}
	}

	var et string
	if err := json.Unmarshal(v[1], &et); err != nil {
		return &MalformedRecordError{Reason: "event type is not a string", Err: err}
	}

	var d string
	if err := json.Unmarshal(v[2], &d); err != nil {
		return &MalformedRecordError{Reason: "event data is not a string", Err: err}
	}

	e.Time, e.Type, e.Data = t, EventType(et), d

	return nil
}

// MarshalJSON encodes the event back into its 3-element array form.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]interface{}{e.Time, string(e.Type), e.Data})
}
