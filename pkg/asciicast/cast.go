package asciicast

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Cast is a fully parsed recording: a header plus a chronological event
// stream, already upgraded to v2 event shape regardless of source version.
type Cast struct {
	Header Header
	Events []Event
}

// New creates an empty v2 Cast stamped with the current environment.
func New(width, height int) *Cast {
	c := &Cast{
		Header: Header{
			Version:   2,
			Width:     width,
			Height:    height,
			Timestamp: time.Now().Unix(),
		},
	}
	c.Header.Env.Shell = os.Getenv("SHELL")
	c.Header.Env.Term = os.Getenv("TERM")

	return c
}

// v1Cast is the single-object v1 on-disk shape: header fields inline with
// a `stdout` array of `[delta_seconds, data]` pairs.
type v1Cast struct {
	Version int     `json:"version"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Command string  `json:"command,omitempty"`
	Title   string  `json:"title,omitempty"`
	Stdout  [][2]any `json:"stdout"`
}

// Read parses an asciicast v1 or v2 stream. v1 streams are upgraded to v2
// events: stdout deltas accumulate into absolute times, tagged Output.
func Read(r io.Reader) (*Cast, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &MalformedRecordError{Reason: "unreadable input", Err: err}
	}

	lines := strings.SplitN(string(bytes.TrimRight(data, "\n")), "\n", 2)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, &MalformedRecordError{Reason: "empty input"}
	}

	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &probe); err != nil {
		return nil, &MalformedRecordError{Reason: "first line is not a JSON header", Line: 1, Err: err}
	}

	switch probe.Version {
	case 1:
		return readV1([]byte(lines[0]))
	case 2:
		return readV2(lines)
	default:
		return nil, &MalformedRecordError{
			Reason: fmt.Sprintf("unsupported asciicast version %d (want 1 or 2)", probe.Version),
			Line:   1,
		}
	}
}

func readV1(headerLine []byte) (*Cast, error) {
	var v1 v1Cast
	if err := json.Unmarshal(headerLine, &v1); err != nil {
		return nil, &MalformedRecordError{Reason: "malformed v1 record", Line: 1, Err: err}
	}

	cast := &Cast{Header: Header{
		Version: 2,
		Width:   v1.Width,
		Height:  v1.Height,
		Command: v1.Command,
		Title:   v1.Title,
	}}

	abs := 0.0
	for _, pair := range v1.Stdout {
		delta, ok := pair[0].(float64)
		if !ok {
			return nil, &MalformedRecordError{Reason: "v1 stdout delta is not a number"}
		}
		data, ok := pair[1].(string)
		if !ok {
			return nil, &MalformedRecordError{Reason: "v1 stdout data is not a string"}
		}
		abs += delta
		cast.Events = append(cast.Events, Event{Time: abs, Type: Output, Data: data})
	}

	return cast, nil
}

func readV2(lines []string) (*Cast, error) {
	var header Header
	if err := json.Unmarshal([]byte(lines[0]), &header); err != nil {
		return nil, &MalformedRecordError{Reason: "malformed v2 header", Line: 1, Err: err}
	}
	if header.Version != 2 {
		return nil, &MalformedRecordError{Reason: fmt.Sprintf("header declares version %d, want 2", header.Version), Line: 1}
	}

	cast := &Cast{Header: header}

	if len(lines) < 2 {
		return cast, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(lines[1]))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 1
	prev := -1.0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(raw), &ev); err != nil {
			return nil, &MalformedRecordError{Reason: "malformed event record", Line: lineNo, Err: err}
		}
		if ev.Time < prev {
			return nil, &MalformedRecordError{
				Reason: fmt.Sprintf("non-monotonic event time %g after %g", ev.Time, prev),
				Line:   lineNo,
			}
		}
		prev = ev.Time

		cast.Events = append(cast.Events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, &MalformedRecordError{Reason: "failed scanning event stream", Err: err}
	}

	return cast, nil
}

// Write serializes the cast back to line-delimited asciicast v2.
func (c *Cast) Write(w io.Writer) error {
	header := c.Header
	header.Version = 2

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return err
	}
	if _, err := w.Write(headerJSON); err != nil {
		return err
	}

	for i := range c.Events {
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
		eventJSON, err := json.Marshal(c.Events[i])
		if err != nil {
			return err
		}
		if _, err := w.Write(eventJSON); err != nil {
			return err
		}
	}

	return nil
}

// OutputEvents returns only the events tagged Output; recorded input is
// never replayed.
func (c *Cast) OutputEvents() []Event {
	out := make([]Event, 0, len(c.Events))
	for _, ev := range c.Events {
		if ev.Type == Output {
			out = append(out, ev)
		}
	}
	return out
}
