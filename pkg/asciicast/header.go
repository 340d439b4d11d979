// Package asciicast reads and writes the asciicast terminal recording
// format (v1 and v2).
//
// Refer to the asciicast v2 documentation:
// https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
package asciicast

// ThemeSpec carries the optional theme override embedded in a v2 header.
type ThemeSpec struct {
	Foreground string `json:"fg,omitempty"`
	Background string `json:"bg,omitempty"`
	Palette    string `json:"palette,omitempty"`
}

// Header is the JSON object on the first line of an asciicast v2 stream.
type Header struct {
	Version       int       `json:"version"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Timestamp     int64     `json:"timestamp,omitempty"`
	Duration      float64   `json:"duration,omitempty"`
	IdleTimeLimit float64   `json:"idle_time_limit,omitempty"`
	Command       string    `json:"command,omitempty"`
	Title         string    `json:"title,omitempty"`
	Theme         ThemeSpec `json:"theme,omitempty"`
	Env           struct {
		Shell string `json:"SHELL,omitempty"`
		Term  string `json:"TERM,omitempty"`
	} `json:"env,omitempty"`
}
