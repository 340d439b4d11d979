package svgcast

import (
	"errors"
	"fmt"
)

// ErrNoTheme is returned when the recording's header carries no theme and
// the caller supplied none. No built-in theme ships, so there is nothing
// sensible to substitute; a render requires literal color values.
var ErrNoTheme = errors.New("svgcast: recording has no theme and no theme override was supplied")

// ConsumerCancelledError reports that the caller's context was cancelled
// mid-render. It is never fatal to the process; the pipeline just unwinds
// and drops its transient state.
type ConsumerCancelledError struct {
	Err error
}

func (e *ConsumerCancelledError) Error() string {
	return fmt.Sprintf("svgcast: render cancelled: %v", e.Err)
}

func (e *ConsumerCancelledError) Unwrap() error { return e.Err }
