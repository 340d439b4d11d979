package terminal

import "fmt"

// GeometryError reports a non-positive recorded screen geometry.
type GeometryError struct {
	Width, Height int
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("terminal: geometry %dx%d must be positive", e.Width, e.Height)
}
