// Package recorder starts a command inside a pseudo-terminal and turns
// its raw output into wall-clock-timestamped asciicast.Events, giving a
// caller something to feed pkg/coalesce with. It sits outside the render
// pipeline: rendering only ever sees the resulting Cast.
package recorder

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/asciireel/svgcast/pkg/asciicast"
)

const readSize = 1024

// Recorder starts command in a PTY and records its output as a
// chronological asciicast.Event stream.
type Recorder struct {
	Command string
	Args    []string
	// Width, Height seed the PTY's initial size and the recorded
	// header's geometry. Both must be positive.
	Width, Height int
}

// New returns a Recorder that will run command with args inside a PTY of
// the given size.
func New(command string, width, height int, args ...string) *Recorder {
	return &Recorder{Command: command, Args: args, Width: width, Height: height}
}

// Run starts the command, relays stdin/stdout through the PTY, and
// records every chunk written to the PTY's output with its elapsed time
// in seconds since the recording began. Run blocks
// until the command exits, ctx is cancelled, or the PTY returns EOF.
// It returns a *asciicast.Cast with Header.Width/Height populated from
// the Recorder's Width and Height.
func (r *Recorder) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) (*asciicast.Cast, error) {
	c := exec.CommandContext(ctx, r.Command, r.Args...)

	ptmx, err := pty.StartWithSize(c, &pty.Winsize{Rows: uint16(r.Height), Cols: uint16(r.Width)}) //nolint:gosec // geometry is bounds-checked by the caller
	if err != nil {
		return nil, fmt.Errorf("recorder: failed to start pty: %w", err)
	}
	defer ptmx.Close()

	resize := make(chan os.Signal, 1)
	signal.Notify(resize, syscall.SIGWINCH)
	defer signal.Stop(resize)
	go func() {
		for range resize {
			_ = pty.InheritSize(os.Stdin, ptmx)
		}
	}()

	if f, ok := stdin.(*os.File); ok {
		if oldState, err := term.MakeRaw(int(f.Fd())); err == nil {
			defer term.Restore(int(f.Fd()), oldState)
		}
	}

	go io.Copy(ptmx, stdin) //nolint:errcheck // best-effort stdin relay

	cast := asciicast.New(r.Width, r.Height)

	baseTime := time.Now()
	buf := make([]byte, readSize)
	for {
		n, readErr := ptmx.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			if stdout != nil {
				_, _ = stdout.Write(buf[:n])
			}
			cast.Events = append(cast.Events, asciicast.Event{
				Time: time.Since(baseTime).Seconds(),
				Type: asciicast.Output,
				Data: chunk,
			})
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return cast, fmt.Errorf("recorder: reading pty: %w", readErr)
		}

		select {
		case <-ctx.Done():
			return cast, ctx.Err()
		default:
		}
	}

	if len(cast.Events) > 0 {
		cast.Header.Duration = cast.Events[len(cast.Events)-1].Time
	}

	return cast, nil
}
