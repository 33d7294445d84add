package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// spinnerFrames cycles through the lunar phases while the CLI waits on
// the ephemeris service.
var spinnerFrames = []string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

// Spinner is a stderr progress indicator shown while positions are being
// resolved. It stops on Stop or when its context is cancelled.
type Spinner struct {
	label  string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// newSpinner creates a spinner bound to ctx with the given label.
func newSpinner(ctx context.Context, label string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		label:  label,
		ctx:    sctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Start begins the animation in its own goroutine. The goroutine is the
// only writer, so no locking is needed around the terminal output.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.label))
			}
		}
	}()
}

// Stop halts the animation and clears the line. Safe to call more than
// once; it returns after the animation goroutine has exited.
func (s *Spinner) Stop() {
	s.cancel()
	<-s.done
}

func (s *Spinner) clearLine() {
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.label)+4))
}
