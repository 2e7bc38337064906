package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// spinnerFrames cycles once per second at the default interval.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// Spinner animates a label on one line while an operation of unknown
// duration runs, like waiting on a remote completion. It writes to stderr
// by default so redirected command output stays clean.
type Spinner struct {
	w     io.Writer
	label string

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSpinner returns a stopped spinner. A nil writer means os.Stderr.
func NewSpinner(w io.Writer, label string) *Spinner {
	if w == nil {
		w = os.Stderr
	}
	return &Spinner{w: w, label: label}
}

// Start begins the animation. Starting a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.spin(s.stop, s.done)
}

// Stop ends the animation and blanks the line so the next print starts
// clean. Safe to call more than once, or without Start.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	s.done = nil
}

func (s *Spinner) spin(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		fmt.Fprintf(s.w, "\r%s %s", spinnerFrames[frame%len(spinnerFrames)], s.label)
		frame++

		select {
		case <-stop:
			width := utf8.RuneCountInString(s.label) + 2
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width))
			return
		case <-ticker.C:
		}
	}
}
