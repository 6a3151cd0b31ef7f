package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// ValidateProgress reports batch validation progress. Batch validations run
// concurrently, so every method is safe for concurrent use.
type ValidateProgress struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	spinner     *spinner.Spinner
	startTime   time.Time
}

// NewValidateProgress creates a new validation progress reporter
func NewValidateProgress(out io.Writer, interactive bool) *ValidateProgress {
	return &ValidateProgress{
		out:         out,
		interactive: interactive,
		startTime:   time.Now(),
	}
}

// OnProgress handles progress events
func (v *ValidateProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if event.Stage == "completed" {
		v.stopSpinner()
		duration := time.Since(v.startTime)
		color.New(color.FgGreen).Fprintf(v.out, "✅ %s in %s\n", event.Message, duration.Round(time.Millisecond))
		return
	}

	message := event.Message
	if event.Total > 0 {
		message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, event.Message)
	}

	if !v.interactive {
		if message != "" {
			fmt.Fprintf(v.out, "🔍 %s\n", message)
		}
		return
	}

	if event.Spinner {
		if v.spinner == nil {
			v.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			v.spinner.Writer = v.out
			_ = v.spinner.Color("cyan", "bold")
		}
		v.spinner.Suffix = " Validating " + message
		if !v.spinner.Active() {
			v.spinner.Start()
		}
	} else {
		v.stopSpinner()
	}
}

// Info prints an info message
func (v *ValidateProgress) Info(message string) {
	v.print(color.New(color.FgCyan), "ℹ️  "+message)
}

// Error prints an error message
func (v *ValidateProgress) Error(message string) {
	v.print(color.New(color.FgRed), "❌ "+message)
}

func (v *ValidateProgress) print(c *color.Color, line string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Stop spinner temporarily
	wasActive := v.spinner != nil && v.spinner.Active()
	if wasActive {
		v.spinner.Stop()
	}

	c.Fprintln(v.out, line)

	if wasActive {
		v.spinner.Start()
	}
}

func (v *ValidateProgress) stopSpinner() {
	if v.spinner != nil && v.spinner.Active() {
		v.spinner.Stop()
	}
}

// Ensure it implements the interface
var _ usecase.ProgressSink = (*ValidateProgress)(nil)
