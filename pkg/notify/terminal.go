package notify

import (
	"io"
	"sync"

	"github.com/fatih/color"
)

// Terminal prints notifications as colored lines.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	success *color.Color
	failure *color.Color
}

// NewTerminal creates a Terminal sink writing to out. Colors follow the
// color package's terminal detection and the NO_COLOR convention.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:     out,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
	}
}

func (t *Terminal) Publish(n Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch n.Level {
	case LevelError:
		t.failure.Fprint(t.out, "✗ ")
	default:
		t.success.Fprint(t.out, "✓ ")
	}
	io.WriteString(t.out, n.Text+"\n")
}
