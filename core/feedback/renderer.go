package feedback

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Renderer draws toasts. Mount is called when a toast appears, Fade when its
// exit transition starts and Unmount when it is removed.
type Renderer interface {
	Mount(t *Toast)
	Fade(t *Toast)
	Unmount(t *Toast)
}

// NopRenderer draws nothing.
type NopRenderer struct{}

func (NopRenderer) Mount(*Toast)   {}
func (NopRenderer) Fade(*Toast)    {}
func (NopRenderer) Unmount(*Toast) {}

// ConsoleRenderer prints each toast as one line when it is mounted.
type ConsoleRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleRenderer writes toasts to w.
func NewConsoleRenderer(w io.Writer) *ConsoleRenderer {
	return &ConsoleRenderer{w: w}
}

var icons = map[Severity]string{
	SeveritySuccess: "✓",
	SeverityError:   "✗",
	SeverityWarning: "!",
	SeverityInfo:    "i",
}

func (r *ConsoleRenderer) Mount(t *Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "%s [%s] %s\n", icons[t.Severity], strings.ToUpper(string(t.Severity)), t.Message)
}

func (r *ConsoleRenderer) Fade(*Toast)    {}
func (r *ConsoleRenderer) Unmount(*Toast) {}

// LogRenderer emits toasts as log entries, error toasts at error level.
type LogRenderer struct {
	Logger *zap.Logger
}

func (r LogRenderer) Mount(t *Toast) {
	fields := []zap.Field{zap.String("toast_id", t.ID), zap.String("severity", string(t.Severity))}
	switch t.Severity {
	case SeverityError:
		r.Logger.Error(t.Message, fields...)
	case SeverityWarning:
		r.Logger.Warn(t.Message, fields...)
	default:
		r.Logger.Info(t.Message, fields...)
	}
}

func (r LogRenderer) Fade(*Toast)    {}
func (r LogRenderer) Unmount(*Toast) {}
