package feedback

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Severity classifies a toast.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// State is the lifecycle position of a toast.
type State string

const (
	StateVisible State = "visible"
	StateFading  State = "fading"
	StateAbsent  State = "absent"
)

const (
	// DefaultDuration is how long a toast stays visible.
	DefaultDuration = 5 * time.Second
	// ExitTransition is how long a toast fades before removal.
	ExitTransition = 300 * time.Millisecond
)

// Toast is a single transient notification.
type Toast struct {
	ID        string
	Message   string
	Severity  Severity
	Duration  time.Duration
	CreatedAt time.Time

	notifier *Notifier
	state    State
	timer    Timer
}

// State returns the toast's current lifecycle state.
func (t *Toast) State() State {
	t.notifier.mu.Lock()
	defer t.notifier.mu.Unlock()
	return t.state
}

// ToastOption customizes a toast before it is shown.
type ToastOption func(*Toast)

// WithDuration overrides the visible duration. Non-positive values are ignored.
func WithDuration(d time.Duration) ToastOption {
	return func(t *Toast) {
		if d > 0 {
			t.Duration = d
		}
	}
}

// Notifier owns the single toast slot.
//
// Renderer methods are called with the notifier lock held; a Renderer must not
// call back into the Notifier.
type Notifier struct {
	mu        sync.Mutex
	renderer  Renderer
	scheduler Scheduler
	logger    *zap.Logger
	now       func() time.Time
	current   *Toast
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithScheduler replaces the wall clock scheduler.
func WithScheduler(s Scheduler) NotifierOption {
	return func(n *Notifier) { n.scheduler = s }
}

// WithLogger sets the logger used to trace toasts.
func WithLogger(l *zap.Logger) NotifierOption {
	return func(n *Notifier) { n.logger = l }
}

// NewNotifier creates a Notifier drawing toasts with r.
func NewNotifier(r Renderer, opts ...NotifierOption) *Notifier {
	if r == nil {
		r = NopRenderer{}
	}
	n := &Notifier{
		renderer:  r,
		scheduler: WallClock,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show removes any current toast and displays a new one. Unknown severities
// are shown as info.
func (n *Notifier) Show(message string, severity Severity, opts ...ToastOption) *Toast {
	if !severity.Valid() {
		severity = SeverityInfo
	}
	t := &Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		Duration:  DefaultDuration,
		CreatedAt: n.now(),
		notifier:  n,
	}
	for _, opt := range opts {
		opt(t)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if prev := n.current; prev != nil {
		n.removeLocked(prev)
	}

	t.state = StateVisible
	n.current = t
	n.renderer.Mount(t)
	t.timer = n.scheduler.AfterFunc(t.Duration, func() { n.fade(t) })

	n.logger.Debug("Toast shown",
		zap.String("id", t.ID),
		zap.String("severity", string(t.Severity)),
		zap.String("message", t.Message))
	return t
}

// Success shows a success toast.
func (n *Notifier) Success(message string) *Toast { return n.Show(message, SeveritySuccess) }

// Error shows an error toast.
func (n *Notifier) Error(message string) *Toast { return n.Show(message, SeverityError) }

// Warning shows a warning toast.
func (n *Notifier) Warning(message string) *Toast { return n.Show(message, SeverityWarning) }

// Info shows an info toast.
func (n *Notifier) Info(message string) *Toast { return n.Show(message, SeverityInfo) }

// Dismiss starts the exit transition of t right away. Dismissing a toast that
// is already fading or gone does nothing.
func (n *Notifier) Dismiss(t *Toast) {
	if t == nil {
		return
	}
	n.fade(t)
}

// Current returns the toast occupying the slot, or nil. A fading toast still
// occupies the slot until it is removed.
func (n *Notifier) Current() *Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Notifier) fade(t *Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t.state != StateVisible {
		return
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	t.state = StateFading
	n.renderer.Fade(t)
	t.timer = n.scheduler.AfterFunc(ExitTransition, func() { n.remove(t) })
}

func (n *Notifier) remove(t *Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.removeLocked(t)
}

func (n *Notifier) removeLocked(t *Toast) {
	if t.state == StateAbsent {
		return
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.state = StateAbsent
	n.renderer.Unmount(t)
	if n.current == t {
		n.current = nil
	}
}
