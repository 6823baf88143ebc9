package feedback

import "sync"

// BusyContent replaces a control's content while it is loading.
const BusyContent = "Loading..."

// Control is an interactive element, such as a button, that can be put in a
// busy state.
type Control struct {
	mu       sync.Mutex
	content  string
	disabled bool

	busy          bool
	savedContent  string
	savedDisabled bool
}

// NewControl creates an enabled control showing content.
func NewControl(content string) *Control {
	return &Control{content: content}
}

// Content returns what the control currently displays.
func (c *Control) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

// SetContent replaces the displayed content.
func (c *Control) SetContent(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = content
}

// Disabled reports whether the control rejects interaction.
func (c *Control) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

// SetDisabled toggles interaction.
func (c *Control) SetDisabled(disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = disabled
}

// Busy reports whether the control is in the loading state.
func (c *Control) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// SetLoading toggles the busy state of c. Entering it captures the content and
// disabled flag; leaving it restores exactly what was captured. Repeated calls
// with the same value are no-ops. A nil control is ignored.
func SetLoading(c *Control, loading bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if loading == c.busy {
		return
	}
	if loading {
		c.savedContent = c.content
		c.savedDisabled = c.disabled
		c.content = BusyContent
		c.disabled = true
		c.busy = true
		return
	}
	c.content = c.savedContent
	c.disabled = c.savedDisabled
	c.busy = false
}
