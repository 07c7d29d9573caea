// Package surface provides output-surface implementations. The memory
// surface records attribute, CSS property, and live-region writes; it
// backs tests and the diagnostic CLI, which has no real document to
// mutate.
package surface

import "sync"

// Memory implements port.Surface in process memory.
type Memory struct {
	mu            sync.Mutex
	attrs         map[string]string
	css           map[string]string
	announcements []string

	// liveRegion mirrors the lazy creation of the off-screen live
	// region: it exists only after the first announcement.
	liveRegion bool
}

// NewMemory creates an empty recording surface.
func NewMemory() *Memory {
	return &Memory{
		attrs: make(map[string]string),
		css:   make(map[string]string),
	}
}

// SetAttribute implements port.Surface.
func (m *Memory) SetAttribute(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attrs[name] = value
	return nil
}

// SetCSSProperty implements port.Surface.
func (m *Memory) SetCSSProperty(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.css[name] = value
	return nil
}

// Announce implements port.Surface.
func (m *Memory) Announce(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liveRegion = true
	m.announcements = append(m.announcements, text)
	return nil
}

// Attribute returns a recorded attribute value.
func (m *Memory) Attribute(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.attrs[name]
	return v, ok
}

// CSSProperty returns a recorded CSS custom property value.
func (m *Memory) CSSProperty(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.css[name]
	return v, ok
}

// Attributes returns a snapshot of all recorded attributes.
func (m *Memory) Attributes() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.attrs))
	for k, v := range m.attrs {
		out[k] = v
	}
	return out
}

// CSSProperties returns a snapshot of all recorded CSS custom
// properties.
func (m *Memory) CSSProperties() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.css))
	for k, v := range m.css {
		out[k] = v
	}
	return out
}

// Announcements returns all live-region messages in order.
func (m *Memory) Announcements() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.announcements))
	copy(out, m.announcements)
	return out
}

// LiveRegionCreated reports whether the live region was materialized.
func (m *Memory) LiveRegionCreated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.liveRegion
}
