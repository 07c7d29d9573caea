package port

// Surface is the DOM-like output environment a resolved preference is
// projected onto. Implementations are expected to be idempotent:
// setting an attribute or property to its current value is a no-op.
type Surface interface {
	// SetAttribute sets a document-level marker attribute.
	SetAttribute(name, value string) error

	// SetCSSProperty sets a CSS custom property on the root element.
	SetCSSProperty(name, value string) error

	// Announce emits one polite, atomic message through the off-screen
	// live region. The region is created lazily on first use and
	// reused across calls.
	Announce(text string) error
}
