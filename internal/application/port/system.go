package port

// SystemProbe exposes OS or browser level preference signals.
type SystemProbe interface {
	// DarkPreference reports the system color scheme. explicit is true
	// when the system states an exact preference; ok is false when the
	// capability is entirely absent.
	DarkPreference() (dark, explicit, ok bool)

	// Locales returns the system locale list, most preferred first.
	Locales() []string

	// SupportsEnvInsets reports whether the environment can express
	// safe-area insets natively, letting the UI track live changes
	// without re-resolution.
	SupportsEnvInsets() bool

	// OnChange subscribes to system preference changes and returns an
	// unsubscribe function.
	OnChange(fn func()) (off func())
}

// ChangeNotifier is a single raw trigger source feeding the debounced
// update scheduler.
type ChangeNotifier interface {
	OnChange(fn func()) (off func())
}

// NotifierFunc adapts a subscription function to ChangeNotifier.
type NotifierFunc func(fn func()) (off func())

// OnChange implements ChangeNotifier.
func (f NotifierFunc) OnChange(fn func()) (off func()) { return f(fn) }
