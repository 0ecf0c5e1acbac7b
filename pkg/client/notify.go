package client

// Notifier receives user-facing notifications emitted by the session
// manager, such as the logout confirmation. Implementations must not
// perform HTTP calls; they run on the forced-logout path.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) {
	f(message)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}
