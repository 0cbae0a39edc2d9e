package checkout

// Notifier receives user-facing progress messages from the checkout
// workflow, such as the retry notice between order placement attempts.
type Notifier interface {
	Info(message string)
	Success(message string)
	Error(message string)
}

// nopNotifier discards all notifications.
type nopNotifier struct{}

func (nopNotifier) Info(string)    {}
func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// NopNotifier returns a notifier that discards everything.
func NopNotifier() Notifier {
	return nopNotifier{}
}
