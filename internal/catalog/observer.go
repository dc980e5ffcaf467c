package catalog

// Observer receives a message for every catalog mutation.
type Observer interface {
	Update(message string)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(message string)

func (f ObserverFunc) Update(message string) { f(message) }

// Notifier is the logging sink a LoggingObserver writes to.
type Notifier interface {
	Info(msg string)
}

// LoggingObserver forwards every message verbatim to a Notifier.
type LoggingObserver struct {
	sink Notifier
}

func NewLoggingObserver(sink Notifier) *LoggingObserver {
	return &LoggingObserver{sink: sink}
}

func (o *LoggingObserver) Update(message string) {
	o.sink.Info(message)
}
