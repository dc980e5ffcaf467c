package logger

import "io"

// DefaultSinkPath is the file catalog notifications are appended to.
const DefaultSinkPath = "library.log"

// Sink receives plain text notifications and records each one as an
// info-level entry. A process opens one Sink at startup and hands it to
// whatever needs it.
type Sink struct {
	log *Log
}

// OpenSink appends to the file at path.
func OpenSink(path string) (*Sink, error) {
	l, err := New().FromPath(path).Make()
	if err != nil {
		return nil, err
	}
	return &Sink{log: l}, nil
}

// NewSink writes to w. The caller keeps ownership of w.
func NewSink(w io.Writer) *Sink {
	return &Sink{log: New().FromWriter(w).MustMake()}
}

func (s *Sink) Info(msg string) {
	s.log.Logger.Info().Msg(msg)
}

func (s *Sink) Close() error {
	return s.log.Close()
}
