// Package logger builds the zerolog loggers used by the catalog binaries:
// a console logger for operational output and an append-only file sink for
// catalog notifications.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const permission = 0o664

// Build collects the options for a Log.
type Build struct {
	writer  io.Writer
	path    string
	console bool
	level   zerolog.Level
}

// Log is a ready logger together with the file it owns, if any.
type Log struct {
	File   *os.File
	Logger zerolog.Logger
}

func New() *Build {
	return &Build{writer: os.Stdout, level: zerolog.InfoLevel}
}

// FromPath appends to the file at path, creating it when missing.
func (b *Build) FromPath(path string) *Build {
	b.path = path
	return b
}

func (b *Build) FromWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// Console renders human readable lines instead of JSON.
func (b *Build) Console() *Build {
	b.console = true
	return b
}

func (b *Build) Level(level zerolog.Level) *Build {
	b.level = level
	return b
}

func (b *Build) Make() (*Log, error) {
	l := new(Log)
	w := b.writer
	if b.path != "" {
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		l.File = f
		w = zerolog.SyncWriter(f)
	}
	if b.console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	l.Logger = zerolog.New(w).Level(b.level).With().Timestamp().Logger()
	return l, nil
}

// MustMake is Make for builders that cannot fail, such as console or writer
// loggers. It panics if the log file cannot be opened.
func (b *Build) MustMake() *Log {
	l, err := b.Make()
	if err != nil {
		panic(err)
	}
	return l
}

// Close releases the backing file. It is a no-op for writer-backed logs.
func (l *Log) Close() error {
	if l.File == nil {
		return nil
	}
	return l.File.Close()
}
