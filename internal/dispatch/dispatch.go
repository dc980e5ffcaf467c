// Package dispatch simulates sending messages to a fixed set of recipients,
// each after its own delay. All sends run concurrently and the batch ends
// when the slowest one does.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Kind selects what is being sent.
type Kind string

const (
	Notification Kind = "notification"
	Email        Kind = "email"
)

// ParseKind accepts the names used on the command line.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Notification, Email:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

func (k Kind) startMessage(name string) string {
	if k == Email {
		return fmt.Sprintf("Starting to send email to %s...", name)
	}
	return fmt.Sprintf("Starting to send notification to %s...", name)
}

func (k Kind) doneMessage(name string) string {
	if k == Email {
		return fmt.Sprintf("Email to %s sent!", name)
	}
	return fmt.Sprintf("Notification to %s sent!", name)
}

// Task is one recipient and how long sending to it takes.
type Task struct {
	Name  string
	Delay time.Duration
}

// DefaultRecipients returns the standard batch with delays counted in unit.
func DefaultRecipients(unit time.Duration) []Task {
	return []Task{
		{Name: "Alice", Delay: 2 * unit},
		{Name: "Bob", Delay: 3 * unit},
		{Name: "Charlie", Delay: 1 * unit},
		{Name: "Diana", Delay: 4 * unit},
	}
}

// Sender performs the delivery once a task's delay has elapsed.
type Sender func(ctx context.Context, t Task) error

// Batch prints progress lines to Out while running tasks.
type Batch struct {
	Kind  Kind
	Out   io.Writer
	Send  Sender
	Sleep func(time.Duration)

	mu sync.Mutex
}

func NewBatch(kind Kind, out io.Writer) *Batch {
	return &Batch{Kind: kind, Out: out, Sleep: time.Sleep}
}

// Run starts every task in order and waits for all of them. Start lines are
// printed in launch order before any task begins waiting. Tasks are not
// interrupted once started; the first Send error is returned after every
// task has finished.
func (b *Batch) Run(ctx context.Context, tasks []Task) error {
	var g errgroup.Group
	for _, t := range tasks {
		b.println(b.Kind.startMessage(t.Name))
		g.Go(func() error {
			b.Sleep(t.Delay)
			if b.Send != nil {
				if err := b.Send(ctx, t); err != nil {
					return fmt.Errorf("send to %s: %w", t.Name, err)
				}
			}
			b.println(b.Kind.doneMessage(t.Name))
			return nil
		})
	}
	return g.Wait()
}

func (b *Batch) println(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.Out, line)
}
