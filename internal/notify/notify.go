// Package notify delivers the transient success/failure notifications the
// dashboard components emit after asynchronous operations. Notifications
// are fire-and-forget: they never block the emitting component and they
// are dropped (with a stderr trace) if no consumer keeps up.
package notify

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Kind classifies a notification.
type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
	KindInfo
)

// String makes Kind satisfy the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	case KindInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification is a single transient user-facing message.
type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	Timestamp time.Time
}

// Notifier is the interface the dashboard components emit through.
type Notifier interface {
	Success(message string)
	Failure(message string)
	Info(message string)
}

const defaultBufferSize = 64

// Center is a buffered fan-in of notifications with a single consumer,
// typically the interactive dashboard loop. Publishing never blocks; when
// the buffer is full the notification is dropped and traced to stderr.
type Center struct {
	ch chan Notification
}

// NewCenter creates a notification center. A bufferSize <= 0 selects the
// default.
func NewCenter(bufferSize int) *Center {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Center{ch: make(chan Notification, bufferSize)}
}

// Events returns the channel the consumer reads notifications from.
func (c *Center) Events() <-chan Notification {
	return c.ch
}

// Publish enqueues a notification without blocking the caller.
func (c *Center) Publish(kind Kind, message string) {
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
	}
	select {
	case c.ch <- n:
	default:
		fmt.Fprintf(os.Stderr, "notification buffer full, dropping: [%s] %s\n", kind, message)
	}
}

// Success implements Notifier.
func (c *Center) Success(message string) { c.Publish(KindSuccess, message) }

// Failure implements Notifier.
func (c *Center) Failure(message string) { c.Publish(KindFailure, message) }

// Info implements Notifier.
func (c *Center) Info(message string) { c.Publish(KindInfo, message) }

// Console writes notifications straight to a writer, used by the one-shot
// CLI commands where no dashboard loop is running.
type Console struct {
	out   io.Writer
	color bool
}

// NewConsole creates a console notifier. A nil writer defaults to stdout.
func NewConsole(out io.Writer, color bool) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out, color: color}
}

// Success implements Notifier.
func (c *Console) Success(message string) {
	c.write(text.FgGreen, "✓", message)
}

// Failure implements Notifier.
func (c *Console) Failure(message string) {
	c.write(text.FgRed, "✗", message)
}

// Info implements Notifier.
func (c *Console) Info(message string) {
	c.write(text.FgCyan, "•", message)
}

func (c *Console) write(color text.Color, icon, message string) {
	if c.color {
		fmt.Fprintf(c.out, "%s %s\n", color.Sprint(icon), message)
		return
	}
	fmt.Fprintf(c.out, "%s %s\n", icon, message)
}

// Format renders a queued notification the way Console would, used by the
// dashboard loop when draining the center.
func Format(n Notification, color bool) string {
	icon := "•"
	clr := text.FgCyan
	switch n.Kind {
	case KindSuccess:
		icon, clr = "✓", text.FgGreen
	case KindFailure:
		icon, clr = "✗", text.FgRed
	}
	if color {
		return fmt.Sprintf("%s %s", clr.Sprint(icon), n.Message)
	}
	return fmt.Sprintf("%s %s", icon, n.Message)
}
