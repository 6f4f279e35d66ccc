package notify

import (
	"context"
	"errors"
)

// Message is a plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Notifier delivers a message to its recipient.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// ErrDisabled is returned by NoopNotifier.
var ErrDisabled = errors.New("notifications disabled")

// NoopNotifier is used when no transport is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, Message) error { return ErrDisabled }

// ResultStatus is the outcome of a notification attempt.
type ResultStatus string

const (
	ResultSent    ResultStatus = "sent"
	ResultFailed  ResultStatus = "failed"
	ResultSkipped ResultStatus = "skipped"
)

// Result reports what happened to a notification. Reason is set for
// failed and skipped results.
type Result struct {
	Status ResultStatus `json:"status"`
	Reason string       `json:"reason,omitempty"`
}

func (r Result) Sent() bool { return r.Status == ResultSent }
