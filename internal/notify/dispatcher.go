package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"scholarship-intake/internal/shared/metrics"
	"scholarship-intake/internal/shared/telemetry"
)

const defaultTimeout = 10 * time.Second

// Dispatcher renders decision emails and sends them through a Notifier.
// Send never returns an error; the caller gets a Result to surface.
type Dispatcher struct {
	Notifier Notifier
	From     string
	Timeout  time.Duration
}

// Enabled reports whether a real transport is configured.
func (d *Dispatcher) Enabled() bool {
	if d == nil || d.Notifier == nil {
		return false
	}
	_, noop := d.Notifier.(NoopNotifier)
	return !noop
}

func (d *Dispatcher) Send(ctx context.Context, to string, s Summary) Result {
	res := d.send(ctx, to, s)
	metrics.IncNotification(string(res.Status))
	fields := map[string]any{"status": s.Status, "result": res.Status}
	switch res.Status {
	case ResultFailed:
		fields["reason"] = res.Reason
		telemetry.Warn("notify.failed", fields)
	case ResultSent:
		telemetry.Info("notify.sent", fields)
	}
	return res
}

func (d *Dispatcher) send(ctx context.Context, to string, s Summary) Result {
	if !d.Enabled() {
		return Result{Status: ResultSkipped, Reason: ErrDisabled.Error()}
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return Result{Status: ResultSkipped, Reason: "no recipient address"}
	}

	subject, body, err := Render(s)
	if err != nil {
		return Result{Status: ResultFailed, Reason: err.Error()}
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err = d.Notifier.Notify(ctx, Message{From: d.From, To: to, Subject: subject, Body: body})
	switch {
	case err == nil:
		return Result{Status: ResultSent}
	case errors.Is(err, ErrDisabled):
		return Result{Status: ResultSkipped, Reason: err.Error()}
	default:
		return Result{Status: ResultFailed, Reason: err.Error()}
	}
}
