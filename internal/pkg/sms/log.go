package sms

import (
	"context"
	"log/slog"
)

// LogSender is a development Sender that logs instead of dispatching.
//
// The message body is logged too: in local development the code inside it is
// the only way to complete the flow.
type LogSender struct{}

// NewLogSender returns a LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the message and reports success.
func (l *LogSender) Send(ctx context.Context, to, body string) error {
	slog.InfoContext(ctx, "sms dispatched to log (development driver)", "to", to, "body", body)
	return nil
}

// Close implements io.Closer for interface compatibility.
func (l *LogSender) Close() error {
	return nil
}
