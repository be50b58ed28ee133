package sms

import (
	"context"
	"errors"
	"io"
)

// Driver names accepted by NewFromDriver.
const (
	DriverTwilio = "twilio"
	DriverLog    = "log"
)

// ErrUnknownDriver is returned when the configured SMS driver is not recognized.
var ErrUnknownDriver = errors.New("unknown sms driver")

// Sender abstracts an SMS provider.
type Sender interface {
	io.Closer
	// Send dispatches body to the given E.164 phone number.
	Send(ctx context.Context, to, body string) error
}

// FactoryOptions carries per-driver configuration for NewFromDriver.
type FactoryOptions struct {
	Twilio TwilioConfig
}

// NewFromDriver builds a Sender for the configured driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Sender, error) {
	switch driver {
	case DriverTwilio:
		return NewTwilio(opts.Twilio)
	case DriverLog, "":
		return NewLogSender(), nil
	default:
		return nil, ErrUnknownDriver
	}
}
