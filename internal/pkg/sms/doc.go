// Package sms defines the contracts for sending text messages.
//
// Like the mail package, it keeps use cases independent from any specific SMS
// provider. The Twilio implementation talks to the REST API directly; the log
// sender is for local development where no provider is configured.
package sms
