package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTwilioBaseURL = "https://api.twilio.com"

const defaultTimeout = 15 * time.Second

// ErrTwilioCredentialsRequired is returned when account SID or auth token are missing.
var ErrTwilioCredentialsRequired = errors.New("twilio account sid and auth token are required")

// Twilio sends messages through the Twilio Messages REST API.
type Twilio struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
}

// TwilioConfig configures the Twilio implementation.
type TwilioConfig struct {
	// AccountSID is the Twilio account identifier.
	AccountSID string
	// AuthToken is the Twilio API auth token.
	AuthToken string
	// From is the sending phone number.
	From string
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
}

// NewTwilio constructs a Twilio SMS sender.
func NewTwilio(cfg TwilioConfig) (*Twilio, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, ErrTwilioCredentialsRequired
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultTwilioBaseURL
	}

	return &Twilio{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.From,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// Send dispatches body to the given phone number via the Messages API.
func (t *Twilio) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.accountSID, t.authToken)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Twilio error payloads are small JSON documents; keep the head for logs.
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("twilio: request failed status=%d body=%s", resp.StatusCode, string(b))
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (t *Twilio) Close() error {
	t.httpClient.CloseIdleConnections()
	return nil
}
