package telephony

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrProviderUnavailable wraps any transport or provider-side failure. Callers
// may retry after backoff; this package never retries on its own.
var ErrProviderUnavailable = errors.New("telephony provider unavailable")

// CallResult is the provider's immediate response to a call placement.
// Completion is reported later through the status callback.
type CallResult struct {
	Ref    string
	Status string
}

// MessageResult is the provider's immediate response to an outbound message
type MessageResult struct {
	Ref    string
	Status string
}

// Client is a thin wrapper around the telephony provider's REST API
// (Twilio-compatible). All requests are bounded by the client timeout.
type Client struct {
	baseURL     string
	accountID   string
	authToken   string
	fromNumber  string
	dialTimeout time.Duration
	httpClient  *http.Client
}

// NewClient creates a telephony client. dialTimeout bounds how long an
// outbound call rings before the provider gives up.
func NewClient(baseURL, accountID, authToken, fromNumber string, providerTimeout, dialTimeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accountID:   accountID,
		authToken:   authToken,
		fromNumber:  fromNumber,
		dialTimeout: dialTimeout,
		httpClient:  &http.Client{Timeout: providerTimeout},
	}
}

// CreateCall places an outbound call that plays the given speakable markup.
// Placement is asynchronous: the returned status is the initial one only.
func (c *Client) CreateCall(ctx context.Context, to, markup string) (*CallResult, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.fromNumber)
	form.Set("Twiml", markup)
	form.Set("Timeout", strconv.Itoa(int(c.dialTimeout.Seconds())))

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json", c.baseURL, c.accountID)
	var result struct {
		Sid    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := c.postForm(ctx, endpoint, form, &result); err != nil {
		return nil, err
	}
	return &CallResult{Ref: result.Sid, Status: result.Status}, nil
}

// SendMessage sends a single SMS or WhatsApp message. WhatsApp destinations
// carry the whatsapp: prefix and use the matching from address.
func (c *Client) SendMessage(ctx context.Context, to, from, body string) (*MessageResult, error) {
	if from == "" {
		from = c.fromNumber
	}
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountID)
	var result struct {
		Sid    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := c.postForm(ctx, endpoint, form, &result); err != nil {
		return nil, err
	}
	return &MessageResult{Ref: result.Sid, Status: result.Status}, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrProviderUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: provider returned %d: %s", ErrProviderUnavailable, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", ErrProviderUnavailable, err)
	}
	return nil
}
