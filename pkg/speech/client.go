package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Voice is one synthesis voice offered by the provider
type Voice struct {
	ID   string `json:"voice_id"`
	Name string `json:"name"`
}

// Client is a thin wrapper around the speech synthesis provider's REST API.
// Voice resolution degrades to the configured default instead of failing, so
// a dead TTS provider never blocks a dispatch.
type Client struct {
	baseURL      string
	apiKey       string
	defaultVoice string
	httpClient   *http.Client
}

func NewClient(baseURL, apiKey, defaultVoice string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		defaultVoice: defaultVoice,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// DefaultVoice returns the fallback voice identifier
func (c *Client) DefaultVoice() string {
	return c.defaultVoice
}

// ListVoices fetches the available voice identifiers from the provider
func (c *Client) ListVoices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/voices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech provider error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Voices []Voice `json:"voices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result.Voices, nil
}

// ResolveVoice returns the preferred voice if the provider lists it, otherwise
// the default voice. Provider failures and empty voice lists also degrade to
// the default rather than surfacing an error.
func (c *Client) ResolveVoice(ctx context.Context, preferred string) string {
	if preferred == "" {
		return c.defaultVoice
	}

	voices, err := c.ListVoices(ctx)
	if err != nil {
		log.Printf("[Speech] Voice list unavailable, using default voice %q: %v", c.defaultVoice, err)
		return c.defaultVoice
	}
	if len(voices) == 0 {
		return c.defaultVoice
	}

	for _, v := range voices {
		if v.ID == preferred || v.Name == preferred {
			return v.ID
		}
	}
	return c.defaultVoice
}
