package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResolveVoicePrefersListedVoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"voices":[{"voice_id":"v1","name":"Rachel"},{"voice_id":"v2","name":"Adam"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "fallback", 5*time.Second)

	if got := client.ResolveVoice(context.Background(), "v2"); got != "v2" {
		t.Errorf("ResolveVoice(v2) = %q", got)
	}
	if got := client.ResolveVoice(context.Background(), "Rachel"); got != "v1" {
		t.Errorf("ResolveVoice(Rachel) = %q, want v1", got)
	}
	if got := client.ResolveVoice(context.Background(), "unknown"); got != "fallback" {
		t.Errorf("ResolveVoice(unknown) = %q, want fallback", got)
	}
}

func TestResolveVoiceDegradesOnProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "fallback", 5*time.Second)
	if got := client.ResolveVoice(context.Background(), "v1"); got != "fallback" {
		t.Errorf("ResolveVoice() = %q, want fallback on provider failure", got)
	}
}

func TestResolveVoiceDegradesOnEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"voices":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "fallback", 5*time.Second)
	if got := client.ResolveVoice(context.Background(), "v1"); got != "fallback" {
		t.Errorf("ResolveVoice() = %q, want fallback on empty list", got)
	}
}
