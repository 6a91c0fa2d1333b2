package telephony

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreateCall(t *testing.T) {
	var gotTo, gotTwiml, gotTimeout string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotTo = r.PostFormValue("To")
		gotTwiml = r.PostFormValue("Twiml")
		gotTimeout = r.PostFormValue("Timeout")
		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("expected basic auth on provider request")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"CA123","status":"queued"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "AC1", "token", "+15550000000", 5*time.Second, 30*time.Second)
	result, err := client.CreateCall(context.Background(), "+15551234567", "<Response><Say>hi</Say></Response>")
	if err != nil {
		t.Fatalf("CreateCall() error = %v", err)
	}
	if result.Ref != "CA123" || result.Status != "queued" {
		t.Errorf("CreateCall() = %+v", result)
	}
	if gotTo != "+15551234567" {
		t.Errorf("To = %q", gotTo)
	}
	if gotTwiml == "" {
		t.Error("Twiml not sent")
	}
	if gotTimeout != "30" {
		t.Errorf("Timeout = %q, want 30", gotTimeout)
	}
}

func TestSendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostFormValue("From") != "whatsapp:+15550000000" {
			t.Errorf("From = %q", r.PostFormValue("From"))
		}
		w.Write([]byte(`{"sid":"SM456","status":"queued"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "AC1", "token", "+15550000000", 5*time.Second, 30*time.Second)
	result, err := client.SendMessage(context.Background(), "whatsapp:+15551234567", "whatsapp:+15550000000", "hello")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if result.Ref != "SM456" {
		t.Errorf("Ref = %q", result.Ref)
	}
}

func TestProviderErrorWrapsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"over capacity"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "AC1", "token", "+15550000000", 5*time.Second, 30*time.Second)
	_, err := client.SendMessage(context.Background(), "+15551234567", "", "hello")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestUnreachableProviderWrapsUnavailable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "AC1", "token", "+15550000000", 500*time.Millisecond, 30*time.Second)
	_, err := client.CreateCall(context.Background(), "+15551234567", "<Response/>")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}
