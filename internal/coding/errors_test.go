package coding

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFailureError(t *testing.T) {
	tests := []struct {
		name string
		f    *Failure
		want string
	}{
		{
			"application",
			&Failure{Kind: FailureApplication, Op: opOCR, Message: "unreadable document"},
			"OCR API error: unreadable document",
		},
		{
			"api with structured message",
			&Failure{Kind: FailureAPI, Op: opProcess, Message: "invalid token", StatusCode: 401},
			"process API error (status 401): invalid token",
		},
		{
			"unexpected status",
			&Failure{Kind: FailureUnexpectedStatus, Op: opProcess, Message: "pending"},
			"process API returned unexpected status: pending",
		},
		{
			"schema",
			&Failure{Kind: FailureSchema, Op: opList, Message: "requests_list validation failed: missing properties: 'requests'"},
			"requests API response validation error: requests_list validation failed: missing properties: 'requests'",
		},
		{
			"precondition",
			&Failure{Kind: FailurePrecondition, Op: opProcess, Message: "text is required"},
			"process API request validation error: text is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailureTransportMessages(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		f := &Failure{Kind: FailureTransport, Op: opOCR, Err: context.DeadlineExceeded}
		if !f.Timeout() {
			t.Error("expected Timeout() = true")
		}
		if got := f.Error(); got != "OCR API request timed out" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("connection problem", func(t *testing.T) {
		f := &Failure{Kind: FailureTransport, Op: opOCR, Err: errors.New("connection refused")}
		if f.Timeout() {
			t.Error("expected Timeout() = false")
		}
		if !strings.Contains(f.Error(), "connection error to OCR API") {
			t.Errorf("Error() = %q", f.Error())
		}
	})
}

func TestFailureUnwrap(t *testing.T) {
	cause := errors.New("boom")
	f := &Failure{Kind: FailureTransport, Op: opOCR, Err: cause}

	if !errors.Is(f, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestClient_MissingTokenWarnsOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	client := New(Config{BaseURL: server.URL, Logger: logger})

	if _, err := client.ProcessText(context.Background(), "primera"); err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}
	if _, err := client.ProcessText(context.Background(), "segunda"); err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}

	warnings := strings.Count(buf.String(), "no authentication token")
	if warnings != 1 {
		t.Errorf("expected exactly 1 warning, got %d\n%s", warnings, buf.String())
	}
}
