package coding

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/payload"
)

// FailureKind classifies why a service call failed.
type FailureKind string

const (
	// FailurePrecondition rejects bad input before any network activity.
	FailurePrecondition FailureKind = "precondition"
	// FailureTransport covers timeouts and connection problems; the
	// HTTP exchange itself never completed.
	FailureTransport FailureKind = "transport"
	// FailureAPI is a non-200 response.
	FailureAPI FailureKind = "api"
	// FailureSchema is a 200 body that does not match its contract.
	FailureSchema FailureKind = "schema"
	// FailureApplication is a 200 body with status "error"; the server
	// message is the user-facing one.
	FailureApplication FailureKind = "application"
	// FailureUnexpectedStatus is a 200 body whose status is neither
	// "success" nor "error".
	FailureUnexpectedStatus FailureKind = "unexpected_status"
)

// Failure is the classified terminal outcome of one service call.
// Nothing retries behind it; the caller decides whether to try again.
type Failure struct {
	Kind FailureKind
	// Op names the API the call targeted, e.g. "OCR API".
	Op      string
	Message string
	// StatusCode is the HTTP status, set on api failures.
	StatusCode int
	// Body keeps the raw response for diagnosis.
	Body []byte
	// APIError is set when a non-200 body parsed as a service error.
	APIError *payload.APIError
	Err      error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case FailurePrecondition:
		return fmt.Sprintf("%s request validation error: %s", f.Op, f.Message)
	case FailureTransport:
		if f.Timeout() {
			return fmt.Sprintf("%s request timed out", f.Op)
		}
		return fmt.Sprintf("connection error to %s: %v", f.Op, f.Err)
	case FailureAPI:
		return fmt.Sprintf("%s error (status %d): %s", f.Op, f.StatusCode, f.Message)
	case FailureSchema:
		return fmt.Sprintf("%s response validation error: %s", f.Op, f.Message)
	case FailureApplication:
		return fmt.Sprintf("%s error: %s", f.Op, f.Message)
	case FailureUnexpectedStatus:
		return fmt.Sprintf("%s returned unexpected status: %s", f.Op, f.Message)
	}
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Timeout reports whether a transport failure was a timeout rather
// than a connection problem.
func (f *Failure) Timeout() bool {
	var ne net.Error
	if errors.As(f.Err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(f.Err, context.DeadlineExceeded)
}

// RawBody returns the response body as printable text, trimmed.
func (f *Failure) RawBody() string {
	return strings.TrimSpace(string(f.Body))
}
