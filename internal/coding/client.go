// Package coding is the client for the remote OCR and ICD-10 coding
// service. Each operation is one synchronous round trip: build the
// request, send it, and either return a validated typed response or a
// classified *Failure. The client holds no state between calls and
// never retries.
package coding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/payload"
)

const (
	// DefaultBaseURL is the deployed coding service handling OCR scans
	// and text coding.
	DefaultBaseURL = "https://europe-west1-doctor-ai-464910.cloudfunctions.net/ai-icd10-core"
	// DefaultHistoryBaseURL serves the stored-request listing.
	DefaultHistoryBaseURL = "http://127.0.0.1:8088"
	// DefaultTimeout bounds every call. There is no finer-grained
	// cancellation than the whole call.
	DefaultTimeout = 30 * time.Second
)

// Operation names used in failure messages.
const (
	opOCR     = "OCR API"
	opProcess = "process API"
	opList    = "requests API"
)

// Config holds configuration for the coding service client.
type Config struct {
	// BaseURL hosts the OCR and text-coding endpoints.
	BaseURL string
	// HistoryBaseURL hosts the stored-request listing; it defaults
	// separately from BaseURL.
	HistoryBaseURL string
	// AuthToken is sent as a bearer token when set. Calls proceed
	// unauthenticated without it.
	AuthToken string
	Timeout   time.Duration
	Logger    *slog.Logger
}

// Client calls the remote coding service.
type Client struct {
	baseURL        string
	historyBaseURL string
	authToken      string
	logger         *slog.Logger
	client         *http.Client

	warnOnce sync.Once
}

// New creates a client for the coding service.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HistoryBaseURL == "" {
		cfg.HistoryBaseURL = DefaultHistoryBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		historyBaseURL: strings.TrimRight(cfg.HistoryBaseURL, "/"),
		authToken:      cfg.AuthToken,
		logger:         cfg.Logger,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// RunOCR uploads a document for text extraction. A success response
// with no text comes back with an empty Text, which is not an error.
func (c *Client) RunOCR(ctx context.Context, fileContent []byte, filename string) (*payload.OCRResponse, error) {
	ocrReq := payload.NewOCRRequest(fileContent, filename)
	if err := ocrReq.Validate(); err != nil {
		return nil, &Failure{Kind: FailurePrecondition, Op: opOCR, Message: err.Error(), Err: err}
	}

	body, contentType, err := encodeUpload(ocrReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr/scan", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	var resp payload.OCRResponse
	if err := c.do(req, opOCR, payload.SchemaOCRResponse, &resp); err != nil {
		return nil, err
	}
	if resp.Status == payload.StatusError {
		return nil, &Failure{Kind: FailureApplication, Op: opOCR, Message: resp.Error}
	}
	return &resp, nil
}

// ProcessText sends text for ICD-10 coding. Blank input is rejected
// before any network activity.
func (c *Client) ProcessText(ctx context.Context, text string) (*payload.ProcessTextResponse, error) {
	procReq := payload.ProcessTextRequest{Text: text}
	if err := procReq.Validate(); err != nil {
		return nil, &Failure{Kind: FailurePrecondition, Op: opProcess, Message: err.Error(), Err: err}
	}

	bodyBytes, err := json.Marshal(procReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/code/create", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp payload.ProcessTextResponse
	if err := c.do(req, opProcess, payload.SchemaProcessTextResponse, &resp); err != nil {
		return nil, err
	}
	if resp.Status == payload.StatusError {
		return nil, &Failure{Kind: FailureApplication, Op: opProcess, Message: resp.Error}
	}
	return &resp, nil
}

// ListRequests retrieves previously submitted requests. A non-empty
// requestID narrows the listing to that request; empty lists everything.
func (c *Client) ListRequests(ctx context.Context, requestID string) (*payload.RequestsListResponse, error) {
	listURL := c.historyBaseURL + "/code/list"
	if requestID != "" {
		params := url.Values{}
		params.Set("request_id", requestID)
		listURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp payload.RequestsListResponse
	if err := c.do(req, opList, payload.SchemaRequestsList, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do sends one request and maps the outcome onto the failure taxonomy.
// A 200 body is validated against schemaName and decoded into dst;
// everything else becomes a classified *Failure. The same path serves
// all three operations so the taxonomy cannot drift between them.
func (c *Client) do(req *http.Request, op, schemaName string, dst any) error {
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	c.setAuth(req)

	c.logger.Debug("calling coding service",
		"op", op,
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return &Failure{Kind: FailureTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Failure{Kind: FailureTransport, Op: op, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		// Surface the structured service error when the body carries one,
		// the raw status and body otherwise.
		var apiErr payload.APIError
		if payload.Decode(payload.SchemaAPIError, body, &apiErr) == nil {
			return &Failure{
				Kind:       FailureAPI,
				Op:         op,
				Message:    apiErr.Error,
				StatusCode: resp.StatusCode,
				Body:       body,
				APIError:   &apiErr,
			}
		}
		return &Failure{
			Kind:       FailureAPI,
			Op:         op,
			Message:    strings.TrimSpace(string(body)),
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	if err := payload.Decode(schemaName, body, dst); err != nil {
		var ve *payload.ValidationError
		if errors.As(err, &ve) && ve.UnexpectedStatus {
			return &Failure{Kind: FailureUnexpectedStatus, Op: op, Message: ve.Status, Body: body, Err: err}
		}
		return &Failure{Kind: FailureSchema, Op: op, Message: err.Error(), Body: body, Err: err}
	}
	return nil
}

// setAuth attaches the bearer token. A missing token is a
// configuration problem, not a call failure: warn once and proceed
// unauthenticated, the server decides whether to reject.
func (c *Client) setAuth(req *http.Request) {
	if c.authToken == "" {
		c.warnOnce.Do(func() {
			c.logger.Warn("no authentication token found, set API_AUTH_TOKEN in your .env file")
		})
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeUpload builds the multipart body for an OCR upload: one part
// under field name "file" carrying the filename and the MIME type
// resolved from it.
func encodeUpload(ocrReq payload.OCRRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(ocrReq.Filename)))
	h.Set("Content-Type", ocrReq.MIMEType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(ocrReq.FileContent); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
