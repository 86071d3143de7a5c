// Package payload defines the wire types exchanged with the remote
// OCR/coding service and the validation applied to them.
package payload

import (
	"strings"
)

// Response status values the remote service reports inside 200 bodies.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OCRRequest is the multipart upload sent for text extraction.
// MIMEType is derived from the filename, not sniffed from content.
type OCRRequest struct {
	FileContent []byte
	Filename    string
	MIMEType    string
}

// NewOCRRequest builds an upload request for the given file,
// resolving the MIME type from the filename extension.
func NewOCRRequest(fileContent []byte, filename string) OCRRequest {
	return OCRRequest{
		FileContent: fileContent,
		Filename:    filename,
		MIMEType:    MIMETypeFor(filename),
	}
}

// Validate checks the client-side required fields.
func (r OCRRequest) Validate() error {
	var fields []FieldError
	if len(r.FileContent) == 0 {
		fields = append(fields, FieldError{Field: "file_content", Message: "file content is required and must be non-empty"})
	}
	if r.Filename == "" {
		fields = append(fields, FieldError{Field: "filename", Message: "filename is required"})
	}
	if r.MIMEType == "" {
		fields = append(fields, FieldError{Field: "mime_type", Message: "mime_type is required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Schema: "ocr_request", Fields: fields}
	}
	return nil
}

// ProcessTextRequest is the JSON body sent for ICD-10 coding.
type ProcessTextRequest struct {
	Text string `json:"text"`
}

// Validate rejects blank input. Whitespace-only text counts as blank.
func (r ProcessTextRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return &ValidationError{
			Schema: "process_text_request",
			Fields: []FieldError{{Field: "text", Message: "text is required and must be non-blank"}},
		}
	}
	return nil
}

// OCRResponse is the body of a 200 reply from the OCR endpoint.
// Text is present only on success and may legitimately be empty;
// Error carries the server message when Status is "error".
type OCRResponse struct {
	Status string `json:"status"`
	Text   string `json:"text,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Diagnosis is one coded diagnosis in a ProcessTextResponse.
// Confidence carries whatever the server sent; no range is enforced.
type Diagnosis struct {
	OriginalText       string  `json:"original_text"`
	EnglishTranslation string  `json:"english_translation"`
	ICD10Code          string  `json:"icd10_code"`
	Confidence         float64 `json:"confidence"`
	Chapter            string  `json:"chapter,omitempty"`
	Reasoning          string  `json:"reasoning,omitempty"`
}

// Procedure is one coded procedure in a ProcessTextResponse.
type Procedure struct {
	OriginalText       string  `json:"original_text"`
	EnglishTranslation string  `json:"english_translation"`
	ICD10Code          string  `json:"icd10_code"`
	Confidence         float64 `json:"confidence"`
	Chapter            string  `json:"chapter,omitempty"`
	Reasoning          string  `json:"reasoning,omitempty"`
}

// ProcessTextResponse is the body of a 200 reply from the coding endpoint.
// Diagnoses and Procedures preserve server order.
type ProcessTextResponse struct {
	Status     string      `json:"status"`
	Diagnoses  []Diagnosis `json:"diagnoses,omitempty"`
	Procedures []Procedure `json:"procedures,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// RequestData is one stored request as returned by the history endpoint.
// InputData, OutputData and ApprovedOutput are opaque at this layer;
// their internal shape varies by request type and is only interpreted
// by the review package.
type RequestData struct {
	RequestID        string         `json:"request_id"`
	Type             string         `json:"type"`
	Source           string         `json:"source"`
	AgentID          string         `json:"agent_id"`
	Status           string         `json:"status"`
	CreatedAt        string         `json:"created_at"`
	ReviewedAt       string         `json:"reviewed_at,omitempty"`
	ReviewerID       string         `json:"reviewer_id,omitempty"`
	ReviewerComments string         `json:"reviewer_comments,omitempty"`
	InputData        map[string]any `json:"input_data,omitempty"`
	OutputData       map[string]any `json:"output_data,omitempty"`
	ApprovedOutput   map[string]any `json:"approved_output,omitempty"`
}

// RequestsListResponse is the body of a 200 reply from the history endpoint.
// Total, Page and PerPage are echoed when the server supplies them and
// stay zero otherwise; nothing client-side drives pagination.
type RequestsListResponse struct {
	Requests []RequestData `json:"requests"`
	Total    int           `json:"total,omitempty"`
	Page     int           `json:"page,omitempty"`
	PerPage  int           `json:"per_page,omitempty"`
}

// APIError is the JSON shape the service returns on non-200 responses.
type APIError struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Code   int    `json:"code,omitempty"`
}
