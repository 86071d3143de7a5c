package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FieldError pinpoints one offending field in a payload. For response
// bodies Field is a JSON pointer into the instance (for example
// "/diagnoses/0/confidence"); for request-side checks it is the plain
// field name.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string {
	if f.Field == "" {
		return f.Message
	}
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidationError reports a payload that does not match its contract.
// Raw keeps the original body for diagnosis when the payload came off
// the wire. UnexpectedStatus marks a body that was valid except for a
// status outside the known values; Status carries what the service sent.
type ValidationError struct {
	Schema string
	Fields []FieldError
	Raw    []byte

	UnexpectedStatus bool
	Status           string
}

func (e *ValidationError) Error() string {
	if e.UnexpectedStatus {
		return fmt.Sprintf("%s: unexpected status %q", e.Schema, e.Status)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s validation failed: %s", e.Schema, strings.Join(parts, "; "))
}

// Decode parses raw JSON, validates it against the named schema and
// unmarshals it into dst. Unknown fields in the body are tolerated so
// the service can evolve independently; missing required fields, wrong
// primitive types and unknown status values all come back as a
// *ValidationError carrying the raw body.
func Decode(schemaName string, raw []byte, dst any) error {
	schema, err := schemaFor(schemaName)
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ValidationError{
			Schema: schemaName,
			Fields: []FieldError{{Message: fmt.Sprintf("invalid JSON: %v", err)}},
			Raw:    raw,
		}
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return classifyValidation(schemaName, raw, doc, ve)
		}
		return fmt.Errorf("failed to validate %s: %w", schemaName, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return &ValidationError{
			Schema: schemaName,
			Fields: []FieldError{{Message: fmt.Sprintf("cannot decode into %T: %v", dst, err)}},
			Raw:    raw,
		}
	}
	return nil
}

// classifyValidation flattens the validator's cause tree. A body whose
// only defect is the status enum is reported as an unexpected status
// rather than a shape mismatch, so callers can tell "the service
// answered with a status we don't know" apart from "the service
// answered with a shape we don't know".
func classifyValidation(schemaName string, raw []byte, doc any, ve *jsonschema.ValidationError) *ValidationError {
	var fields []FieldError
	sawStatusEnum := false
	for _, leaf := range leafCauses(ve) {
		if leaf.InstanceLocation == "/status" && strings.HasSuffix(leaf.KeywordLocation, "/enum") {
			sawStatusEnum = true
			continue
		}
		fields = append(fields, FieldError{Field: leaf.InstanceLocation, Message: leaf.Message})
	}

	if sawStatusEnum && len(fields) == 0 {
		return &ValidationError{
			Schema:           schemaName,
			Raw:              raw,
			UnexpectedStatus: true,
			Status:           statusValue(doc),
		}
	}
	if sawStatusEnum {
		fields = append(fields, FieldError{
			Field:   "/status",
			Message: fmt.Sprintf("must be %q or %q", StatusSuccess, StatusError),
		})
	}
	return &ValidationError{Schema: schemaName, Fields: fields, Raw: raw}
}

func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		leaves = append(leaves, leafCauses(c)...)
	}
	return leaves
}

// statusValue extracts the status the service sent. Only used when
// validation failed on the status enum alone, so the value is a string.
func statusValue(doc any) string {
	if m, ok := doc.(map[string]any); ok {
		if s, ok := m["status"].(string); ok {
			return s
		}
	}
	return ""
}
