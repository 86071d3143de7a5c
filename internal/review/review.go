// Package review interprets the opaque payload maps carried by history
// records. The service does not constrain input_data, output_data or
// approved_output, so everything here is best-effort: shapes that do not
// match yield empty views, never errors.
package review

import (
	"reflect"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/payload"
)

// Entry is one coded item from an output payload.
type Entry struct {
	Text            string
	ICD10Code       string
	Document        string
	IsMainDiagnosis bool
	PNA             bool
}

// OutputSummary is a typed view over an output payload.
// HasDiagnoses and HasProcedures track key presence so an empty list still
// renders as a structured (zero-entry) section rather than raw JSON.
type OutputSummary struct {
	Diagnoses     []Entry
	Procedures    []Entry
	HasDiagnoses  bool
	HasProcedures bool
}

// Structured reports whether the payload carried either recognized list.
func (s OutputSummary) Structured() bool {
	return s.HasDiagnoses || s.HasProcedures
}

// Summarize builds a typed view over an output payload.
func Summarize(output map[string]any) OutputSummary {
	var s OutputSummary
	if v, ok := output["diagnoses"]; ok {
		s.HasDiagnoses = true
		s.Diagnoses = entriesFrom(v)
	}
	if v, ok := output["procedures"]; ok {
		s.HasProcedures = true
		s.Procedures = entriesFrom(v)
	}
	return s
}

// InputText extracts the text field from an input payload when present.
func InputText(input map[string]any) (string, bool) {
	if _, ok := input["text"]; !ok {
		return "", false
	}
	text, ok := input["text"].(string)
	return text, ok
}

// ApprovedDiffers reports whether a record's approved output should be
// surfaced: it exists and is structurally different from the raw output.
func ApprovedDiffers(rd payload.RequestData) bool {
	return len(rd.ApprovedOutput) > 0 && !reflect.DeepEqual(rd.ApprovedOutput, rd.OutputData)
}

func entriesFrom(v any) []Entry {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Text:            getString(m, "text"),
			ICD10Code:       getString(m, "icd10_code"),
			Document:        getString(m, "document"),
			IsMainDiagnosis: getBool(m, "is_main_diagnosis"),
			PNA:             getBool(m, "pna"),
		})
	}
	return entries
}

// Helper functions to extract typed values from a map
func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getBool(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}
