package review

import (
	"encoding/json"
	"testing"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/payload"
)

// decodeMap builds the map shape the history endpoint produces.
func decodeMap(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad test JSON: %v", err)
	}
	return m
}

func TestSummarize(t *testing.T) {
	t.Run("typed view over coded output", func(t *testing.T) {
		output := decodeMap(t, `{
			"diagnoses": [
				{"text": "Fiebre alta", "icd10_code": "R50.9", "document": "informe de alta", "is_main_diagnosis": true, "pna": true},
				{"text": "Tos", "icd10_code": "R05", "document": "informe de alta"}
			],
			"procedures": [
				{"text": "Radiografía de tórax", "icd10_code": "BW03ZZZ"}
			]
		}`)

		s := Summarize(output)
		if !s.Structured() {
			t.Fatal("expected a structured summary")
		}
		if len(s.Diagnoses) != 2 {
			t.Fatalf("expected 2 diagnoses, got %d", len(s.Diagnoses))
		}

		main := s.Diagnoses[0]
		if main.Text != "Fiebre alta" || main.ICD10Code != "R50.9" || main.Document != "informe de alta" {
			t.Errorf("unexpected main diagnosis: %+v", main)
		}
		if !main.IsMainDiagnosis || !main.PNA {
			t.Error("expected main diagnosis flags to be set")
		}
		if s.Diagnoses[1].IsMainDiagnosis || s.Diagnoses[1].PNA {
			t.Error("expected secondary diagnosis flags to be unset")
		}

		if len(s.Procedures) != 1 {
			t.Fatalf("expected 1 procedure, got %d", len(s.Procedures))
		}
		if s.Procedures[0].ICD10Code != "BW03ZZZ" {
			t.Errorf("unexpected procedure code: %s", s.Procedures[0].ICD10Code)
		}
	})

	t.Run("empty list is still structured", func(t *testing.T) {
		s := Summarize(decodeMap(t, `{"diagnoses": []}`))
		if !s.Structured() {
			t.Error("expected structured summary for present key")
		}
		if len(s.Diagnoses) != 0 {
			t.Errorf("expected no entries, got %d", len(s.Diagnoses))
		}
		if s.HasProcedures {
			t.Error("procedures key is absent")
		}
	})

	t.Run("unrecognized payload is not structured", func(t *testing.T) {
		s := Summarize(decodeMap(t, `{"summary": "free text", "score": 3}`))
		if s.Structured() {
			t.Error("expected unstructured summary")
		}
	})

	t.Run("nil payload", func(t *testing.T) {
		if Summarize(nil).Structured() {
			t.Error("expected unstructured summary for nil map")
		}
	})

	t.Run("wrong-typed fields stay zero-valued", func(t *testing.T) {
		output := decodeMap(t, `{
			"diagnoses": [
				{"text": 123, "icd10_code": null, "pna": "yes"},
				"not an object"
			]
		}`)

		s := Summarize(output)
		if len(s.Diagnoses) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(s.Diagnoses))
		}
		e := s.Diagnoses[0]
		if e.Text != "" || e.ICD10Code != "" || e.PNA {
			t.Errorf("expected zero-valued entry, got %+v", e)
		}
	})

	t.Run("non-list value yields no entries", func(t *testing.T) {
		s := Summarize(decodeMap(t, `{"diagnoses": "oops"}`))
		if !s.HasDiagnoses {
			t.Error("key is present")
		}
		if len(s.Diagnoses) != 0 {
			t.Errorf("expected no entries, got %d", len(s.Diagnoses))
		}
	})
}

func TestInputText(t *testing.T) {
	t.Run("extracts text", func(t *testing.T) {
		text, ok := InputText(decodeMap(t, `{"text": "Paciente con fiebre"}`))
		if !ok || text != "Paciente con fiebre" {
			t.Errorf("got %q, %v", text, ok)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		if _, ok := InputText(decodeMap(t, `{"file": "scan.pdf"}`)); ok {
			t.Error("expected no text")
		}
	})

	t.Run("non-string text", func(t *testing.T) {
		if _, ok := InputText(decodeMap(t, `{"text": 42}`)); ok {
			t.Error("expected no text for non-string value")
		}
	})

	t.Run("nil input", func(t *testing.T) {
		if _, ok := InputText(nil); ok {
			t.Error("expected no text for nil map")
		}
	})
}

func TestApprovedDiffers(t *testing.T) {
	output := decodeMap(t, `{"diagnoses": [{"icd10_code": "R50.9"}]}`)
	amended := decodeMap(t, `{"diagnoses": [{"icd10_code": "R50.9", "pna": true}]}`)
	same := decodeMap(t, `{"diagnoses": [{"icd10_code": "R50.9"}]}`)

	tests := []struct {
		name string
		rd   payload.RequestData
		want bool
	}{
		{"no approved output", payload.RequestData{OutputData: output}, false},
		{"empty approved output", payload.RequestData{OutputData: output, ApprovedOutput: map[string]any{}}, false},
		{"identical approved output", payload.RequestData{OutputData: output, ApprovedOutput: same}, false},
		{"amended approved output", payload.RequestData{OutputData: output, ApprovedOutput: amended}, true},
		{"approved without raw output", payload.RequestData{ApprovedOutput: amended}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApprovedDiffers(tt.rd); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
