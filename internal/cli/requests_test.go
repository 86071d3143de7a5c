package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/payload"
)

func decodeListing(t *testing.T, raw string) *payload.RequestsListResponse {
	t.Helper()
	var resp payload.RequestsListResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("bad test JSON: %v", err)
	}
	return &resp
}

func TestRenderRequests(t *testing.T) {
	t.Run("empty listing", func(t *testing.T) {
		var buf bytes.Buffer
		RenderRequests(&buf, &payload.RequestsListResponse{})
		if !strings.Contains(buf.String(), "No requests found") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("coded record", func(t *testing.T) {
		resp := decodeListing(t, `{
			"requests": [{
				"request_id": "req-1",
				"type": "icd10",
				"source": "api",
				"agent_id": "agent-7",
				"status": "reviewed",
				"created_at": "2024-05-01T10:00:00Z",
				"reviewed_at": "2024-05-02T09:00:00Z",
				"reviewer_id": "dr-lopez",
				"reviewer_comments": "confirmed",
				"input_data": {"text": "Paciente con fiebre alta"},
				"output_data": {
					"diagnoses": [
						{"text": "Fiebre alta", "icd10_code": "R50.9", "document": "informe de alta", "is_main_diagnosis": true, "pna": true},
						{"text": "Tos", "icd10_code": "R05"}
					],
					"procedures": [
						{"text": "Radiografía de tórax", "icd10_code": "BW03ZZZ"}
					]
				}
			}],
			"total": 12
		}`)

		var buf bytes.Buffer
		RenderRequests(&buf, resp)
		out := buf.String()

		for _, want := range []string{
			"Found 1 request(s)",
			"Total requests: 12",
			"Request ID: req-1 | Status: reviewed | Created: 2024-05-01T10:00:00Z",
			"Type: icd10 | Source: api | Agent ID: agent-7",
			"Reviewed At: 2024-05-02T09:00:00Z | Reviewer ID: dr-lopez",
			"Reviewer Comments: confirmed",
			"Input text: Paciente con fiebre alta",
			"Diagnoses (2):",
			"1. MAIN R50.9 - Fiebre alta (informe de alta) [PNA]",
			"2. R05 - Tos",
			"Procedures (1):",
			"1. BW03ZZZ - Radiografía de tórax",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in output:\n%s", want, out)
			}
		}
		if strings.Contains(out, "Approved output") {
			t.Error("approved output should not render when absent")
		}
	})

	t.Run("unreviewed record falls back to raw payloads", func(t *testing.T) {
		resp := decodeListing(t, `{
			"requests": [{
				"request_id": "req-2",
				"type": "icd10",
				"source": "ui",
				"agent_id": "agent-1",
				"status": "pending_review",
				"created_at": "2024-05-03T08:00:00Z",
				"input_data": {"file": "scan.pdf"},
				"output_data": {"summary": "free text"}
			}]
		}`)

		var buf bytes.Buffer
		RenderRequests(&buf, resp)
		out := buf.String()

		if !strings.Contains(out, "Reviewed At: Not reviewed") {
			t.Errorf("expected unreviewed marker:\n%s", out)
		}
		if !strings.Contains(out, `Input: {"file":"scan.pdf"}`) {
			t.Errorf("expected raw input JSON:\n%s", out)
		}
		if !strings.Contains(out, `Output: {"summary":"free text"}`) {
			t.Errorf("expected raw output JSON:\n%s", out)
		}
	})

	t.Run("approved output renders only when it differs", func(t *testing.T) {
		same := decodeListing(t, `{
			"requests": [{
				"request_id": "req-3", "type": "icd10", "source": "api",
				"agent_id": "a", "status": "approved", "created_at": "2024-05-04T08:00:00Z",
				"output_data": {"diagnoses": [{"icd10_code": "R05", "text": "Tos"}]},
				"approved_output": {"diagnoses": [{"icd10_code": "R05", "text": "Tos"}]}
			}]
		}`)

		var buf bytes.Buffer
		RenderRequests(&buf, same)
		if strings.Contains(buf.String(), "Approved output") {
			t.Errorf("identical approved output should not render:\n%s", buf.String())
		}

		amended := decodeListing(t, `{
			"requests": [{
				"request_id": "req-4", "type": "icd10", "source": "api",
				"agent_id": "a", "status": "approved", "created_at": "2024-05-04T08:00:00Z",
				"output_data": {"diagnoses": [{"icd10_code": "R05", "text": "Tos"}]},
				"approved_output": {"diagnoses": [{"icd10_code": "R05.1", "text": "Tos"}]}
			}]
		}`)

		buf.Reset()
		RenderRequests(&buf, amended)
		out := buf.String()
		if !strings.Contains(out, "Approved output:") {
			t.Errorf("amended approved output should render:\n%s", out)
		}
		if !strings.Contains(out, "R05.1 - Tos") {
			t.Errorf("expected amended code:\n%s", out)
		}
	})

	t.Run("missing payloads", func(t *testing.T) {
		resp := decodeListing(t, `{
			"requests": [{
				"request_id": "req-5", "type": "ocr", "source": "api",
				"agent_id": "a", "status": "failed", "created_at": "2024-05-05T08:00:00Z"
			}]
		}`)

		var buf bytes.Buffer
		RenderRequests(&buf, resp)
		out := buf.String()
		if !strings.Contains(out, "Input: none") || !strings.Contains(out, "Output: none") {
			t.Errorf("expected placeholders for missing payloads:\n%s", out)
		}
	})
}

func TestOutputTo(t *testing.T) {
	data := map[string]any{"status": "success", "total": 3}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatalf("OutputTo failed: %v", err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded["status"] != "success" {
			t.Errorf("unexpected decoded value: %v", decoded)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatalf("OutputTo failed: %v", err)
		}
		if !strings.Contains(buf.String(), "status: success") {
			t.Errorf("unexpected yaml output:\n%s", buf.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormat("xml"), data); err == nil {
			t.Error("expected an error for unknown format")
		}
	})
}
