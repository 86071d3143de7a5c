package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/payload"
	"github.com/carlosmlribeiro/ai-coding-fe/internal/review"
)

// RenderRequests writes a human-readable view of a request listing.
// Coded entries are rendered as lines; payloads the summarizer does not
// recognize fall back to raw JSON.
func RenderRequests(w io.Writer, resp *payload.RequestsListResponse) {
	if len(resp.Requests) == 0 {
		fmt.Fprintln(w, "No requests found matching the criteria.")
		return
	}

	fmt.Fprintf(w, "Found %d request(s)\n", len(resp.Requests))
	if resp.Total != 0 {
		fmt.Fprintf(w, "Total requests: %d\n", resp.Total)
	}

	for _, rd := range resp.Requests {
		fmt.Fprintf(w, "\nRequest ID: %s | Status: %s | Created: %s\n", rd.RequestID, rd.Status, rd.CreatedAt)
		fmt.Fprintf(w, "  Type: %s | Source: %s | Agent ID: %s\n", rd.Type, rd.Source, rd.AgentID)

		reviewedAt := rd.ReviewedAt
		if reviewedAt == "" {
			reviewedAt = "Not reviewed"
		}
		fmt.Fprintf(w, "  Reviewed At: %s", reviewedAt)
		if rd.ReviewerID != "" {
			fmt.Fprintf(w, " | Reviewer ID: %s", rd.ReviewerID)
		}
		fmt.Fprintln(w)
		if rd.ReviewerComments != "" {
			fmt.Fprintf(w, "  Reviewer Comments: %s\n", rd.ReviewerComments)
		}

		renderInput(w, rd.InputData)
		renderOutput(w, "Output", rd.OutputData)
		if review.ApprovedDiffers(rd) {
			renderOutput(w, "Approved output", rd.ApprovedOutput)
		}
	}
}

func renderInput(w io.Writer, input map[string]any) {
	if len(input) == 0 {
		fmt.Fprintln(w, "  Input: none")
		return
	}
	if text, ok := review.InputText(input); ok {
		fmt.Fprintf(w, "  Input text: %s\n", text)
		return
	}
	fmt.Fprintf(w, "  Input: %s\n", rawJSON(input))
}

func renderOutput(w io.Writer, label string, output map[string]any) {
	if len(output) == 0 {
		fmt.Fprintf(w, "  %s: none\n", label)
		return
	}

	s := review.Summarize(output)
	if !s.Structured() {
		fmt.Fprintf(w, "  %s: %s\n", label, rawJSON(output))
		return
	}

	fmt.Fprintf(w, "  %s:\n", label)
	if s.HasDiagnoses {
		fmt.Fprintf(w, "    Diagnoses (%d):\n", len(s.Diagnoses))
		for i, e := range s.Diagnoses {
			prefix := ""
			if e.IsMainDiagnosis {
				prefix = "MAIN "
			}
			line := fmt.Sprintf("      %d. %s%s - %s", i+1, prefix, e.ICD10Code, e.Text)
			if e.Document != "" {
				line += fmt.Sprintf(" (%s)", e.Document)
			}
			if e.PNA {
				line += " [PNA]"
			}
			fmt.Fprintln(w, line)
		}
	}
	if s.HasProcedures {
		fmt.Fprintf(w, "    Procedures (%d):\n", len(s.Procedures))
		for i, e := range s.Procedures {
			line := fmt.Sprintf("      %d. %s - %s", i+1, e.ICD10Code, e.Text)
			if e.Document != "" {
				line += fmt.Sprintf(" (%s)", e.Document)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func rawJSON(m map[string]any) string {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprintf("%v", m)
	}
	return string(data)
}
