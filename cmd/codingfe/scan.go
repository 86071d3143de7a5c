package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/cli"
	"github.com/carlosmlribeiro/ai-coding-fe/internal/preflight"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Extract text from a document and code it in one step",
	Long: `Run OCR on a document, then submit the extracted text for ICD-10
coding. The extracted text is handed directly from the first call to the
second.

Examples:
  codingfe scan discharge_note.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		report, err := preflight.Check(path)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		client := newClient()

		fmt.Fprintf(os.Stderr, "scanning %s (%s)\n", report.Name, describeReport(report))
		ocrResp, err := client.RunOCR(ctx, content, report.Name)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "extracted %d characters, coding...\n", len(ocrResp.Text))
		codeResp, err := client.ProcessText(ctx, ocrResp.Text)
		if err != nil {
			return err
		}

		return cli.Output(codeResp)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
