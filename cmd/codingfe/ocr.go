package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/cli"
	"github.com/carlosmlribeiro/ai-coding-fe/internal/preflight"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr <file>",
	Short: "Extract text from a document",
	Long: `Upload a document to the coding service and print the extracted text.

Supported document types: pdf, png, jpg, jpeg, tiff, bmp.

Examples:
  codingfe ocr discharge_note.pdf
  codingfe ocr scan.png -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		report, err := preflight.Check(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "uploading %s (%s)\n", report.Name, describeReport(report))

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		resp, err := newClient().RunOCR(ctx, content, report.Name)
		if err != nil {
			return err
		}

		return cli.Output(resp)
	},
}

// describeReport renders preflight details for progress lines.
func describeReport(report *preflight.Report) string {
	desc := fmt.Sprintf("%d bytes, %s", report.Size, report.MIMEType)
	if report.PageCount > 0 {
		desc = fmt.Sprintf("%s, %d pages", desc, report.PageCount)
	}
	return desc
}

func init() {
	rootCmd.AddCommand(ocrCmd)
}
