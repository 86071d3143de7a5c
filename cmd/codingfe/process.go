package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/cli"
)

var processFile string

var processCmd = &cobra.Command{
	Use:   "process [text]",
	Short: "Extract ICD-10 codes from clinical text",
	Long: `Submit clinical text to the coding service and render the extracted
diagnoses and procedures.

Text is taken from the argument, --file, or stdin, in that order.
Blank text is rejected before anything is sent.

Examples:
  codingfe process "Paciente con fiebre alta y tos"
  codingfe process --file note.txt
  cat note.txt | codingfe process`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		text, err := processInput(args)
		if err != nil {
			return err
		}

		resp, err := newClient().ProcessText(ctx, text)
		if err != nil {
			return err
		}

		return cli.Output(resp)
	},
}

// processInput resolves the text to code: argument, --file, then stdin.
func processInput(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if processFile != "" {
		data, err := os.ReadFile(processFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", processFile, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	processCmd.Flags().StringVar(&processFile, "file", "", "read text from a file")
	rootCmd.AddCommand(processCmd)
}
