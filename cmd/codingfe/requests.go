package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/cli"
)

var (
	requestIDFilter string
	requestsRaw     bool
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Request history commands",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List previously submitted requests",
	Long: `Fetch previously submitted requests from the history service and render
them for review: request metadata, reviewer fields, the input text and the
coded output. An approved output is shown only when it differs from the
raw output.

Examples:
  codingfe requests list
  codingfe requests list --request-id req-123
  codingfe requests list --raw -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		resp, err := newClient().ListRequests(ctx, requestIDFilter)
		if err != nil {
			return err
		}

		if requestsRaw {
			return cli.Output(resp)
		}

		cli.RenderRequests(os.Stdout, resp)
		return nil
	},
}

func init() {
	requestsListCmd.Flags().StringVar(&requestIDFilter, "request-id", "", "filter by request ID")
	requestsListCmd.Flags().BoolVar(&requestsRaw, "raw", false, "dump the full listing in the configured output format")

	requestsCmd.AddCommand(requestsListCmd)
	rootCmd.AddCommand(requestsCmd)
}
