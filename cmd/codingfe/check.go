package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/spf13/cobra"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/coding"
)

var (
	checkWait     bool
	checkAttempts uint
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check connectivity to the coding service",
	Long: `Probe the request history endpoint and report whether the service is
reachable. Any HTTP answer counts as reachable, including error responses;
only transport failures do not.

With --wait, the probe is retried until it succeeds or attempts run out.
Contract calls themselves are never retried; retry lives only here.

Examples:
  codingfe check
  codingfe check --wait --attempts 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cc := clientConfig()
		client := coding.New(cc)

		probe := func() error {
			_, err := client.ListRequests(ctx, "")
			if err == nil {
				return nil
			}
			var f *coding.Failure
			if errors.As(err, &f) && f.Kind != coding.FailureTransport {
				// The service answered; that is reachability.
				return nil
			}
			return err
		}

		var err error
		if checkWait {
			err = retry.Do(
				probe,
				retry.Context(ctx),
				retry.Attempts(checkAttempts),
				retry.Delay(1*time.Second),
			)
		} else {
			err = probe()
		}
		if err != nil {
			return fmt.Errorf("history service is not reachable: %w", err)
		}

		fmt.Printf("History service is reachable at %s\n", cc.HistoryBaseURL)
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkWait, "wait", false, "retry until the service is reachable")
	checkCmd.Flags().UintVar(&checkAttempts, "attempts", 30, "attempts before --wait gives up")

	rootCmd.AddCommand(checkCmd)
}
