package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/cli"
	"github.com/carlosmlribeiro/ai-coding-fe/internal/coding"
	"github.com/carlosmlribeiro/ai-coding-fe/internal/config"
	"github.com/carlosmlribeiro/ai-coding-fe/version"
)

var (
	cfgFile      string
	outputFormat string
	baseURL      string
	historyURL   string
	authToken    string
	verbose      bool

	cfgManager *config.Manager
)

var rootCmd = &cobra.Command{
	Use:   "codingfe",
	Short: "Front-end for the medical OCR and ICD-10 coding service",
	Long: `codingfe talks to the remote OCR and ICD-10 coding service: it uploads
documents for text extraction, submits clinical text for code extraction,
and browses previously submitted requests.

Typical use:
  codingfe ocr discharge_note.pdf       # Extract text from a document
  codingfe process "Paciente con ..."   # Extract ICD-10 codes from text
  codingfe scan discharge_note.pdf      # Both steps in one go
  codingfe requests list                # Browse request history`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.codingfe/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&baseURL, "base-url", "", "coding service URL (overrides config)",
	)
	rootCmd.PersistentFlags().StringVar(
		&historyURL, "history-url", "", "request history URL (overrides config)",
	)
	rootCmd.PersistentFlags().StringVar(
		&authToken, "token", "", "bearer token (overrides config)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Load .env and config before any command runs. A missing .env is a
	// non-event; a broken config file is not.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cli.SetOutputFormat(outputFormat)

		_ = godotenv.Load()

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfgManager = mgr
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the logger handed to the client. Logs go to stderr so
// structured output on stdout stays parseable.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// clientConfig resolves the client configuration: config file and
// environment first, then flag overrides.
func clientConfig() coding.Config {
	cc := cfgManager.Get().ToClientConfig()
	if baseURL != "" {
		cc.BaseURL = baseURL
	}
	if historyURL != "" {
		cc.HistoryBaseURL = historyURL
	}
	if authToken != "" {
		cc.AuthToken = authToken
	}
	cc.Logger = newLogger()
	return cc
}

func newClient() *coding.Client {
	return coding.New(clientConfig())
}
