package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lkpd/internal/app"
	"github.com/abhisek/lkpd/internal/export"
	"github.com/abhisek/lkpd/internal/llm"
	"github.com/abhisek/lkpd/internal/logger"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	logPath, err := logPathForTUI()
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, logPath)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	st, eventRepo := openStore(cmd, log)
	if st != nil {
		defer st.Close()
	}

	outDir, _ := cmd.Flags().GetString("out")
	opts := app.Options{
		Clipboard: export.SystemClipboard{},
		OutDir:    outDir,
		Logger:    log,
	}

	provider, cfg, err := llm.NewProviderFromEnv(cmd.Context(), eventRepo, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Generation will be unavailable.")
		log.Error("provider setup failed", "error", err)
		opts.ProviderErr = err
	} else {
		opts.Provider = provider
		log.Info("starting TUI", "provider", cfg.Provider, "model", provider.ModelID(), "out", outDir)
	}

	return app.Run(opts)
}

func logPathForTUI() (string, error) {
	p, err := logger.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("resolve log path: %w", err)
	}
	return p, nil
}
