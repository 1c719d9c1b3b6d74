package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lkpd/internal/logger"
	"github.com/abhisek/lkpd/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lkpd",
	Short: "Generator LKPD Kurikulum Merdeka",
	Long:  "LKPD is a terminal app that drafts Kurikulum Merdeka student worksheets (Lembar Kerja Peserta Didik) with an AI model.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LKPD_DB env var)")
	rootCmd.PersistentFlags().String("out", ".", "Directory for exported Word files")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LKPD_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// newLogger builds the command logger. path "" logs to stderr.
func newLogger(cmd *cobra.Command, path string) (*logger.Logger, error) {
	level := os.Getenv("LKPD_LOG_LEVEL")
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, Path: path})
}

// openStore opens the event store. A store that cannot be opened is
// reported and skipped.
func openStore(cmd *cobra.Command, log *logger.Logger) (*store.Store, store.EventRepo) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		log.Warn("event store disabled", "error", err)
		return nil, nil
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Warn("event store disabled", "path", dbPath, "error", err)
		return nil, nil
	}
	return st, st.EventRepo()
}
