package cmd

import (
	"context"
	"os"

	"github.com/jsphweid/musixbooth/config"
	"github.com/jsphweid/musixbooth/db"
	"github.com/jsphweid/musixbooth/logger"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "musixbooth",
	Short: "Tap tempo, delay times and scale finder",
	Long: `musixbooth is a small toolkit for musicians: tap a tempo, turn it into
delay and reverb times, and find which scales fit a set of notes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		setupLogger(cfg.Log.Level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./musixbooth.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "DEBUG, INFO, WARN or ERROR")
}

func setupLogger(level string) {
	l := logger.New(logger.DefaultConfig())
	logger.SetDefault(l)
	parsed, ok := logger.ParseLevel(level)
	if !ok {
		logger.Warnf("unknown log level %q, using INFO", level)
	}
	l.SetLevel(parsed)
}

func openStore() (db.Store, error) {
	return db.Open(cfg.Store.Options())
}

// lastTempo reads the stored tempo, falling back to fallback on any error.
func lastTempo(fallback int) int {
	store, err := openStore()
	if err != nil {
		logger.Debugf("no store available: %v", err)
		return fallback
	}
	defer store.Close()
	return db.LoadTempoOr(context.Background(), store, fallback)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
