package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/citydir/internal/cliout"
	"github.com/jackzampolin/citydir/internal/config"
	"github.com/jackzampolin/citydir/internal/home"
	"github.com/jackzampolin/citydir/internal/metrics"
	"github.com/jackzampolin/citydir/internal/providers"
	"github.com/jackzampolin/citydir/internal/svcctx"
	"github.com/jackzampolin/citydir/version"
)

var (
	cfgFile      string
	homePath     string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "citydir",
	Short: "Historical city directory digitization pipeline",
	Long: `citydir turns scanned city directory pages into structured resident
records.

The pipeline includes:
  - PDF ingestion with page image rendering
  - Multi-provider OCR (Mistral, OpenAI vision, local Tesseract)
  - Entry segmentation that re-folds wrapped lines
  - Field extraction (names, occupation, residence, spouse, business)
  - CSV / JSON-lines / YAML export with record validation`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.citydir/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homePath, "home", "", "citydir home directory (default: ~/.citydir)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cliout.SetFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(scansCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(extractCmd)
}

// newLogger builds the CLI logger honoring --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// setupContext assembles the service bundle and attaches it to the
// command's context so downstream components can extract what they need.
func setupContext(cmd *cobra.Command) (context.Context, *svcctx.Services, error) {
	svc, err := setupServices()
	if err != nil {
		return nil, nil, err
	}
	return svcctx.WithServices(cmd.Context(), svc), svc, nil
}

// setupServices assembles the service bundle shared by commands.
func setupServices() (*svcctx.Services, error) {
	logger := newLogger()

	h, err := home.New(homePath)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}

	cfgPath := cfgFile
	if cfgPath == "" && h.ConfigExists() {
		cfgPath = h.ConfigPath()
	}
	mgr, err := config.NewManager(cfgPath)
	if err != nil {
		return nil, err
	}

	registry := providers.NewRegistry()
	registry.SetLogger(logger)
	registry.ApplyConfig(mgr.Get().ToProviderRegistryConfig())
	mgr.OnChange(func(cfg *config.Config) {
		registry.ApplyConfig(cfg.ToProviderRegistryConfig())
	})
	mgr.WatchConfig()

	return &svcctx.Services{
		Config:   mgr,
		Registry: registry,
		Logger:   logger,
		Home:     h,
		Metrics:  metrics.NewRecorder(),
	}, nil
}
