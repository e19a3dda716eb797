package main

import (
	"fmt"
	"os"

	"eve-navigator/internal/config"
	"eve-navigator/internal/dataset"
	"eve-navigator/internal/engine"
	"eve-navigator/internal/logger"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags.
var (
	version   = "0.3.0"
	commit    = ""
	buildDate = ""
)

var (
	cfg          *config.Config
	flagConfig   string
	flagDataset  string
	flagManifest string
	flagRegistry string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("eve-navigator version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("eve-navigator version %s-dev", version)
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "eve-navigator",
		Short:   "Universe navigation queries over the EVE stargate graph",
		Version: versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return resolveConfig()
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagDataset, "dataset", "", "Dataset artifact path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagManifest, "manifest", "", "Manifest path (default <dataset>.manifest.json)")
	rootCmd.PersistentFlags().StringVar(&flagRegistry, "registry", "", "Dataset registry SQLite path (overrides config)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRouteCmd())
	rootCmd.AddCommand(newSystemsCmd())
	rootCmd.AddCommand(newBordersCmd())
	rootCmd.AddCommand(newNearestCmd())
	rootCmd.AddCommand(newLoopCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newVersionsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers flags over the YAML file over the defaults.
func resolveConfig() error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDataset != "" {
		loaded.DatasetPath = flagDataset
	}
	if flagManifest != "" {
		loaded.ManifestPath = flagManifest
	}
	if flagRegistry != "" {
		loaded.RegistryPath = flagRegistry
	}
	cfg = loaded
	return nil
}

// loadNavigator loads and validates the configured dataset for a one-shot
// query command. The serve path has its own loader with registry fallback.
func loadNavigator() (*engine.Navigator, error) {
	data, err := dataset.Load(cfg.DatasetPath, cfg.ManifestPath)
	if err != nil {
		logger.Error("Dataset", err.Error())
		return nil, err
	}
	return engine.NewNavigator(data), nil
}
