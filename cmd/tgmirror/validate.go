package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mirrorbot-hq/tgmirror/pkg/cli"
	"mirrorbot-hq/tgmirror/pkg/config"
	"mirrorbot-hq/tgmirror/pkg/upload"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load and validate the configuration file without starting the proxy.

Environment overrides (TGMIRROR_*) are applied before validation, so the
result reflects the configuration the proxy would actually run with.

Examples:
  # Validate the default config file
  tgmirror validate

  # Validate a specific file
  tgmirror validate --config /etc/tgmirror/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  Listen address: %s\n", cfg.Server.ListenAddress)
	fmt.Printf("  Upstream: %s\n", cfg.Upstream.BaseURL)
	fmt.Printf("  Cache: %s\n", cfg.Cache.Path)
	uploadCfg := upload.Config{APIID: cfg.Upload.APIID, APIHash: cfg.Upload.APIHash}
	if uploadCfg.Enabled() {
		fmt.Println("  Big-upload path: configured")
	}
	return nil
}
