package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tgmirror",
	Short: "tgmirror - caching reverse proxy for the Telegram Bot API",
	Long: `Tgmirror is a reverse proxy that sits in front of the Telegram Bot API.

It forwards bot-method calls upstream unchanged, but mines every response
for message, chat, and user entities and persists them into a local cache.
A handful of read methods (getMessage, getMessages, getChats, getUser) are
then served directly from that cache:
  - Transparent, byte-exact forwarding with token validation
  - Recursive response mining into an idempotent entity cache
  - Cache-served history queries with stable pagination
  - Optional big-upload path for payloads above the Bot API size limit`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
