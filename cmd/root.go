// Package cmd implements the command-line interface for gotender.
// It provides the root command and subcommands for tender discovery,
// catalog matching, and serving the HTTP API.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/orchestrarfp/gotender/cmd/common"
	"github.com/orchestrarfp/gotender/cmd/discover"
	"github.com/orchestrarfp/gotender/cmd/httpd"
	cmdmatch "github.com/orchestrarfp/gotender/cmd/match"
	cmdtenders "github.com/orchestrarfp/gotender/cmd/tenders"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "gotender",
		Short: "A tender discovery and scoring pipeline",
		Long: `Discover public tender notices from configured procurement portals,
score them by urgency and relevance, and match them against a product catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	// Parse flags early so config and logger construction see them.
	_ = rootCmd.ParseFlags(os.Args[1:])
	common.Configure(cfgFile, debug)

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gotender version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(discover.Command())
	rootCmd.AddCommand(cmdtenders.Command())
	rootCmd.AddCommand(cmdmatch.Command())
	rootCmd.AddCommand(httpd.Command())
}
