// Package cmd implements the command-line interface for the sitemap
// service. It provides the root command and subcommands for generating
// and serving sitemap documents.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/gositemap/cmd/generate"
	"github.com/jonesrussell/gositemap/cmd/serve"
	cmdsources "github.com/jonesrussell/gositemap/cmd/sources"
	"github.com/jonesrussell/gositemap/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// rootCmd represents the root command for the CLI.
	rootCmd = &cobra.Command{
		Use:   "gositemap",
		Short: "Generate and serve sitemap documents",
		Long: `A sitemap generation service. It encodes URL metadata into
sitemaps.org-conformant XML with Google News, Image and Video extension
support, rotates output across files, and serves the result over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are visible to viper.
	_ = godotenv.Load()

	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := config.InitViper(cfgFile); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gositemap version %s\n", version)
		},
	})

	rootCmd.AddCommand(generate.Command())
	rootCmd.AddCommand(serve.Command())
	rootCmd.AddCommand(cmdsources.Command())
}
