// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibrender CLI. Without a
// subcommand it runs as a host plugin: it reads documents as JSON from
// stdin, renders citations and references, and writes them to stdout.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/bibrender/internal/bib"
	"github.com/pdiddy/bibrender/internal/config"
	"github.com/pdiddy/bibrender/internal/document"
	"github.com/pdiddy/bibrender/internal/logging"
	"github.com/pdiddy/bibrender/internal/render"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Run bare, it is the host plugin.
var rootCmd = &cobra.Command{
	Use:   "bibrender",
	Short: "Render citations and reference lists in Markdown documents",
	Long: `bibrender replaces @Key citation markers in Markdown documents with
formatted citations and inserts a reference list where the placeholder
([[_REFS_]] by default) appears.

Run without a subcommand, bibrender acts as a literate-programming host
plugin: documents arrive as JSON on stdin and leave as JSON on stdout, and
the plugin section of the host configuration supplies the settings. Use
render and check to work on Markdown files directly.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runPlugin,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibrender.yaml or ~/.config/bibrender/config.yaml)")
	rootCmd.PersistentFlags().String(config.KeyLogLevel, logging.LevelNormal, "console log level: none, normal or debug")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup(config.KeyLogLevel))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibrender")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibrender"))
		}
	}

	viper.SetEnvPrefix("BIBRENDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the console logger from the log-level setting.
func newLogger() (*zap.Logger, error) {
	return logging.New(viper.GetString(config.KeyLogLevel))
}

// runPlugin handles one host invocation. The settings come from the host
// message rather than from files or flags.
func runPlugin(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	data, err := document.ReadData(cmd.InOrStdin())
	if err != nil {
		return err
	}
	cfg, err := config.FromMap(data.Context.Config)
	if err != nil {
		return err
	}
	document.CheckVersion(data.Context, log)

	bibliography, err := bib.Load(cfg.Bibliographies, log)
	if err != nil {
		return err
	}
	if err := render.Run(data.Documents, bibliography, cfg, log); err != nil {
		return err
	}
	return document.WriteData(cmd.OutOrStdout(), data)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
