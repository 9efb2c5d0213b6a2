// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibrender/internal/bib"
	"github.com/pdiddy/bibrender/internal/cite"
	"github.com/pdiddy/bibrender/internal/config"
	"github.com/pdiddy/bibrender/internal/document"
)

var checkCmd = &cobra.Command{
	Use:   "check [files or directories]",
	Short: "List citation keys missing from the bibliography",
	Long: `Check scans Markdown files for citation markers and prints every key that
has no bibliography entry, one per line. Nothing is rewritten. The command
fails when any key is missing.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: bindRenderFlags,
	RunE:    runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	docs, err := document.LoadMarkdown(args)
	if err != nil {
		return err
	}
	bibliography, err := bib.Load(cfg.Bibliographies, log)
	if err != nil {
		return err
	}

	missing := cite.UnknownKeys(docs, bibliography)
	for _, key := range missing {
		fmt.Fprintln(cmd.OutOrStdout(), key)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d citation key(s) not found in the bibliography", len(missing))
	}
	return nil
}

func init() {
	addBibliographyFlags(checkCmd.Flags())
	rootCmd.AddCommand(checkCmd)
}
