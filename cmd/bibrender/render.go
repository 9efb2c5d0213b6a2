// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibrender/internal/bib"
	"github.com/pdiddy/bibrender/internal/config"
	"github.com/pdiddy/bibrender/internal/document"
	"github.com/pdiddy/bibrender/internal/render"
	"github.com/pdiddy/bibrender/pkg/types"
)

// defaultOutputDir receives rendered files when --output-dir is not given.
const defaultOutputDir = "rendered"

var renderCmd = &cobra.Command{
	Use:   "render [files or directories]",
	Short: "Render citations in Markdown files",
	Long: `Render reads Markdown files (a directory stands for the .md files in it),
replaces citation markers outside fenced code blocks, inserts reference
lists, and writes the results under the output directory with the same
relative paths. With --refs-file, all files share one numbering and one
reference list in that file.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: bindRenderFlags,
	RunE:    runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
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
	if err := render.Run(docs, bibliography, cfg, log); err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	if err := document.WriteMarkdown(docs, outDir); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Rendered %d document(s) into %s\n", len(docs), outDir)
	return nil
}

// addBibliographyFlags registers the flags shared by render and check.
func addBibliographyFlags(fs *pflag.FlagSet) {
	fs.StringSlice(config.KeyBibliography, nil, "bibliography files (.bib, .yaml, .json, .db), merged in order")
}

// bindRenderFlags binds the command's flags to the configuration keys.
// Binding happens at run time because render and check share key names.
func bindRenderFlags(cmd *cobra.Command, args []string) error {
	for _, key := range []string{
		config.KeyBibliography, config.KeyStyle, config.KeyRefsFile,
		config.KeyPlaceholder, config.KeyRenderKey, config.KeyLinkRefs,
	} {
		if f := cmd.Flags().Lookup(key); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag %s: %w", key, err)
			}
		}
	}
	return nil
}

func init() {
	addBibliographyFlags(renderCmd.Flags())
	renderCmd.Flags().String(config.KeyStyle, string(types.StyleAuthorYear), "citation style: numbered or author-year")
	renderCmd.Flags().String(config.KeyRefsFile, "", "document that receives one combined reference list")
	renderCmd.Flags().String(config.KeyPlaceholder, types.DefaultPlaceholder, "token replaced by the reference list")
	renderCmd.Flags().Bool(config.KeyRenderKey, true, "prefix reference entries with their key")
	renderCmd.Flags().Bool(config.KeyLinkRefs, true, "link citations to anchored reference entries")
	renderCmd.Flags().String("output-dir", defaultOutputDir, "directory for the rendered files")

	rootCmd.AddCommand(renderCmd)
}
