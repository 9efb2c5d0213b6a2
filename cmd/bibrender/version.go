// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibrender/internal/document"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of bibrender",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bibrender %s (host protocol %s)\n", version, document.HostVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
