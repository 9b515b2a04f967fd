package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/downstrip/grammar"
	"github.com/dhamidi/downstrip/lsp"
)

func newLSPCmd() *cobra.Command {
	var grammarPath string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a Language Server Protocol server reporting parse errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load(grammarPath)
			if err != nil {
				return fmt.Errorf("load grammar: %w", err)
			}
			server := lsp.NewServer(g, version)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "grammar file (.yaml, .yml or .toml)")
	cmd.MarkFlagRequired("grammar")

	return cmd
}
