package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/downstrip/format"
	"github.com/dhamidi/downstrip/grammar"
)

func newParseCmd() *cobra.Command {
	var grammarPath string
	var outputFormat string
	var keepNewline bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a file with a grammar and print the result",
		Long: `Parse a file with the rules of a grammar file and print the tree.

If no file is provided, reads the input from stdin. A single trailing
newline is dropped unless --keep-newline is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load(grammarPath)
			if err != nil {
				return fmt.Errorf("load grammar: %w", err)
			}

			encoder, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}

			input, err := readInput(args)
			if err != nil {
				return err
			}
			if !keepNewline {
				input = trimNewline(input)
			}

			node, err := g.Parse(input)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "grammar file (.yaml, .yml or .toml)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVar(&keepNewline, "keep-newline", false, "keep the input's trailing newline")
	cmd.MarkFlagRequired("grammar")

	return cmd
}
