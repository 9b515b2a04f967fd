package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/downstrip/parser"
	"github.com/dhamidi/downstrip/pattern"
)

func newGroupsCmd() *cobra.Command {
	var open, closing string
	var backtracking bool

	cmd := &cobra.Command{
		Use:   "groups [text]",
		Short: "Print the top-level balanced groups of a text",
		Long: `Locate the outermost balanced groups between --open and --close.

Each group is printed as its byte span followed by its text, delimiters
included. If no text is provided, reads it from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compile := func(expr string) (pattern.Pattern, error) {
				return pattern.Compile(expr)
			}
			if backtracking {
				compile = func(expr string) (pattern.Pattern, error) {
					return pattern.CompileBacktracking(expr)
				}
			}

			openPattern, err := compile(open)
			if err != nil {
				return fmt.Errorf("compile open: %w", err)
			}
			closePattern, err := compile(closing)
			if err != nil {
				return fmt.Errorf("compile close: %w", err)
			}

			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				in, err := readInput(nil)
				if err != nil {
					return err
				}
				text = trimNewline(in)
			}

			groups, err := parser.FindTopLevelGroups(text, pattern.Whole(text), openPattern, closePattern)
			if err != nil {
				return err
			}

			var sb strings.Builder
			for _, g := range groups {
				fmt.Fprintf(&sb, "%s\t%q\n", g, g.In(text))
			}
			fmt.Print(sb.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&open, "open", `\(`, "opening delimiter pattern")
	cmd.Flags().StringVar(&closing, "close", `\)`, "closing delimiter pattern")
	cmd.Flags().BoolVar(&backtracking, "backtracking", false, "compile delimiters with the backtracking engine")

	return cmd
}
