package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/downstrip/grammar"
)

func newCheckCmd() *cobra.Command {
	var grammarPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compile a grammar file and list its rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load(grammarPath)
			if err != nil {
				return err
			}

			f := g.File()
			fmt.Printf("engine\t%s\n", f.Engine)
			for i, r := range f.Rules {
				fmt.Printf("%d\t%s\t%s\t%s\n", i, r.Name, rulePattern(r), strings.Join(ruleDecorations(r), ","))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "grammar file (.yaml, .yml or .toml)")
	cmd.MarkFlagRequired("grammar")

	return cmd
}

func rulePattern(r grammar.RuleSpec) string {
	if r.Pattern == "" {
		return "-"
	}
	return r.Pattern
}

func ruleDecorations(r grammar.RuleSpec) []string {
	var decorations []string
	if r.Veto != "" {
		decorations = append(decorations, "veto")
	}
	if len(r.Mask) > 0 {
		decorations = append(decorations, fmt.Sprintf("mask%v", r.Mask))
	}
	if r.Shallow {
		decorations = append(decorations, "shallow")
	}
	if r.Group != nil {
		decorations = append(decorations, fmt.Sprintf("group(%s %s)", r.Group.Open, r.Group.Close))
	}
	if len(decorations) == 0 {
		decorations = append(decorations, "-")
	}
	return decorations
}
