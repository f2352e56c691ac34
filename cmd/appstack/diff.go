// diff.go implements `appstack diff`.
package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/example/appstack/internal/report"
	"github.com/example/appstack/internal/stack"
	"github.com/example/appstack/internal/stackfile"
)

func newDiffCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two stack files",
		Long: `Normalize both stacks and report their drift: an entity-level summary per
collection, then a unified diff over the canonical YAML rendering.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := loadNormalized(args[0])
			if err != nil {
				return err
			}
			right, err := loadNormalized(args[1])
			if err != nil {
				return err
			}
			diff, err := report.BuildStackDiff(left, right, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), diff.Render())
			return nil
		},
	}
	return cmd
}

func loadNormalized(path string) (*stack.Definition, error) {
	raw, err := stackfile.Load(path)
	if err != nil {
		return nil, err
	}
	def, err := stack.Normalize(raw)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return def, nil
}
