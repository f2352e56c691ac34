// compose.go implements `appstack compose`.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/appstack/internal/config"
	"github.com/example/appstack/internal/schema"
	"github.com/example/appstack/internal/stack"
	"github.com/example/appstack/internal/stackfile"
)

func newComposeCommand(a *app) *cobra.Command {
	opts := config.NewComposeOptions()
	cmd := &cobra.Command{
		Use:   "compose <file|dir>...",
		Short: "Merge stacks into one effective configuration",
		Long: `Normalize every input stack and merge them in argument order: collections
concatenate, the manifest follows --manifest, i18n is last-stack-wins, and
same-named objects follow --object-conflict.

Composition is purely structural; pass --validate to run schema and
cross-reference validation over the result.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadStackDocs(args)
			if err != nil {
				return err
			}
			stacks := make([]*stack.Definition, 0, len(docs))
			for _, doc := range docs {
				def, err := stack.Normalize(doc.Raw)
				if err != nil {
					return errors.Wrap(err, doc.Path)
				}
				stacks = append(stacks, def)
			}

			composed, err := stack.Compose(stacks, stack.ComposeOptions{
				ObjectConflict: stack.ObjectConflict(opts.ObjectConflict),
				Manifest:       opts.Manifest,
				Namespace:      opts.Namespace,
			})
			if err != nil {
				return err
			}
			a.log().Debug("composed stacks",
				zap.Int("stacks", len(stacks)),
				zap.Int("objects", len(composed.Collection(stack.CollectionObjects))))

			if opts.Validate {
				registry := schema.Default()
				composed, err = registry.Validate(composed)
				if err != nil {
					return err
				}
				if err := stack.CheckRefs(composed); err != nil {
					return err
				}
			}

			out, err := stackfile.Marshal(composed)
			if err != nil {
				return err
			}
			if opts.Output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(opts.Output, out, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", opts.Output)
			}
			return nil
		},
	}
	opts.BindFlags(cmd.Flags())
	return cmd
}
