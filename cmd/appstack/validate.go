// validate.go implements `appstack validate`.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/appstack/internal/config"
	"github.com/example/appstack/internal/schema"
	"github.com/example/appstack/internal/stack"
)

func newValidateCommand(a *app) *cobra.Command {
	opts := config.NewDefineOptions()
	cmd := &cobra.Command{
		Use:   "validate <file|dir>...",
		Short: "Normalize and validate stack definitions",
		Long: `Load each stack file, normalize it into canonical array form, validate
every entity against its collection schema, and resolve cross-references.

With --strict=false only normalization runs; use it for stacks that
intentionally reference objects owned by a sibling stack loaded later.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadStackDocs(args)
			if err != nil {
				return err
			}
			registry := schema.Default()
			failed := 0
			for _, doc := range docs {
				_, err := stack.Define(doc.Raw, stack.DefineOptions{
					Strict:   opts.Strict,
					Registry: registry,
				})
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s\n%s\n", doc.Path, err)
					continue
				}
				a.log().Debug("stack ok", zap.String("path", doc.Path))
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("ok"), doc.Path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d stacks failed validation", failed, len(docs))
			}
			return nil
		},
	}
	opts.BindFlags(cmd.Flags())
	return cmd
}
