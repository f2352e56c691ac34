// inspect.go implements `appstack inspect`.
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/example/appstack/internal/stack"
)

func newInspectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file|dir>...",
		Short: "Show manifest identity and collection counts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadStackDocs(args)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer tw.Flush()

			for _, doc := range docs {
				def, err := stack.Normalize(doc.Raw)
				if err != nil {
					return errors.Wrap(err, doc.Path)
				}
				fmt.Fprintf(tw, "STACK\t%s\n", doc.Path)
				if def.Manifest != nil {
					fmt.Fprintf(tw, "MANIFEST\t%v %v\n", def.Manifest["name"], def.Manifest["version"])
				}
				fmt.Fprintln(tw, "COLLECTION\tENTITIES")
				for _, name := range stack.CollectionNames {
					if !def.HasCollection(name) {
						continue
					}
					fmt.Fprintf(tw, "%s\t%d\n", name, len(def.Collections[name]))
				}
				fmt.Fprintln(tw)
			}
			return nil
		},
	}
	return cmd
}
