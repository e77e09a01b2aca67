package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func catalogCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog [name]",
		Short: "List the reference catalog, or show one medicine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog("")
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return render(cmd.OutOrStdout(), opts.output, cat.Entries())
			}

			entry, ok := cat.Lookup(args[0])
			if !ok {
				return fmt.Errorf("medicine %q is not in the catalog", args[0])
			}
			return render(cmd.OutOrStdout(), opts.output, entry)
		},
	}
	return cmd
}
