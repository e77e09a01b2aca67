// Package commands implements the medlabel command line: the HTTP service and
// one-shot extraction, validation and catalog queries.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giygas/medlabel-api/catalog"
)

// options are shared by every subcommand through persistent flags
type options struct {
	catalogPath string
	output      string
}

// loadCatalog returns the catalog named by --catalog, falling back to def and
// then to the built-in table
func (o *options) loadCatalog(def string) (*catalog.Catalog, error) {
	path := o.catalogPath
	if path == "" {
		path = def
	}
	return catalog.Load(path)
}

// NewRootCommand builds the medlabel command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "medlabel",
		Short:         "Medicine label recognition and validation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unknown output format %q: use %s or %s", opts.output, outputJSON, outputYAML)
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "YAML catalog file (default: built-in catalog, or CATALOG_FILE for serve)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or yaml")

	root.AddCommand(serveCmd(opts), extractCmd(opts), validateCmd(opts), catalogCmd(opts))
	return root
}

// Execute runs the root command with os.Args
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}
