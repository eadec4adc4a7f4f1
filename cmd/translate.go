package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kubev2v/docsql/pkg/filter"
	"github.com/kubev2v/docsql/pkg/schema"
	"github.com/kubev2v/docsql/pkg/translator"
)

type translateOptions struct {
	catalog    string
	table      string
	filter     string
	projection string
}

// NewTranslateCommand prints the SELECT statement for a filter and a
// projection given as JSON or YAML documents.
func NewTranslateCommand() *cobra.Command {
	opts := &translateOptions{}

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Print the SQL statement for a filter and a projection",
		Example: `  docsql translate --table users --filter '{"age": {"$gt": 18}}' --projection '{"name": 1}'
  docsql translate --catalog catalog.yaml --table users --filter '{"$or": [{"name": "john"}, {"age": 1}]}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statement, err := opts.translate()
			if err != nil {
				return err
			}
			_, err = color.New(color.FgCyan, color.Bold).Fprintln(cmd.OutOrStdout(), statement)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.catalog, "catalog", "", "YAML catalog; when set, fields and values are checked against the table schema")
	flags.StringVar(&opts.table, "table", "", "table to select from")
	flags.StringVar(&opts.filter, "filter", "", "filter document")
	flags.StringVar(&opts.projection, "projection", "", "projection document")

	return cmd
}

func (o *translateOptions) translate() (string, error) {
	if o.table == "" {
		return "", errors.New("table must be set")
	}

	var s *schema.Schema
	if o.catalog != "" {
		catalog, err := schema.LoadCatalog(o.catalog)
		if err != nil {
			return "", err
		}
		if s, err = catalog.Lookup(o.table); err != nil {
			return "", err
		}
	}

	tr, err := translator.New(o.table, s)
	if err != nil {
		return "", err
	}

	f, err := filter.Decode([]byte(o.filter))
	if err != nil {
		return "", fmt.Errorf("filter: %w", err)
	}
	p, err := filter.Decode([]byte(o.projection))
	if err != nil {
		return "", fmt.Errorf("projection: %w", err)
	}

	return tr.Find(f, p)
}
