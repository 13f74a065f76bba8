package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/leadshift/internal/csvimport"
	"github.com/DukeRupert/leadshift/internal/domain"
)

func newImportCmd(g *globals) *cobra.Command {
	var mappingFile string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import leads from a CSV file",
		Example: `  leadctl import leads.csv
  leadctl import --mapping headers.yaml export.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapping, err := csvimport.LoadMapping(mappingFile)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			db, err := g.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			leads, err := g.leadService(db, mapping, g.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			result, err := leads.Upload(cmd.Context(), filepath.Base(args[0]), f, info.Size())
			if err != nil {
				if domain.ErrorCode(err) == domain.EINTERNAL {
					return err
				}
				return errors.New(domain.ErrorMessage(err))
			}

			if g.output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return err
		},
	}

	cmd.Flags().StringVar(&mappingFile, "mapping", "", "YAML file overriding the CSV header aliases")
	return cmd
}

type listOutput struct {
	Source string        `json:"source"`
	Total  int           `json:"total"`
	Leads  []domain.Lead `json:"leads"`
}

func newListCmd(g *globals) *cobra.Command {
	q := &leadQuery{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads with the dashboard's filters and sorting",
		Example: `  leadctl list --industry Software --sort score --dir desc
  leadctl list --status pending -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, _, err := q.state(); err != nil {
				return err
			}

			db, err := g.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			leads, err := g.leadService(db, nil, g.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			ds := leads.Dataset(cmd.Context())
			if ds.Notice != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), ds.Notice)
			}
			rows, err := q.apply(ds.Leads)
			if err != nil {
				return err
			}

			if g.output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), listOutput{
					Source: string(ds.Source),
					Total:  len(ds.Leads),
					Leads:  rows,
				})
			}
			if err := printLeadTable(cmd.OutOrStdout(), rows); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d leads\n", len(rows), len(ds.Leads))
			return err
		},
	}

	q.register(cmd.Flags())
	return cmd
}
