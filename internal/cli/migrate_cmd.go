package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/leadshift/internal"
)

func newMigrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := g.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			version, err := internal.MigrationVersion(db, g.driver)
			if err != nil {
				return err
			}

			if g.output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), map[string]int64{"version": version})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Database is at version %d\n", version)
			return err
		},
	}
}
