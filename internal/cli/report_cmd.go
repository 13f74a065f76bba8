package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/leadshift/internal/report"
	"github.com/DukeRupert/leadshift/internal/service"
)

func newReportCmd(g *globals) *cobra.Command {
	var (
		out    string
		format string
	)
	q := &leadQuery{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF report or CSV export of the leads",
		Example: `  leadctl report --out leads.pdf
  leadctl report --out software.csv --industry Software`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := reportFormat(format, out)
			if err != nil {
				return err
			}
			if _, _, err := q.state(); err != nil {
				return err
			}

			db, err := g.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			logger := g.logger(cmd.ErrOrStderr())
			leads, err := g.leadService(db, nil, logger)
			if err != nil {
				return err
			}
			ds := leads.Dataset(cmd.Context())
			rows, err := q.apply(ds.Leads)
			if err != nil {
				return err
			}

			file, err := os.Create(out)
			if err != nil {
				return err
			}

			reports := service.NewReportService(logger)
			switch f {
			case report.FormatCSV:
				err = reports.ExportCSV(cmd.Context(), rows, file)
			default:
				err = reports.LeadsPDF(cmd.Context(), service.TitleAllLeads, ds.Source, rows, file)
			}
			if closeErr := file.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				_ = os.Remove(out)
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d leads to %s\n", len(rows), out)
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "File to write")
	cmd.Flags().StringVar(&format, "format", "", "pdf or csv; inferred from --out when empty")
	_ = cmd.MarkFlagRequired("out")
	q.register(cmd.Flags())
	return cmd
}

// reportFormat picks the format from the flag or the file extension.
func reportFormat(format, out string) (report.Format, error) {
	switch strings.ToLower(format) {
	case string(report.FormatPDF):
		return report.FormatPDF, nil
	case string(report.FormatCSV):
		return report.FormatCSV, nil
	case "":
		if strings.EqualFold(filepath.Ext(out), ".csv") {
			return report.FormatCSV, nil
		}
		return report.FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use 'pdf' or 'csv'", format)
	}
}
