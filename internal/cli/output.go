package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/DukeRupert/leadshift/internal/domain"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printLeadTable(w io.Writer, leads []domain.Lead) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMPANY\tEMAIL\tINDUSTRY\tLOCATION\tSCORE\tSTATUS")
	for _, l := range leads {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID,
			l.CompanyName,
			dash(domain.StringValue(l.Email)),
			dash(domain.StringValue(l.Industry)),
			dash(domain.StringValue(l.Location)),
			score(l.Score),
			l.Status,
		)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func score(s *int) string {
	if s == nil {
		return "pending"
	}
	return strconv.Itoa(*s)
}
