// Command leadctl imports, lists and reports on LeadShift leads.
package main

import (
	"os"

	"github.com/DukeRupert/leadshift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
