// The caselaw command collects case-law pages from Google Scholar, parses
// them into a structured corpus, and analyses the citation graph.
package main

import (
	"os"

	"github.com/lexintel/caselaw-intelligence/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
