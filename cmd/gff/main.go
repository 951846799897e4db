// Command gff inspects GFF resource files: header summaries, YAML dumps of
// the decoded tree, and structural diffs between two files.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

const usageText = `Usage: gff <command> [flags] <args>

Commands:
  info FILE    print the header summary of a GFF file
  dump FILE    print the decoded tree as YAML
  diff A B     compare two GFF files structurally (exit 1 when they differ)

Run "gff <command> --help" for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "dump":
		err = runDump(os.Args[2:])
	case "diff":
		err = runDiff(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usageText)
		return
	default:
		fmt.Fprintf(os.Stderr, "gff: unknown command %q\n\n%s", os.Args[1], usageText)
		os.Exit(2)
	}

	if err != nil {
		if err == errTreesDiffer {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "gff:", err)
		os.Exit(1)
	}
}

// disableColorIfAsked applies the shared --no-color convention. The color
// package already turns itself off when stdout is not a terminal.
func disableColorIfAsked(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}
