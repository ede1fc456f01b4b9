// Package main is the entry point for the blog-data CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	// Embedded zone database so timezone validation works on hosts without one.
	_ "time/tzdata"

	"github.com/dcruzf/blog-data/internal/cli"
	"github.com/dcruzf/blog-data/internal/ui/pretty"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Commands report their own failures; usage errors land here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			styles := pretty.NewStyles(pretty.IsColorEnabled("auto", os.Stderr))
			fmt.Fprint(os.Stderr, styles.FormatError(err))
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
