package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dcruzf/blog-data/internal/configloader"
	"github.com/dcruzf/blog-data/internal/ui/pretty"
)

func newEnvCommand() *cobra.Command {
	var setOnly bool

	cmd := &cobra.Command{
		Use:   "env",
		Short: "List the environment variables blog-data reads",
		Long: `List the environment variables that override configuration files.

Variables are read from the process environment and from a .env file in the
working directory. The process environment wins over .env, and a variable
with the ` + configloader.EnvVarPrefix + ` prefix wins over the bare name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnv(cmd, setOnly)
		},
	}

	cmd.Flags().BoolVar(&setOnly, "set", false, "only list variables that are currently set")

	return cmd
}

func runEnv(cmd *cobra.Command, setOnly bool) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(mode, out))

	vars := configloader.ListEnvVars()
	width := 0
	for _, v := range vars {
		width = max(width, len(envLabel(v)))
	}

	var buf strings.Builder
	for _, v := range vars {
		value, name, set := lookupEnvVar(v)
		if setOnly && !set {
			continue
		}

		label := envLabel(v)
		fmt.Fprintf(&buf, "%s%s  %s",
			styles.FilePath.Render(label),
			strings.Repeat(" ", width-len(label)),
			styles.Dim.Render(v.Description),
		)
		if set {
			fmt.Fprintf(&buf, "\n    %s=%s", styles.Bold.Render(name), styles.SummaryValue.Render(value))
		}
		buf.WriteByte('\n')
	}

	if _, err := fmt.Fprint(out, buf.String()); err != nil {
		return fmt.Errorf("write env list: %w", err)
	}
	return nil
}

func envLabel(v configloader.EnvVar) string {
	return v.Name + " / " + v.Prefixed
}

// lookupEnvVar returns the effective value of v and which name supplied it.
func lookupEnvVar(v configloader.EnvVar) (string, string, bool) {
	if value, ok := os.LookupEnv(v.Prefixed); ok && value != "" {
		return value, v.Prefixed, true
	}
	if value, ok := os.LookupEnv(v.Name); ok && value != "" {
		return value, v.Name, true
	}
	return "", "", false
}
