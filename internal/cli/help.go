package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dcruzf/blog-data/internal/configloader"
	"github.com/dcruzf/blog-data/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Type        lipgloss.Style
	Description lipgloss.Style
	Env         lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			Type:        plain,
			Description: plain,
			Env:         plain,
			Dim:         plain,
		}
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Type:        dim,
		Description: lipgloss.NewStyle(),
		Env:         lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Dim:         dim,
	}
}

// HelpFormatter renders styled help for Cobra commands. Colors are decided
// when help is printed, after --color has been parsed.
type HelpFormatter struct{}

// NewHelpFormatter creates a help formatter.
func NewHelpFormatter() *HelpFormatter {
	return &HelpFormatter{}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ description .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ environment }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}{{if or .Runnable .HasSubCommands}}{{ usage . }}{{end}}`

// ApplyToCommand installs the styled help and usage functions on cmd.
// Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.render(command, "usage", usageTemplate)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.render(command, "help", helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) render(cmd *cobra.Command, name, text string) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	styles := NewHelpStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))

	funcs := template.FuncMap{
		"command":                 styles.Command.Render,
		"heading":                 styles.Heading.Render,
		"subcommand":              styles.Subcommand.Render,
		"description":             styles.Description.Render,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
		"flags": func(fs *pflag.FlagSet) string {
			return formatFlags(styles, fs)
		},
		"environment": func() string {
			return formatEnvironment(styles)
		},
	}
	funcs["usage"] = func(c *cobra.Command) (string, error) {
		var buf strings.Builder
		tmpl, err := template.New("usage").Funcs(funcs).Parse(usageTemplate)
		if err != nil {
			return "", fmt.Errorf("parse usage template: %w", err)
		}
		if err := tmpl.Execute(&buf, c); err != nil {
			return "", fmt.Errorf("render usage: %w", err)
		}
		return buf.String(), nil
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(cmd.OutOrStdout(), cmd); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

type flagLine struct {
	names string
	typ   string
	usage string
}

// formatFlags lays out the visible flags of fs in two aligned columns.
func formatFlags(styles *HelpStyles, fs *pflag.FlagSet) string {
	var lines []flagLine
	width := 0

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}

		varname, usage := pflag.UnquoteUsage(f)
		if def := defaultText(f); def != "" {
			usage += " (default " + def + ")"
		}

		line := flagLine{names: names, typ: varname, usage: usage}
		lines = append(lines, line)
		width = max(width, plainFlagWidth(line))
	})

	var out strings.Builder
	for i, line := range lines {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString("  ")
		out.WriteString(styles.Flag.Render(line.names))
		if line.typ != "" {
			out.WriteByte(' ')
			out.WriteString(styles.Type.Render(line.typ))
		}
		out.WriteString(strings.Repeat(" ", width-plainFlagWidth(line)+3))
		out.WriteString(styles.Description.Render(line.usage))
	}
	return out.String()
}

func plainFlagWidth(line flagLine) int {
	if line.typ == "" {
		return len(line.names)
	}
	return len(line.names) + 1 + len(line.typ)
}

// defaultText returns the default value worth showing, or "".
func defaultText(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

// formatEnvironment lists the environment variables read at load time.
func formatEnvironment(styles *HelpStyles) string {
	vars := configloader.ListEnvVars()

	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	var out strings.Builder
	out.WriteString(styles.Dim.Render(
		"  Each variable may also carry the " + configloader.EnvVarPrefix + " prefix, which wins."))
	for _, v := range vars {
		out.WriteString("\n  ")
		out.WriteString(styles.Env.Render(v.Name))
		out.WriteString(strings.Repeat(" ", width-len(v.Name)+3))
		out.WriteString(styles.Description.Render(v.Description))
	}
	return out.String()
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
