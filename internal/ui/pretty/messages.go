package pretty

import "strings"

// FormatError formats a fatal error for terminal output. Text after the
// first ": " goes on a dimmed second line.
func (s *Styles) FormatError(err error) string {
	if err == nil {
		return ""
	}

	parts := strings.SplitN(err.Error(), ": ", 2)

	var builder strings.Builder
	builder.WriteString(s.Error.Render("error") + "  " + s.Message.Render(parts[0]) + "\n")
	if len(parts) > 1 {
		builder.WriteString("       " + s.Dim.Render(parts[1]) + "\n")
	}
	return builder.String()
}

// FormatWarning formats a non-fatal message.
func (s *Styles) FormatWarning(msg string) string {
	return s.Warning.Render("warning") + "  " + s.Message.Render(msg) + "\n"
}

// FormatPath renders a file path.
func (s *Styles) FormatPath(path string) string {
	return s.FilePath.Render(path)
}
