package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dcruzf/blog-data/pkg/builder"
)

const (
	summaryDividerWidth = 40
	wordArticle         = "article"
	wordArticles        = "articles"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats build statistics as a single line.
// Example: "12 articles (10 dated, 2 undated), 7 tags, 3 years -> data/data.json (18432 bytes)".
func (s *Styles) FormatSummaryOneLine(stats builder.Stats, output string) string {
	parts := []string{
		fmt.Sprintf("%d %s (%d dated, %d undated)",
			stats.Articles, plural(stats.Articles, wordArticle, wordArticles), stats.Dated, stats.Undated),
		fmt.Sprintf("%d %s", stats.Tags, plural(stats.Tags, "tag", "tags")),
		fmt.Sprintf("%d %s", stats.Years, plural(stats.Years, "year", "years")),
	}

	if stats.UnknownTags > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d unknown %s",
			stats.UnknownTags, plural(stats.UnknownTags, "tag", "tags"))))
	}

	line := strings.Join(parts, ", ")
	target := s.FilePath.Render(output) + s.Dim.Render(fmt.Sprintf(" (%d bytes)", stats.Bytes))

	switch {
	case stats.DryRun:
		line += " " + s.Info.Render("dry run, not written to") + " " + target
	case stats.Unchanged:
		line += " -> " + target + " " + s.Dim.Render("unchanged")
	default:
		line += " -> " + target
	}

	return line + "\n"
}

// FormatSummary formats a build result as a summary block.
func (s *Styles) FormatSummary(result *builder.Result) string {
	var out strings.Builder
	stats := result.Stats

	out.WriteString("\n")
	out.WriteString(s.SummaryTitle.Render("Summary"))
	out.WriteString("\n")
	out.WriteString(strings.Repeat("-", summaryDividerWidth))
	out.WriteString("\n")

	row := func(label, value string) {
		fmt.Fprintf(&out, "  %-18s %s\n", label+":", value)
	}

	row("Articles", s.SummaryValue.Render(strconv.Itoa(stats.Articles)))
	row("  Dated", s.SummaryValue.Render(strconv.Itoa(stats.Dated)))
	row("  Undated", s.SummaryValue.Render(strconv.Itoa(stats.Undated)))
	row("Tags", s.SummaryValue.Render(strconv.Itoa(stats.Tags))+
		s.Dim.Render(" ("+string(result.Catalog)+")"))
	if stats.UnknownTags > 0 {
		row("Unknown tags", s.Warning.Render(strings.Join(result.UnknownTags, ", ")))
	}
	row("Years", s.SummaryValue.Render(strconv.Itoa(stats.Years)))
	row("Output", s.FilePath.Render(result.Output))
	row("Size", s.SummaryValue.Render(strconv.Itoa(stats.Bytes)+" bytes"))
	if result.BackupPath != "" {
		row("Backup", s.FilePath.Render(result.BackupPath))
	}
	row("Duration", s.SummaryValue.Render(stats.Duration.String()))

	out.WriteString("\n")

	switch {
	case stats.DryRun:
		out.WriteString(s.Info.Render("Dry run, nothing written"))
	case stats.Unchanged:
		out.WriteString(s.Success.Render("Output already up to date"))
	default:
		out.WriteString(s.Success.Render("Build complete"))
	}
	out.WriteString("\n")

	return out.String()
}
