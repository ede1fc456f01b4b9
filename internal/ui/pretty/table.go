package pretty

import (
	"fmt"
	"strings"

	"github.com/dcruzf/blog-data/pkg/article"
)

// Table formatting constants.
const (
	tablePadding   = 2
	minIDWidth     = 10
	dateWidth      = 10
	minTagsWidth   = 12
	heavySeparator = "="
	ellipsis       = "..."
	undatedLabel   = "undated"
)

// TableRow represents a single article in the table.
type TableRow struct {
	ID   string
	Date string
	Tags string
}

// TableFormatter formats articles as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// Rows converts articles to table rows.
func Rows(articles []*article.Article) []TableRow {
	rows := make([]TableRow, 0, len(articles))
	for _, a := range articles {
		date := undatedLabel
		if a.Dated() {
			date = a.Date.Format("2006-01-02")
		}
		rows = append(rows, TableRow{
			ID:   a.ID,
			Date: date,
			Tags: strings.Join(a.Tags, ", "),
		})
	}
	return rows
}

// FormatTable formats articles as a table sized to the terminal width.
func (t *TableFormatter) FormatTable(articles []*article.Article) string {
	rows := Rows(articles)
	if len(rows) == 0 {
		return ""
	}

	idWidth, tagsWidth := t.columnWidths(rows)
	total := idWidth + dateWidth + tagsWidth + tablePadding*2

	var builder strings.Builder

	header := fmt.Sprintf("%-*s  %-*s  %s", idWidth, "ID", dateWidth, "DATE", "TAGS")
	builder.WriteString(t.styles.TableHeader.Render(strings.TrimRight(header, " ")))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	for _, row := range rows {
		id := t.styles.TableID.Render(fmt.Sprintf("%-*s", idWidth, truncate(row.ID, idWidth)))

		date := fmt.Sprintf("%-*s", dateWidth, row.Date)
		if row.Date == undatedLabel {
			date = t.styles.TableUndated.Render(date)
		}

		line := id + "  " + date
		if row.Tags != "" {
			line += "  " + truncate(row.Tags, tagsWidth)
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	return builder.String()
}

// columnWidths fits the ID and TAGS columns into the terminal width,
// shrinking TAGS first.
func (t *TableFormatter) columnWidths(rows []TableRow) (int, int) {
	idWidth, tagsWidth := minIDWidth, minTagsWidth
	for _, row := range rows {
		idWidth = max(idWidth, len(row.ID))
		tagsWidth = max(tagsWidth, len(row.Tags))
	}

	excess := idWidth + dateWidth + tagsWidth + tablePadding*2 - t.termWidth
	if excess > 0 {
		shrink := min(excess, tagsWidth-minTagsWidth)
		tagsWidth -= shrink
		excess -= shrink
	}
	if excess > 0 {
		idWidth = max(minIDWidth, idWidth-excess)
	}

	return idWidth, tagsWidth
}

// truncate shortens s to width bytes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return s[:width]
	}
	return s[:width-len(ellipsis)] + ellipsis
}
