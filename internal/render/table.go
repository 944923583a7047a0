package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kailas-cloud/designkb/internal/domain/search/result"
	"github.com/kailas-cloud/designkb/internal/domain/summary"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// Table renders s as an aligned two-column text table.
func Table(s summary.Summary) string {
	t := newTable().Headers("Field", "Recommendation")

	add := func(field, value string) {
		if value != "" {
			t.Row(field, value)
		}
	}
	add("Project", s.ProjectName)
	add("Category", s.Category)
	add("Style", s.Style.Name)
	add("Alternatives", strings.Join(s.Alternatives, ", "))
	for _, c := range paletteRows(s.Palette) {
		add(c[0], c[1])
	}
	add("Typography", s.Typography.Pair())
	add("Pattern", s.Pattern.Name)
	add("Sections", s.Pattern.Sections)
	for i, r := range s.Rules {
		add("Rule "+strconv.Itoa(i+1), ruleLine(r))
	}
	for i, c := range s.Checks {
		add("Check "+strconv.Itoa(i+1), c.Check)
	}
	add("No data", strings.Join(s.Degraded, ", "))

	return t.String() + "\n"
}

func ruleLine(r summary.Rule) string {
	line := r.Issue
	if r.Do != "" {
		line += ": " + r.Do
	}
	if r.Severity != "" {
		line += " [" + r.Severity + "]"
	}
	return line
}

// Results renders ranked results as a table with a leading score column.
// Columns follow the first result; an empty list renders as an empty string.
func Results(results []result.Result) string {
	if len(results) == 0 {
		return ""
	}
	columns := results[0].Fields().Columns()

	headers := append([]string{"Score"}, columns...)
	t := newTable().Headers(headers...)
	for _, r := range results {
		cells := make([]string, 0, len(headers))
		cells = append(cells, strconv.FormatFloat(r.Score(), 'f', 4, 64))
		for _, c := range columns {
			cells = append(cells, r.Get(c))
		}
		t.Row(cells...)
	}
	return t.String() + "\n"
}
