// Package report prints run summaries as tables on the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dastanaron/bookmarks-organizer/internal/categorizer"
	"github.com/dastanaron/bookmarks-organizer/internal/models"
	"github.com/dastanaron/bookmarks-organizer/internal/serializer"
	"github.com/jedib0t/go-pretty/v6/table"
)

// TableRenderer renders summaries to an output stream
type TableRenderer struct {
	out io.Writer
}

// NewTableRenderer creates a new TableRenderer instance
func NewTableRenderer(out io.Writer) *TableRenderer {
	return &TableRenderer{out: out}
}

func (r *TableRenderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	return t
}

// RenderStats prints totals and the per-category distribution
func (r *TableRenderer) RenderStats(stats serializer.Stats) {
	fmt.Fprintf(r.out, "Total bookmarks: %d\n", stats.Total)
	fmt.Fprintf(r.out, "Categories: %d\n", stats.Categories)
	if len(stats.PerCategory) == 0 {
		return
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"Category", "Bookmarks"})
	for _, cc := range stats.PerCategory {
		t.AppendRow(table.Row{cc.Category, cc.Count})
	}
	t.AppendFooter(table.Row{"Total", stats.Total})
	t.Render()
}

// RenderRules prints the rule set in evaluation order
func (r *TableRenderer) RenderRules(rules categorizer.RuleSet) {
	if len(rules) == 0 {
		fmt.Fprintf(r.out, "No rules: every bookmark goes to %q\n", models.FallbackCategory)
		return
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"#", "Category", "Keywords"})
	for i, rule := range rules {
		t.AppendRow(table.Row{i + 1, rule.Category, strings.Join(rule.Keywords, ", ")})
	}
	t.Render()
}

// RenderDuplicates prints URLs that appear more than once
func (r *TableRenderer) RenderDuplicates(dups []models.Duplicate) {
	if len(dups) == 0 {
		fmt.Fprintln(r.out, "No duplicate bookmarks found.")
		return
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"URL", "Count", "Titles"})
	for _, d := range dups {
		t.AppendRow(table.Row{d.URL, len(d.Titles), strings.Join(d.Titles, " | ")})
	}
	t.Render()
}
