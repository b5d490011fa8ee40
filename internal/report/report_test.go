package report

import (
	"bytes"
	"testing"

	"github.com/dastanaron/bookmarks-organizer/internal/categorizer"
	"github.com/dastanaron/bookmarks-organizer/internal/models"
	"github.com/dastanaron/bookmarks-organizer/internal/serializer"
	"github.com/stretchr/testify/assert"
)

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	NewTableRenderer(&buf).RenderStats(serializer.Stats{
		Total:      3,
		Categories: 2,
		PerCategory: []serializer.CategoryCount{
			{Category: "Development/Programming", Count: 2},
			{Category: models.FallbackCategory, Count: 1},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Total bookmarks: 3\n")
	assert.Contains(t, out, "Categories: 2\n")
	assert.Contains(t, out, "Development/Programming")
	assert.Contains(t, out, "Other")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Development")), bytes.Index(buf.Bytes(), []byte("Other")))
}

func TestRenderStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewTableRenderer(&buf).RenderStats(serializer.Stats{})
	assert.Equal(t, "Total bookmarks: 0\nCategories: 0\n", buf.String())
}

func TestRenderRules(t *testing.T) {
	var buf bytes.Buffer
	NewTableRenderer(&buf).RenderRules(categorizer.RuleSet{
		{Category: "Dev", Keywords: []string{"github.com", "dev"}},
	})
	assert.Contains(t, buf.String(), "github.com, dev")

	buf.Reset()
	NewTableRenderer(&buf).RenderRules(nil)
	assert.Contains(t, buf.String(), `"Other"`)
}

func TestRenderDuplicates(t *testing.T) {
	var buf bytes.Buffer
	NewTableRenderer(&buf).RenderDuplicates(nil)
	assert.Equal(t, "No duplicate bookmarks found.\n", buf.String())

	buf.Reset()
	NewTableRenderer(&buf).RenderDuplicates([]models.Duplicate{{URL: "https://a.example", Titles: []string{"A", "A again"}}})
	assert.Contains(t, buf.String(), "https://a.example")
	assert.Contains(t, buf.String(), "A | A again")
}
