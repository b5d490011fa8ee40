package serializer

import "github.com/dastanaron/bookmarks-organizer/internal/models"

// CategoryCount is the number of bookmarks in one category
type CategoryCount struct {
	Category string
	Count    int
}

// Stats summarizes a categorized collection
type Stats struct {
	Total       int
	Categories  int
	PerCategory []CategoryCount // sorted by category name
}

// Summarize derives statistics from the collection alone. Categories without
// bookmarks are not counted.
func Summarize(c models.Collection) Stats {
	names := c.Names()
	stats := Stats{
		Total:       c.Total(),
		PerCategory: make([]CategoryCount, 0, len(names)),
	}
	for _, name := range names {
		n := c.Len(name)
		if n == 0 {
			continue
		}
		stats.PerCategory = append(stats.PerCategory, CategoryCount{Category: name, Count: n})
	}
	stats.Categories = len(stats.PerCategory)
	return stats
}
