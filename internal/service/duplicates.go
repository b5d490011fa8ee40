package service

import "github.com/dastanaron/bookmarks-organizer/internal/models"

// FindDuplicates returns URLs that occur more than once, in first-seen order.
// Bookmarks without a URL are ignored. Nothing is removed from the input.
func FindDuplicates(bookmarks []models.Bookmark) []models.Duplicate {
	seenURLs := make(map[string]int) // URL -> index into dups
	var dups []models.Duplicate

	for _, b := range bookmarks {
		if b.URL == "" {
			continue
		}
		if idx, exists := seenURLs[b.URL]; exists {
			dups[idx].Titles = append(dups[idx].Titles, b.Title)
			continue
		}
		seenURLs[b.URL] = len(dups)
		dups = append(dups, models.Duplicate{URL: b.URL, Titles: []string{b.Title}})
	}

	out := make([]models.Duplicate, 0)
	for _, d := range dups {
		if len(d.Titles) > 1 {
			out = append(out, d)
		}
	}
	return out
}
