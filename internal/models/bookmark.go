package models

import (
	"sort"
	"time"
)

const (
	// RootFolder is the folder name used for bookmarks seen before any folder header
	RootFolder = "Root"

	// FallbackCategory collects bookmarks that matched no rule
	FallbackCategory = "Other"
)

// Bookmark represents a bookmark entry parsed from a Netscape bookmark file
type Bookmark struct {
	Title   string
	URL     string
	Folder  string     // last folder header seen before this entry
	AddedAt *time.Time // nil when ADD_DATE is missing or not a number
	Icon    string     // data URI or path, empty when absent
}

// Folder represents a bookmark folder in the export database
type Folder struct {
	ID       int
	Name     string
	ParentID *int
}

// Collection maps a category name to the bookmarks assigned to it
type Collection map[string][]Bookmark

// Names returns category names sorted lexicographically
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Total returns the number of bookmarks across all categories
func (c Collection) Total() int {
	total := 0
	for _, bookmarks := range c {
		total += len(bookmarks)
	}
	return total
}

// Len returns the number of bookmarks in a category
func (c Collection) Len(name string) int {
	return len(c[name])
}

// StoredBookmark is a bookmark as saved in the export database
type StoredBookmark struct {
	Bookmark
	ID         int
	FolderID   *int
	FolderName *string // category the bookmark was filed under
}

// Duplicate is a URL that occurs more than once in the input
type Duplicate struct {
	URL    string
	Titles []string // title of every occurrence, in input order
}
