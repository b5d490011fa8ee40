package serializer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dastanaron/bookmarks-organizer/internal/models"
)

// DocumentTitle is written to both <TITLE> and <H1>
const DocumentTitle = "Organized Bookmarks"

const preamble = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>` + DocumentTitle + `</TITLE>
<H1>` + DocumentTitle + `</H1>
<DL><p>
`

// Render returns the Netscape bookmark document for a categorized collection.
//
// Categories are emitted in sorted order, each as one folder, with bookmarks sorted
// by title. Values are written as-is, without HTML escaping.
func Render(c models.Collection) string {
	var sb strings.Builder
	sb.WriteString(preamble)

	for _, category := range c.Names() {
		fmt.Fprintf(&sb, "    <DT><H3>%s</H3>\n", category)
		sb.WriteString("    <DL><p>\n")
		for _, b := range sortedByTitle(c[category]) {
			writeBookmark(&sb, b)
		}
		sb.WriteString("    </DL><p>\n")
	}

	sb.WriteString("</DL><p>\n")
	return sb.String()
}

// Write renders the collection to w
func Write(w io.Writer, c models.Collection) error {
	_, err := io.WriteString(w, Render(c))
	return err
}

// WriteFile creates or truncates path and writes the document to it
func WriteFile(path string, c models.Collection) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write output file: %w", err)
	}
	if err := Write(file, c); err != nil {
		file.Close()
		return fmt.Errorf("cannot write output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("cannot write output file: %w", err)
	}
	return nil
}

func sortedByTitle(bookmarks []models.Bookmark) []models.Bookmark {
	sorted := make([]models.Bookmark, len(bookmarks))
	copy(sorted, bookmarks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Title < sorted[j].Title
	})
	return sorted
}

// writeBookmark writes a single bookmark; ADD_DATE and ICON only when present
func writeBookmark(sb *strings.Builder, b models.Bookmark) {
	fmt.Fprintf(sb, `        <DT><A HREF="%s"`, b.URL)
	if b.AddedAt != nil {
		fmt.Fprintf(sb, ` ADD_DATE="%d"`, b.AddedAt.Unix())
	}
	if b.Icon != "" {
		fmt.Fprintf(sb, ` ICON="%s"`, b.Icon)
	}
	fmt.Fprintf(sb, ">%s</A>\n", b.Title)
}
