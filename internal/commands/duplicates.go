package commands

import (
	"fmt"
	"io"

	"github.com/dastanaron/bookmarks-organizer/internal/report"
	"github.com/dastanaron/bookmarks-organizer/internal/service"
)

// DuplicatesCommand reports bookmarks that share a URL. Nothing is removed:
// the organized output keeps every bookmark.
type DuplicatesCommand struct {
	organizer *service.Organizer
	out       io.Writer
	renderer  *report.TableRenderer
}

// NewDuplicatesCommand creates a new duplicates command
func NewDuplicatesCommand(organizer *service.Organizer, out io.Writer) *DuplicatesCommand {
	return &DuplicatesCommand{
		organizer: organizer,
		out:       out,
		renderer:  report.NewTableRenderer(out),
	}
}

// Execute parses the input file and lists duplicate URLs
func (c *DuplicatesCommand) Execute() error {
	input, err := c.organizer.ResolveInput()
	if err != nil {
		return err
	}

	bookmarks, err := c.organizer.Load(input)
	if err != nil {
		return err
	}

	dups := service.FindDuplicates(bookmarks)
	fmt.Fprintf(c.out, "Checked %d bookmarks in %s\n", len(bookmarks), input)
	c.renderer.RenderDuplicates(dups)
	return nil
}
