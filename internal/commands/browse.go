package commands

import (
	"github.com/dastanaron/bookmarks-organizer/internal/service"
	"github.com/dastanaron/bookmarks-organizer/internal/ui"
)

// BrowseCommand shows the organized result in the terminal UI without writing files
type BrowseCommand struct {
	organizer *service.Organizer
}

// NewBrowseCommand creates a new browse command
func NewBrowseCommand(organizer *service.Organizer) *BrowseCommand {
	return &BrowseCommand{organizer: organizer}
}

// Execute organizes the input in memory and starts the browser
func (c *BrowseCommand) Execute() error {
	res, err := c.organizer.Organize()
	if err != nil {
		return err
	}
	return ui.NewApp(res.Collection).Run()
}
