package commands

import (
	"context"

	"github.com/dastanaron/bookmarks-organizer/internal/service"
)

// OrganizeCommand runs one organize pass: parse, categorize, write
type OrganizeCommand struct {
	organizer *service.Organizer
}

// NewOrganizeCommand creates a new organize command
func NewOrganizeCommand(organizer *service.Organizer) *OrganizeCommand {
	return &OrganizeCommand{organizer: organizer}
}

// Execute organizes the input file and writes the organized copy next to it
func (c *OrganizeCommand) Execute(ctx context.Context) error {
	_, err := c.organizer.Run(ctx)
	return err
}
