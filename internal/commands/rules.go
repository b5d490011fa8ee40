package commands

import (
	"fmt"
	"io"

	"github.com/dastanaron/bookmarks-organizer/internal/report"
	"github.com/dastanaron/bookmarks-organizer/internal/service"
)

// RulesCommand prints the effective category rules
type RulesCommand struct {
	organizer *service.Organizer
	out       io.Writer
	renderer  *report.TableRenderer
}

// NewRulesCommand creates a new rules command
func NewRulesCommand(organizer *service.Organizer, out io.Writer) *RulesCommand {
	return &RulesCommand{
		organizer: organizer,
		out:       out,
		renderer:  report.NewTableRenderer(out),
	}
}

// Execute loads, validates and prints the rules in evaluation order
func (c *RulesCommand) Execute(rulesFile string) error {
	rules, loaded, err := c.organizer.LoadRules()
	if err != nil {
		return err
	}

	if loaded {
		fmt.Fprintf(c.out, "Rules from %s\n", rulesFile)
	} else {
		fmt.Fprintf(c.out, "Built-in rules (%s not found)\n", rulesFile)
	}
	c.renderer.RenderRules(rules)
	return nil
}
