// Package commands implements the bookmarks-organizer command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dastanaron/bookmarks-organizer/internal/config"
	"github.com/dastanaron/bookmarks-organizer/internal/logger"
	"github.com/dastanaron/bookmarks-organizer/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags "-X ...commands.Version=..."
var Version = "dev"

// app carries what PersistentPreRunE resolved for the running command
type app struct {
	v   *viper.Viper
	out io.Writer
	cfg *config.Config
	log logger.Logger
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.PrettyLog)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) teardown(*cobra.Command, []string) {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) organizer() *service.Organizer {
	return service.NewOrganizer(a.cfg, a.log, a.out)
}

// NewRootCommand builds the command tree. Reports and statistics go to out,
// logs go to stderr.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}
	def := config.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "bookmarks-organizer",
		Short: "Sort a browser bookmark export into keyword categories",
		Long: `Reads a Netscape bookmark export (Chrome, Firefox, Edge), assigns every
bookmark to the first category whose keyword appears in its URL or title,
and writes an organized export next to the input file.

Flags can also be set through BOOKMARKS_* environment variables,
e.g. BOOKMARKS_RULES or BOOKMARKS_OUTPUT_PREFIX.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return NewOrganizeCommand(a.organizer()).Execute(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("dir", def.Dir, "directory scanned for the bookmark export")
	flags.StringP("input", "i", def.Input, "bookmark file to organize, skips directory discovery")
	flags.StringP("rules", "r", def.RulesFile, "category rules YAML file, built-in rules when missing")
	flags.String("output-prefix", def.OutputPrefix, "prefix added to the input file name for the output")
	flags.String("db", def.DBPath, "also export the organized bookmarks to this SQLite database")
	flags.String("log-level", def.LogLevel, "log level (debug, info, warn, error)")
	flags.Bool("pretty-log", def.PrettyLog, "colored console logs instead of JSON")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "rules",
			Short: "Print the category rules in evaluation order",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return NewRulesCommand(a.organizer(), a.out).Execute(a.cfg.RulesFile)
			},
		},
		&cobra.Command{
			Use:   "duplicates",
			Short: "List bookmarks that share a URL",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return NewDuplicatesCommand(a.organizer(), a.out).Execute()
			},
		},
		&cobra.Command{
			Use:   "browse",
			Short: "Browse the organized bookmarks in the terminal without writing files",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return NewBrowseCommand(a.organizer()).Execute()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Args:  cobra.NoArgs,
			// no configuration needed
			PersistentPreRun: func(*cobra.Command, []string) {},
			Run: func(*cobra.Command, []string) {
				fmt.Fprintf(a.out, "bookmarks-organizer version %s\n", Version)
			},
		},
	)

	return rootCmd
}

// Execute runs the root command against the real stdout
func Execute() error {
	return NewRootCommand(os.Stdout).ExecuteContext(context.Background())
}
