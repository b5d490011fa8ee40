package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dastanaron/bookmarks-organizer/internal/categorizer"
	"github.com/dastanaron/bookmarks-organizer/internal/config"
	"github.com/dastanaron/bookmarks-organizer/internal/discovery"
	"github.com/dastanaron/bookmarks-organizer/internal/logger"
	"github.com/dastanaron/bookmarks-organizer/internal/models"
	"github.com/dastanaron/bookmarks-organizer/internal/parser"
	"github.com/dastanaron/bookmarks-organizer/internal/report"
	"github.com/dastanaron/bookmarks-organizer/internal/repository"
	"github.com/dastanaron/bookmarks-organizer/internal/serializer"
)

// Result is the outcome of one organize pass
type Result struct {
	Input       string
	Output      string
	Rules       categorizer.RuleSet
	RulesLoaded bool // false when the built-in rules were used
	Bookmarks   []models.Bookmark
	Collection  models.Collection
	Stats       serializer.Stats
	Exported    int // bookmarks written to the SQLite export
}

// repoOpener opens the export database at path
type repoOpener func(ctx context.Context, path string) (repository.Repository, error)

func openSQLite(ctx context.Context, path string) (repository.Repository, error) {
	return repository.NewSQLiteRepository(ctx, path)
}

// Organizer runs the parse, categorize and write pipeline
type Organizer struct {
	cfg      *config.Config
	logger   logger.Logger
	parser   *parser.Parser
	out      io.Writer
	renderer *report.TableRenderer
	openRepo repoOpener
}

// NewOrganizer creates a new organizer. User-facing messages go to out.
func NewOrganizer(cfg *config.Config, log logger.Logger, out io.Writer) *Organizer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Organizer{
		cfg:      cfg,
		logger:   log,
		parser:   parser.NewParser(log),
		out:      out,
		renderer: report.NewTableRenderer(out),
		openRepo: openSQLite,
	}
}

// ResolveInput returns the configured input file, or discovers the single
// bookmark file in the configured directory.
func (o *Organizer) ResolveInput() (string, error) {
	if o.cfg.Input != "" {
		if _, err := os.Stat(o.cfg.Input); err != nil {
			return "", fmt.Errorf("cannot use input file: %w", err)
		}
		o.logger.Debugf("using input file %s", o.cfg.Input)
		return o.cfg.Input, nil
	}

	input, err := discovery.Find(o.cfg.Dir)
	var ambiguous *discovery.AmbiguousError
	if errors.As(err, &ambiguous) {
		o.logger.Warn("more than one bookmark file found",
			logger.String("dir", o.cfg.Dir),
			logger.Strings("candidates", ambiguous.Candidates))
	}
	if err != nil {
		return "", err
	}
	o.logger.Debugf("discovered input file %s", input)
	return input, nil
}

// LoadRules loads and validates the category rules
func (o *Organizer) LoadRules() (categorizer.RuleSet, bool, error) {
	rules, loaded, err := categorizer.NewRulesLoader(o.cfg.RulesFile).Load()
	if err != nil {
		return nil, false, err
	}
	if err := rules.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid rules in %s: %w", o.cfg.RulesFile, err)
	}

	if loaded {
		o.logger.Info("loaded category rules",
			logger.String("file", o.cfg.RulesFile),
			logger.Strings("categories", rules.Categories()))
	} else {
		o.logger.Info("rules file not found, using built-in rules",
			logger.String("file", o.cfg.RulesFile),
			logger.Int("categories", len(rules)))
	}
	return rules, loaded, nil
}

// Load opens and parses one bookmark file
func (o *Organizer) Load(path string) ([]models.Bookmark, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	bookmarks, err := o.parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return bookmarks, nil
}

// Organize resolves the input, parses and categorizes it without writing anything
func (o *Organizer) Organize() (*Result, error) {
	input, err := o.ResolveInput()
	if err != nil {
		return nil, err
	}

	rules, loaded, err := o.LoadRules()
	if err != nil {
		return nil, err
	}

	o.logger.Info("processing bookmark file", logger.String("input", input))
	bookmarks, err := o.Load(input)
	if err != nil {
		return nil, err
	}

	collection := categorizer.New(rules, o.logger).Categorize(bookmarks)

	return &Result{
		Input:       input,
		Output:      discovery.OutputPath(input, o.cfg.OutputPrefix),
		Rules:       rules,
		RulesLoaded: loaded,
		Bookmarks:   bookmarks,
		Collection:  collection,
		Stats:       serializer.Summarize(collection),
	}, nil
}

// Run organizes the input, prints statistics, writes the output file and, when
// configured, exports the result to SQLite.
func (o *Organizer) Run(ctx context.Context) (*Result, error) {
	res, err := o.Organize()
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(o.out, "Processing: %s\n", res.Input)
	o.renderer.RenderStats(res.Stats)

	if err := serializer.WriteFile(res.Output, res.Collection); err != nil {
		return nil, err
	}
	o.logger.Infof("wrote %d bookmarks in %d categories", res.Stats.Total, res.Stats.Categories)
	fmt.Fprintf(o.out, "Organized bookmarks saved to: %s\n", res.Output)

	if o.cfg.DBPath != "" {
		n, err := o.export(ctx, res.Collection)
		if err != nil {
			o.logger.Error("database export failed", logger.String("db", o.cfg.DBPath), logger.Error(err))
			return nil, err
		}
		res.Exported = n
		fmt.Fprintf(o.out, "Exported %d bookmarks to %s\n", n, o.cfg.DBPath)
	}

	return res, nil
}

func (o *Organizer) export(ctx context.Context, c models.Collection) (int, error) {
	repo, err := o.openRepo(ctx, o.cfg.DBPath)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer repo.Close()

	n, err := repo.SaveCollection(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("export failed: %w", err)
	}

	// folders are reused across exports, so counts include earlier runs
	folders, err := repo.Folders().List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list folders: %w", err)
	}
	for _, f := range folders {
		stored, err := repo.Bookmarks().CountByFolder(ctx, f.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to count bookmarks in %q: %w", f.Name, err)
		}
		o.logger.Debug("export folder", logger.String("folder", f.Name), logger.Int("stored", stored))
	}

	o.logger.Debug("exported collection", logger.String("db", o.cfg.DBPath), logger.Int("bookmarks", n))
	return n, nil
}
