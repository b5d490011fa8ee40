package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dastanaron/bookmarks-organizer/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db        *sql.DB
	bookmarks *bookmarkRepo
	folders   *folderRepo
}

// NewSQLiteRepository opens (or creates) the database and migrates its schema.
// The schema is compatible with databases created by bookmarks-cli.
func NewSQLiteRepository(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	repo := &SQLiteRepository{
		db: db,
	}
	repo.bookmarks = &bookmarkRepo{db: db}
	repo.folders = &folderRepo{db: db}

	return repo, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	createTables := `
	CREATE TABLE IF NOT EXISTS folders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		parent_id INTEGER,
		FOREIGN KEY(parent_id) REFERENCES folders(id)
	);

	CREATE TABLE IF NOT EXISTS bookmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT,
		icon TEXT,
		folder_id INTEGER,
		FOREIGN KEY(folder_id) REFERENCES folders(id)
	);

	CREATE INDEX IF NOT EXISTS idx_bookmarks_folder ON bookmarks(folder_id);
	CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_id);
	`
	if _, err := db.ExecContext(ctx, createTables); err != nil {
		return err
	}

	// Older databases lack these columns. SQLite has no ADD COLUMN IF NOT EXISTS.
	for _, col := range []struct{ name, ddl string }{
		{"icon", "TEXT"},
		{"add_date", "INTEGER"},
		{"source_folder", "TEXT"},
	} {
		if err := ensureColumn(ctx, db, "bookmarks", col.name, col.ddl); err != nil {
			return err
		}
	}

	return nil
}

func ensureColumn(ctx context.Context, db *sql.DB, table, column, ddl string) error {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, ddl))
	return err
}

// Bookmarks returns the bookmark repository
func (r *SQLiteRepository) Bookmarks() BookmarkRepository {
	return r.bookmarks
}

// Folders returns the folder repository
func (r *SQLiteRepository) Folders() FolderRepository {
	return r.folders
}

// SaveCollection stores categories as root folders and bookmarks inside them.
// Categories are written in sorted order and bookmarks in input order. Returns the
// number of bookmarks inserted.
func (r *SQLiteRepository) SaveCollection(ctx context.Context, c models.Collection) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	folders := &folderRepo{db: tx}
	bookmarks := &bookmarkRepo{db: tx}

	saved := 0
	for _, category := range c.Names() {
		folder, err := folders.Upsert(ctx, category, nil)
		if err != nil {
			return 0, fmt.Errorf("failed to create folder %q: %w", category, err)
		}
		for _, b := range c[category] {
			if _, err := bookmarks.Create(ctx, b, &folder.ID); err != nil {
				return 0, fmt.Errorf("failed to save bookmark %q: %w", b.Title, err)
			}
			saved++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return saved, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// bookmarkRepo implements BookmarkRepository
type bookmarkRepo struct {
	db dbtx
}

func (r *bookmarkRepo) List(ctx context.Context) ([]models.StoredBookmark, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.url, b.icon, b.add_date, b.source_folder, b.folder_id, f.name
		FROM bookmarks AS b
		LEFT JOIN folders AS f ON f.id = b.folder_id
		ORDER BY f.name, b.title, b.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []models.StoredBookmark
	for rows.Next() {
		var (
			b            models.StoredBookmark
			icon, source sql.NullString
			addDate      sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.URL, &icon, &addDate, &source, &b.FolderID, &b.FolderName); err != nil {
			return nil, err
		}
		b.Icon = icon.String
		b.Folder = source.String
		if addDate.Valid {
			t := time.Unix(addDate.Int64, 0).UTC()
			b.AddedAt = &t
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

func (r *bookmarkRepo) Create(ctx context.Context, b models.Bookmark, folderID *int) (int, error) {
	var icon, addDate any
	if b.Icon != "" {
		icon = b.Icon
	}
	if b.AddedAt != nil {
		addDate = b.AddedAt.Unix()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks(title, url, description, icon, add_date, source_folder, folder_id) VALUES (?, ?, '', ?, ?, ?, ?)`,
		b.Title, b.URL, icon, addDate, b.Folder, folderID,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *bookmarkRepo) CountByFolder(ctx context.Context, folderID int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookmarks WHERE folder_id = ?`, folderID).Scan(&n)
	return n, err
}

// folderRepo implements FolderRepository
type folderRepo struct {
	db dbtx
}

func (r *folderRepo) List(ctx context.Context) ([]models.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, parent_id FROM folders ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (r *folderRepo) Create(ctx context.Context, name string, parentID *int) (*models.Folder, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO folders(name, parent_id) VALUES (?, ?)`, name, parentID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Folder{ID: int(id), Name: name, ParentID: parentID}, nil
}

func (r *folderRepo) Upsert(ctx context.Context, name string, parentID *int) (*models.Folder, error) {
	var id int
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM folders WHERE name = ? AND (parent_id IS ? OR parent_id = ?)`,
		name, parentID, parentID,
	).Scan(&id)

	if err == nil {
		return &models.Folder{ID: id, Name: name, ParentID: parentID}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return r.Create(ctx, name, parentID)
}
