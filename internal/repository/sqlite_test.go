package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dastanaron/bookmarks-organizer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	repo, err := NewSQLiteRepository(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestSaveCollection(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	added := time.Unix(1700000000, 0).UTC()
	c := models.Collection{
		"Dev": {
			{Title: "Repo", URL: "https://github.com/x", Folder: "Bar", AddedAt: &added, Icon: "data:x"},
			{Title: "Docs", URL: "https://go.dev", Folder: models.RootFolder},
		},
		models.FallbackCategory: {{Title: "Misc", URL: "https://misc.example", Folder: "Bar"}},
	}

	saved, err := repo.SaveCollection(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 3, saved)

	folders, err := repo.Folders().List(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, "Dev", folders[0].Name)
	assert.Equal(t, models.FallbackCategory, folders[1].Name)
	assert.Nil(t, folders[0].ParentID)

	n, err := repo.Bookmarks().CountByFolder(ctx, folders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, err := repo.Bookmarks().List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	// ordered by folder name then title
	assert.Equal(t, "Docs", stored[0].Title)
	assert.Nil(t, stored[0].AddedAt)
	assert.Empty(t, stored[0].Icon)

	repoEntry := stored[1]
	assert.Equal(t, "Repo", repoEntry.Title)
	assert.Equal(t, "Bar", repoEntry.Folder)
	require.NotNil(t, repoEntry.AddedAt)
	assert.Equal(t, added, *repoEntry.AddedAt)
	assert.Equal(t, "data:x", repoEntry.Icon)
	require.NotNil(t, repoEntry.FolderName)
	assert.Equal(t, "Dev", *repoEntry.FolderName)
}

func TestSaveCollectionReusesFolders(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	c := models.Collection{"Dev": {{Title: "Repo", URL: "u"}}}

	_, err := repo.SaveCollection(ctx, c)
	require.NoError(t, err)
	_, err = repo.SaveCollection(ctx, c)
	require.NoError(t, err)

	folders, err := repo.Folders().List(ctx)
	require.NoError(t, err)
	assert.Len(t, folders, 1)

	stored, err := repo.Bookmarks().List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSaveCollectionCanceledContext(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.SaveCollection(ctx, models.Collection{"Dev": {{Title: "Repo", URL: "u"}}})
	assert.Error(t, err)

	stored, err := repo.Bookmarks().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestMigratesLegacySchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "legacy.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`
	CREATE TABLE folders (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, parent_id INTEGER);
	CREATE TABLE bookmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT,
		folder_id INTEGER
	);
	INSERT INTO bookmarks(title, url, description) VALUES ('Old', 'https://old.example', 'kept');
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo, err := NewSQLiteRepository(ctx, path)
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.SaveCollection(ctx, models.Collection{"New": {{Title: "Fresh", URL: "https://new.example"}}})
	require.NoError(t, err)

	stored, err := repo.Bookmarks().List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	titles := []string{stored[0].Title, stored[1].Title}
	assert.ElementsMatch(t, []string{"Old", "Fresh"}, titles)
}
