package repository

import (
	"context"

	"github.com/dastanaron/bookmarks-organizer/internal/models"
)

// BookmarkRepository defines operations for bookmarks
type BookmarkRepository interface {
	List(ctx context.Context) ([]models.StoredBookmark, error)
	Create(ctx context.Context, b models.Bookmark, folderID *int) (int, error)
	CountByFolder(ctx context.Context, folderID int) (int, error)
}

// FolderRepository defines operations for folders
type FolderRepository interface {
	List(ctx context.Context) ([]models.Folder, error)
	Create(ctx context.Context, name string, parentID *int) (*models.Folder, error)
	// Upsert returns the folder with this name under parentID, creating it if needed.
	Upsert(ctx context.Context, name string, parentID *int) (*models.Folder, error)
}

// Repository combines all repositories
type Repository interface {
	Bookmarks() BookmarkRepository
	Folders() FolderRepository
	// SaveCollection files every categorized bookmark under a folder named after its
	// category, all in one transaction.
	SaveCollection(ctx context.Context, c models.Collection) (int, error)
	Close() error
}
