package models

import (
	"time"
)

// FolderType is the literal stored in Item.Type for folders.
const FolderType = "folder"

// Item is the single entity of the tree store, representing either a file
// or a folder. Path is the materialized chain of ancestor folder NAMES,
// ending in a trailing slash ("/" for root-level items). An item's own name
// is not part of its path; only its descendants carry it in theirs.
type Item struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Path         string    `json:"path" db:"path"`
	Size         int64     `json:"size" db:"size"`
	Type         string    `json:"type" db:"type"`
	FileURL      string    `json:"file_url" db:"file_url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	UserID       string    `json:"user_id" db:"user_id"`
	ParentID     *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	IsFolder     bool      `json:"is_folder" db:"is_folder"`
	IsStarred    bool      `json:"is_starred" db:"is_starred"`
	IsTrash      bool      `json:"is_trash" db:"is_trash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FullPath returns the subtree prefix rooted at this item: its own path
// plus its own name and a trailing slash. Every descendant's path starts
// with this string, and the trailing slash keeps prefix matching
// segment-exact ("/Foo/" never matches items under "/Foobar/").
func (i *Item) FullPath() string {
	return i.Path + i.Name + "/"
}
