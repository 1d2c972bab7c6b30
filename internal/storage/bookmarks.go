package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vidyasagar/hike/internal/location"
)

// Bookmark is a saved location.
type Bookmark struct {
	ID        int64
	Location  location.Location
	Title     string
	CreatedAt time.Time
}

// BookmarkStore manages bookmarks persisted in SQLite.
type BookmarkStore struct {
	db *sql.DB
}

// NewBookmarkStore creates a bookmark store using the given database.
func NewBookmarkStore(db *DB) *BookmarkStore {
	return &BookmarkStore{db: db.conn}
}

// Add bookmarks loc under title. It reports false if loc was already
// bookmarked.
func (bs *BookmarkStore) Add(loc location.Location, title string) (bool, error) {
	if loc.IsZero() {
		return false, fmt.Errorf("bookmarking empty location")
	}
	if title == "" {
		title = loc.Name()
	}
	res, err := bs.db.Exec(
		`INSERT OR IGNORE INTO bookmarks (location, title) VALUES (?, ?)`,
		loc.String(), title,
	)
	if err != nil {
		return false, fmt.Errorf("adding bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Remove deletes the bookmark for loc. It reports false if none existed.
func (bs *BookmarkStore) Remove(loc location.Location) (bool, error) {
	res, err := bs.db.Exec(`DELETE FROM bookmarks WHERE location = ?`, loc.String())
	if err != nil {
		return false, fmt.Errorf("removing bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Has reports whether loc is bookmarked.
func (bs *BookmarkStore) Has(loc location.Location) bool {
	var count int
	err := bs.db.QueryRow(`SELECT COUNT(*) FROM bookmarks WHERE location = ?`, loc.String()).Scan(&count)
	return err == nil && count > 0
}

// List returns all bookmarks, newest first.
func (bs *BookmarkStore) List() ([]Bookmark, error) {
	rows, err := bs.db.Query(
		`SELECT id, location, title, created_at FROM bookmarks ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()
	return scanBookmarks(rows)
}

// Search finds bookmarks whose title or location contains query.
func (bs *BookmarkStore) Search(query string) ([]Bookmark, error) {
	like := "%" + query + "%"
	rows, err := bs.db.Query(
		`SELECT id, location, title, created_at FROM bookmarks
		 WHERE title LIKE ? OR location LIKE ?
		 ORDER BY created_at DESC, id DESC`,
		like, like,
	)
	if err != nil {
		return nil, fmt.Errorf("searching bookmarks: %w", err)
	}
	defer rows.Close()
	return scanBookmarks(rows)
}

// Count returns the number of bookmarks.
func (bs *BookmarkStore) Count() int {
	var count int
	if err := bs.db.QueryRow(`SELECT COUNT(*) FROM bookmarks`).Scan(&count); err != nil {
		return 0
	}
	return count
}

func scanBookmarks(rows *sql.Rows) ([]Bookmark, error) {
	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		var loc string
		var createdAt sqliteTime
		if err := rows.Scan(&b.ID, &loc, &b.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		b.Location = location.FromString(loc)
		b.CreatedAt = createdAt.Time
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// sqliteTime scans a DATETIME column whether the driver hands back a
// time.Time or the stored text.
type sqliteTime struct {
	time.Time
}

func (t *sqliteTime) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		t.Time = x
	case string:
		return t.parse(x)
	case []byte:
		return t.parse(string(x))
	case nil:
		t.Time = time.Time{}
	default:
		return fmt.Errorf("unsupported time value %T", v)
	}
	return nil
}

func (t *sqliteTime) parse(s string) error {
	parsed, err := time.Parse(time.DateTime, s)
	if err != nil {
		return fmt.Errorf("parsing time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}
