// Copyright COAZ Digital, 2026. All rights reserved.

// Package content persists managed site content and the website crawl
// cache in SQLite. The content items are the CMS surface exposed over
// the API; the pages table feeds document ingestion.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/coazdigital/coaz-assist/pkg/types"
)

// ErrNotFound is returned when an item or page does not exist.
var ErrNotFound = errors.New("not found")

// Store manages the content SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at cfg.DBPath and bootstraps the
// schema. The parent directory is created if needed.
func Open(cfg types.ContentConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS content_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			section TEXT,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_content_section ON content_items(section)`,
		`CREATE TABLE IF NOT EXISTS pages (
			url TEXT PRIMARY KEY,
			title TEXT,
			content TEXT,
			fetched_at TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Create inserts a new content item and returns it with its assigned ID.
func (s *Store) Create(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	item.UpdatedAt = now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO content_items (slug, title, body, section, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		item.Slug, item.Title, item.Body, item.Section, item.UpdatedAt,
	)
	if err != nil {
		return types.ContentItem{}, fmt.Errorf("inserting content item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	if err != nil {
		return types.ContentItem{}, fmt.Errorf("reading insert id: %w", err)
	}
	return item, nil
}

// Get fetches one content item by ID.
func (s *Store) Get(ctx context.Context, id int64) (types.ContentItem, error) {
	var item types.ContentItem
	var section sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, slug, title, body, section, updated_at
		 FROM content_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Slug, &item.Title, &item.Body, &section, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ContentItem{}, ErrNotFound
	}
	if err != nil {
		return types.ContentItem{}, fmt.Errorf("querying content item %d: %w", id, err)
	}
	item.Section = section.String
	return item, nil
}

// List returns all content items, optionally filtered by section, newest
// first.
func (s *Store) List(ctx context.Context, section string) ([]types.ContentItem, error) {
	query := `SELECT id, slug, title, body, section, updated_at
		 FROM content_items ORDER BY updated_at DESC, id DESC`
	args := []any{}
	if section != "" {
		query = `SELECT id, slug, title, body, section, updated_at
		 FROM content_items WHERE section = ? ORDER BY updated_at DESC, id DESC`
		args = append(args, section)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing content items: %w", err)
	}
	defer rows.Close()

	var items []types.ContentItem
	for rows.Next() {
		var item types.ContentItem
		var sec sql.NullString
		if err := rows.Scan(&item.ID, &item.Slug, &item.Title, &item.Body, &sec, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning content item: %w", err)
		}
		item.Section = sec.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update replaces the mutable fields of an existing item.
func (s *Store) Update(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	item.UpdatedAt = now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE content_items SET slug = ?, title = ?, body = ?, section = ?, updated_at = ?
		 WHERE id = ?`,
		item.Slug, item.Title, item.Body, item.Section, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return types.ContentItem{}, fmt.Errorf("updating content item %d: %w", item.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return types.ContentItem{}, fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return types.ContentItem{}, ErrNotFound
	}
	return item, nil
}

// Delete removes an item by ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM content_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting content item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertPage records one crawled page, replacing any previous fetch of
// the same URL.
func (s *Store) UpsertPage(ctx context.Context, page types.Page) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pages (url, title, content, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			title=excluded.title, content=excluded.content, fetched_at=excluded.fetched_at`,
		page.URL, page.Title, page.Content, now(),
	)
	if err != nil {
		return fmt.Errorf("upserting page %s: %w", page.URL, err)
	}
	return nil
}

// ListPages returns the full crawl cache for ingestion.
func (s *Store) ListPages(ctx context.Context) ([]types.Page, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT url, title, content FROM pages ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()

	var pages []types.Page
	for rows.Next() {
		var p types.Page
		var title, content sql.NullString
		if err := rows.Scan(&p.URL, &title, &content); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		p.Title = title.String
		p.Content = content.String
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
