// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clientstore persists client profiles in a SQLite database so that
// company briefs, audience briefs, guidelines, and sitemap URLs can be
// reused across article runs without re-passing files on every invocation.
package clientstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/article-engine/pkg/types"
)

const dbFile = "clients.db"

// ErrNotFound is returned by Get and Delete when no profile exists with
// the requested name.
var ErrNotFound = errors.New("client profile not found")

// Store manages the client profile SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the client database at dataDir/clients.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
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
	stmt := `CREATE TABLE IF NOT EXISTS clients (
		name TEXT PRIMARY KEY,
		company_brief TEXT NOT NULL,
		audience_brief TEXT NOT NULL,
		guidelines TEXT,
		sitemap_url TEXT,
		updated_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Put inserts or replaces the profile keyed by its Name.
func (s *Store) Put(profile types.ClientProfile) error {
	if profile.Name == "" {
		return fmt.Errorf("client profile name is required")
	}

	_, err := s.db.Exec(`INSERT INTO clients
		(name, company_brief, audience_brief, guidelines, sitemap_url, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			company_brief = excluded.company_brief,
			audience_brief = excluded.audience_brief,
			guidelines = excluded.guidelines,
			sitemap_url = excluded.sitemap_url,
			updated_at = excluded.updated_at`,
		profile.Name, profile.CompanyBrief, profile.AudienceBrief,
		profile.Guidelines, profile.SitemapURL,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing client %q: %w", profile.Name, err)
	}
	return nil
}

// Get returns the profile with the given name, or ErrNotFound.
func (s *Store) Get(name string) (types.ClientProfile, error) {
	var p types.ClientProfile
	err := s.db.QueryRow(`SELECT name, company_brief, audience_brief, guidelines, sitemap_url
		FROM clients WHERE name = ?`, name).
		Scan(&p.Name, &p.CompanyBrief, &p.AudienceBrief, &p.Guidelines, &p.SitemapURL)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ClientProfile{}, fmt.Errorf("client %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return types.ClientProfile{}, fmt.Errorf("loading client %q: %w", name, err)
	}
	return p, nil
}

// List returns all profiles ordered by name.
func (s *Store) List() ([]types.ClientProfile, error) {
	rows, err := s.db.Query(`SELECT name, company_brief, audience_brief, guidelines, sitemap_url
		FROM clients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var profiles []types.ClientProfile
	for rows.Next() {
		var p types.ClientProfile
		if err := rows.Scan(&p.Name, &p.CompanyBrief, &p.AudienceBrief, &p.Guidelines, &p.SitemapURL); err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}
	return profiles, nil
}

// Delete removes the profile with the given name. Deleting a profile that
// does not exist returns ErrNotFound.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM clients WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting client %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting client %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("client %q: %w", name, ErrNotFound)
	}
	return nil
}
