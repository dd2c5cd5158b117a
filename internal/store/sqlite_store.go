package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"trellomize/internal/models"
)

// SQLiteStore keeps the same whole-collection snapshot semantics as
// FileStore, but stores each collection as a single JSON document row. It
// exists for deployments that prefer one database file over two JSON files;
// it is not a relational mapping of the domain.
type SQLiteStore struct {
	db *sql.DB
}

const (
	collectionUsers    = "users"
	collectionProjects = "projects"
)

// NewSQLiteStore opens (or creates) the database at dbPath and bootstraps
// the snapshot table.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect snapshot db: %w", err)
	}

	schema := `
    CREATE TABLE IF NOT EXISTS snapshots (
        collection TEXT PRIMARY KEY,
        body TEXT NOT NULL,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadUsers() ([]models.User, error) {
	users := []models.User{}
	if err := s.load(collectionUsers, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (s *SQLiteStore) SaveUsers(users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	if err := s.save(collectionUsers, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadProjects() ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.load(collectionProjects, &projects); err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	return projects, nil
}

func (s *SQLiteStore) SaveProjects(projects []models.Project) error {
	if projects == nil {
		projects = []models.Project{}
	}
	if err := s.save(collectionProjects, projects); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}
	return nil
}

func (s *SQLiteStore) load(collection string, dst any) error {
	var body string
	err := s.db.QueryRow(
		`SELECT body FROM snapshots WHERE collection = ?`, collection,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(body), dst)
}

func (s *SQLiteStore) save(collection string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO snapshots (collection, body, updated_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(collection) DO UPDATE SET
            body = excluded.body,
            updated_at = excluded.updated_at
	`
	_, err = s.db.Exec(query, collection, string(body))
	return err
}
