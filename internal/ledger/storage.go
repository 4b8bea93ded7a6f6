// Package ledger keeps a local record of every task the agent has
// created, so confirmations survive past the conversation.
package ledger

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Storage handles SQLite operations for the confirmation ledger
type Storage struct {
	db *sql.DB
}

// Entry records one created task
type Entry struct {
	ID        string    `json:"id"`
	TaskGID   string    `json:"task_gid"`
	Permalink string    `json:"permalink"`
	Project   string    `json:"project"`
	Assignee  string    `json:"assignee"`
	Title     string    `json:"title"`
	DueOn     string    `json:"due_on"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStorage creates a new Storage instance
func NewStorage(dbPath string) (*Storage, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_fk=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Record appends a created task to the ledger and returns its entry ID
func (s *Storage) Record(entry *Entry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO created_tasks (id, task_gid, permalink, project, assignee, title, due_on, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.TaskGID, entry.Permalink, entry.Project,
		entry.Assignee, entry.Title, entry.DueOn, entry.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record task: %w", err)
	}
	return entry.ID, nil
}

// Recent returns the most recently created tasks, newest first
func (s *Storage) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, task_gid, permalink, project, assignee, title, due_on, created_at
		FROM created_tasks
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger query failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.TaskGID, &e.Permalink, &e.Project,
			&e.Assignee, &e.Title, &e.DueOn, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
