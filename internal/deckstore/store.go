// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deckstore persists generated decks and their study progress in
// SQLite, with an FTS5 index over card questions and answers.
package deckstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/study-engine/pkg/types"
)

const (
	dbFile = "study.db"

	// timeFormat is fixed width so stored timestamps sort as text.
	timeFormat = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the deck database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the deck database at cfg.Dir/study.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
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

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS decks (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			sources TEXT,
			fallback INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cards (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			deck_id TEXT NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
			card_id INTEGER NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category TEXT,
			UNIQUE(deck_id, card_id)
		)`,
		`CREATE TABLE IF NOT EXISTS progress (
			deck_id TEXT NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
			card_id INTEGER NOT NULL,
			difficulty TEXT,
			studied INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (deck_id, card_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_deck_id ON cards(deck_id)`,
		`CREATE INDEX IF NOT EXISTS idx_decks_subject ON decks(subject)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='cards_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE cards_fts USING fts5(question, answer, content=cards, content_rowid=rowid)`,
			`CREATE TRIGGER cards_ai AFTER INSERT ON cards BEGIN
				INSERT INTO cards_fts(rowid, question, answer) VALUES (new.rowid, new.question, new.answer);
			END`,
			`CREATE TRIGGER cards_ad AFTER DELETE ON cards BEGIN
				INSERT INTO cards_fts(cards_fts, rowid, question, answer) VALUES('delete', old.rowid, old.question, old.answer);
			END`,
			`CREATE TRIGGER cards_au AFTER UPDATE ON cards BEGIN
				INSERT INTO cards_fts(cards_fts, rowid, question, answer) VALUES('delete', old.rowid, old.question, old.answer);
				INSERT INTO cards_fts(rowid, question, answer) VALUES (new.rowid, new.question, new.answer);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveDeck writes d and its cards. Saving a deck with an existing ID
// replaces its cards and keeps its progress for card IDs that remain.
func (s *Store) SaveDeck(ctx context.Context, d types.Deck) error {
	if d.ID == "" {
		return fmt.Errorf("%w: deck has no id", types.ErrPrecondition)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	sourcesJSON, err := json.Marshal(d.Sources)
	if err != nil {
		return fmt.Errorf("encoding sources of deck %s: %w", d.ID, err)
	}
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO decks (id, subject, sources, fallback, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			subject=excluded.subject, sources=excluded.sources,
			fallback=excluded.fallback, created_at=excluded.created_at`,
		d.ID, d.Subject, string(sourcesJSON), d.Fallback, createdAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("upserting deck: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE deck_id = ?`, d.ID); err != nil {
		return fmt.Errorf("deleting old cards: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cards (deck_id, card_id, question, answer, category) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range d.Cards {
		if _, err := stmt.ExecContext(ctx, d.ID, c.ID, c.Question, c.Answer, c.Category); err != nil {
			return fmt.Errorf("inserting card %d: %w", c.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM progress WHERE deck_id = ? AND card_id NOT IN (SELECT card_id FROM cards WHERE deck_id = ?)`,
		d.ID, d.ID)
	if err != nil {
		return fmt.Errorf("pruning progress: %w", err)
	}

	return tx.Commit()
}

// LoadDeck reads a deck with its cards in id order and its saved progress
// applied. It returns types.ErrNotFound for an unknown id.
func (s *Store) LoadDeck(ctx context.Context, id string) (types.Deck, error) {
	d, err := s.deckHeader(ctx, id)
	if err != nil {
		return types.Deck{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.card_id, c.question, c.answer, c.category, p.difficulty, p.studied
		 FROM cards c
		 LEFT JOIN progress p ON p.deck_id = c.deck_id AND p.card_id = c.card_id
		 WHERE c.deck_id = ?
		 ORDER BY c.card_id`, id)
	if err != nil {
		return types.Deck{}, fmt.Errorf("querying cards: %w", err)
	}
	defer rows.Close()

	d.Cards = []types.Flashcard{}
	for rows.Next() {
		var (
			c          types.Flashcard
			category   sql.NullString
			difficulty sql.NullString
			studied    sql.NullBool
		)
		if err := rows.Scan(&c.ID, &c.Question, &c.Answer, &category, &difficulty, &studied); err != nil {
			return types.Deck{}, fmt.Errorf("scanning card: %w", err)
		}
		c.Category = category.String
		c.Difficulty = types.Difficulty(difficulty.String)
		c.Studied = studied.Bool
		d.Cards = append(d.Cards, c)
	}
	return d, rows.Err()
}

func (s *Store) deckHeader(ctx context.Context, id string) (types.Deck, error) {
	var (
		d           types.Deck
		sourcesJSON sql.NullString
		createdAt   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, subject, sources, fallback, created_at FROM decks WHERE id = ?`, id,
	).Scan(&d.ID, &d.Subject, &sourcesJSON, &d.Fallback, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Deck{}, fmt.Errorf("%w: deck %s", types.ErrNotFound, id)
	}
	if err != nil {
		return types.Deck{}, fmt.Errorf("querying deck %s: %w", id, err)
	}
	if d.Sources, d.CreatedAt, err = decodeHeader(sourcesJSON, createdAt); err != nil {
		return types.Deck{}, fmt.Errorf("deck %s: %w", id, err)
	}
	return d, nil
}

// decodeHeader parses the sources and created_at columns of a decks row.
func decodeHeader(sourcesJSON sql.NullString, createdAt string) ([]string, time.Time, error) {
	var sources []string
	if sourcesJSON.Valid {
		if err := json.Unmarshal([]byte(sourcesJSON.String), &sources); err != nil {
			return nil, time.Time{}, fmt.Errorf("decoding sources: %w", err)
		}
	}
	at, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return sources, at, nil
}

// DeleteDeck removes a deck with its cards and progress.
func (s *Store) DeleteDeck(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting deck %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: deck %s", types.ErrNotFound, id)
	}
	return nil
}
