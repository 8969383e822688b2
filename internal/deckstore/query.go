// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deckstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/study-engine/pkg/types"
)

// DeckSummary is one row of a deck listing.
type DeckSummary struct {
	ID        string    `json:"id" yaml:"id"`
	Subject   string    `json:"subject" yaml:"subject"`
	Sources   []string  `json:"sources" yaml:"sources"`
	Fallback  bool      `json:"fallback" yaml:"fallback"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Cards     int       `json:"cards" yaml:"cards"`
	Studied   int       `json:"studied" yaml:"studied"`
}

// ListOptions filters a deck listing.
type ListOptions struct {
	// Subject keeps only decks of this subject.
	Subject string

	// MaxResults limits result count. Zero means no limit.
	MaxResults int
}

// ListDecks returns decks newest first with their card and studied counts.
func (s *Store) ListDecks(ctx context.Context, opts ListOptions) ([]DeckSummary, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT d.id, d.subject, d.sources, d.fallback, d.created_at,
			(SELECT count(*) FROM cards c WHERE c.deck_id = d.id),
			(SELECT count(*) FROM progress p WHERE p.deck_id = d.id AND p.studied = 1)
		FROM decks d
		WHERE 1=1`)
	if opts.Subject != "" {
		qb.WriteString(` AND d.subject = ?`)
		args = append(args, opts.Subject)
	}
	qb.WriteString(` ORDER BY d.created_at DESC, d.id DESC`)
	if opts.MaxResults > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, opts.MaxResults)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing decks: %w", err)
	}
	defer rows.Close()

	var out []DeckSummary
	for rows.Next() {
		var (
			ds          DeckSummary
			sourcesJSON sql.NullString
			createdAt   string
		)
		if err := rows.Scan(&ds.ID, &ds.Subject, &sourcesJSON, &ds.Fallback, &createdAt, &ds.Cards, &ds.Studied); err != nil {
			return nil, fmt.Errorf("scanning deck: %w", err)
		}
		var err error
		if ds.Sources, ds.CreatedAt, err = decodeHeader(sourcesJSON, createdAt); err != nil {
			return nil, fmt.Errorf("deck %s: %w", ds.ID, err)
		}
		out = append(out, ds)
	}
	return out, rows.Err()
}

// SearchResult is a card matched by full-text search.
type SearchResult struct {
	DeckID   string `json:"deck_id" yaml:"deck_id"`
	Subject  string `json:"subject" yaml:"subject"`
	CardID   int    `json:"card_id" yaml:"card_id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Category string `json:"category" yaml:"category"`
}

// SearchCards runs an FTS5 query over card questions and answers, ranked by
// relevance. maxResults <= 0 uses the store default.
func (s *Store) SearchCards(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", types.ErrPrecondition)
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.deck_id, d.subject, c.card_id, c.question, c.answer, c.category
		FROM cards_fts
		JOIN cards c ON c.rowid = cards_fts.rowid
		JOIN decks d ON d.id = c.deck_id
		WHERE cards_fts MATCH ?
		ORDER BY cards_fts.rank
		LIMIT ?`, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching cards: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var (
			r        SearchResult
			category sql.NullString
		)
		if err := rows.Scan(&r.DeckID, &r.Subject, &r.CardID, &r.Question, &r.Answer, &category); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Category = category.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveProgress replaces the stored progress of a deck with p. Entries for
// card IDs the deck does not hold are ignored.
func (s *Store) SaveProgress(ctx context.Context, deckID string, p types.Progress) error {
	if _, err := s.deckHeader(ctx, deckID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM progress WHERE deck_id = ?`, deckID); err != nil {
		return fmt.Errorf("clearing progress: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO progress (deck_id, card_id, difficulty, studied, updated_at)
		 SELECT ?, ?, ?, ?, ? WHERE EXISTS (SELECT 1 FROM cards WHERE deck_id = ? AND card_id = ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(timeFormat)
	for id, cp := range p {
		if _, err := stmt.ExecContext(ctx, deckID, id, string(cp.Difficulty), cp.Studied, now, deckID, id); err != nil {
			return fmt.Errorf("saving progress for card %d: %w", id, err)
		}
	}

	return tx.Commit()
}

// LoadProgress reads the saved progress of a deck. A deck that was never
// studied has an empty map.
func (s *Store) LoadProgress(ctx context.Context, deckID string) (types.Progress, error) {
	if _, err := s.deckHeader(ctx, deckID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT card_id, difficulty, studied FROM progress WHERE deck_id = ?`, deckID)
	if err != nil {
		return nil, fmt.Errorf("querying progress: %w", err)
	}
	defer rows.Close()

	p := make(types.Progress)
	for rows.Next() {
		var (
			id         int
			difficulty sql.NullString
			cp         types.CardProgress
		)
		if err := rows.Scan(&id, &difficulty, &cp.Studied); err != nil {
			return nil, fmt.Errorf("scanning progress: %w", err)
		}
		cp.Difficulty = types.Difficulty(difficulty.String)
		p[id] = cp
	}
	return p, rows.Err()
}
