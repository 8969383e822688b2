// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deckstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/study-engine/pkg/types"
)

const exportDir = "export"

// ExportYAML writes the given decks, or all decks when ids is empty, to
// dir/export/decks.yaml and returns the file path.
func (s *Store) ExportYAML(ctx context.Context, ids ...string) (string, error) {
	decks, err := s.exportDecks(ctx, ids)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(decks)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport("decks.yaml", data)
}

// ExportJSON writes the given decks, or all decks when ids is empty, to
// dir/export/decks.json and returns the file path.
func (s *Store) ExportJSON(ctx context.Context, ids ...string) (string, error) {
	decks, err := s.exportDecks(ctx, ids)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(decks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport("decks.json", data)
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	dir := filepath.Join(s.dir, exportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func (s *Store) exportDecks(ctx context.Context, ids []string) ([]types.Deck, error) {
	if len(ids) == 0 {
		all, err := s.ListDecks(ctx, ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("querying for export: %w", err)
		}
		for _, ds := range all {
			ids = append(ids, ds.ID)
		}
	}

	decks := make([]types.Deck, 0, len(ids))
	for _, id := range ids {
		d, err := s.LoadDeck(ctx, id)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}
