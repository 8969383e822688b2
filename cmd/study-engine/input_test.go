// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/study-engine/internal/config"
)

func newInputCmd(t *testing.T, stderr *bytes.Buffer) *cobra.Command {
	t.Helper()
	c := config.Default()
	cfg = &c

	cmd := &cobra.Command{}
	cmd.Flags().String("label", "", "")
	cmd.SetErr(stderr)
	return cmd
}

func TestReadInputUnreadableFileUsesFallback(t *testing.T) {
	var stderr bytes.Buffer
	cmd := newInputCmd(t, &stderr)

	path := filepath.Join(t.TempDir(), "anatomi_notlar.pdf")
	require.NoError(t, os.Mkdir(path, 0o755))

	in, err := readInput(cmd, []string{path})
	require.NoError(t, err)
	assert.Empty(t, in.Text)
	assert.Equal(t, "anatomi_notlar.pdf", in.SourceLabel)
	assert.Contains(t, stderr.String(), "failed:      anatomi_notlar.pdf")

	eng, err := newEngine()
	require.NoError(t, err)
	batch, err := eng.SynthesizeFlashcards(in, 0, nil)
	require.NoError(t, err)
	assert.True(t, batch.Fallback)
	assert.Equal(t, "Anatomi", batch.Classification.Subject)
	assert.NotEmpty(t, batch.Cards)
}

func TestReadInputMissingFiles(t *testing.T) {
	var stderr bytes.Buffer
	cmd := newInputCmd(t, &stderr)
	dir := t.TempDir()

	_, err := readInput(cmd, []string{filepath.Join(dir, "yok.txt"), filepath.Join(dir, "yok.pdf")})
	assert.EqualError(t, err, "no input file exists")

	notes := filepath.Join(dir, "notlar.txt")
	require.NoError(t, os.WriteFile(notes, []byte("Homeostaz: Vücudun iç dengesini koruma mekanizmasıdır.\n"), 0o644))

	in, err := readInput(cmd, []string{notes, filepath.Join(dir, "yok.txt")})
	require.NoError(t, err)
	assert.Contains(t, in.Text, "Homeostaz")
	assert.Equal(t, "notlar.txt, yok.txt", in.SourceLabel)
}
