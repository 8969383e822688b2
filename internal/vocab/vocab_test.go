// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/study-engine/pkg/types"
)

func TestDefaultVocabulary(t *testing.T) {
	v := Default()

	assert.Equal(t, "Genel Tıp", v.DefaultSubject)
	require.NotEmpty(t, v.Categories)
	assert.Equal(t, "anatomy", v.Categories[0].Key)

	bio, ok := v.Category("biochemistry")
	require.True(t, ok)
	assert.Contains(t, bio.Keywords, "atp", "keywords are lower-cased on load")
	assert.Contains(t, bio.Aliases, "biyokimya")

	phys, ok := v.CategoryForSubject("Fizyoloji")
	require.True(t, ok)
	assert.Equal(t, "physiology", phys.Key)

	assert.Contains(t, v.Markers.Headings, "giriş")
	assert.Contains(t, v.Markers.Questions, "ne zaman")
	assert.Equal(t, "Genel Tıp", v.Subjects()[len(v.Subjects())-1])
}

func TestAnchorTerm(t *testing.T) {
	v := Default()

	term, ok := v.AnchorTerm("KALP dört odacıktan oluşan kaslı bir yapıdır")
	require.True(t, ok)
	assert.Equal(t, "kalp", term)

	term, ok = v.AnchorTerm("Kalp kan pompalayan bir organdır")
	require.True(t, ok)
	assert.Equal(t, "kalp", term, "earliest occurrence wins over list order")

	term, ok = v.AnchorTerm("Bu cümlede tanıdık bir kelime yok mu acaba")
	require.True(t, ok, "suffixed words match at their start")
	assert.Equal(t, "tanı", term)

	term, ok = v.AnchorTerm("Savunma mekanizmaları kanın pıhtılaşmasını sağlar")
	require.True(t, ok)
	assert.Equal(t, "kan", term, "kanın matches, mekanizmaları does not")

	_, ok = v.AnchorTerm("Bu mekanizmalar zamanla değişebilir")
	assert.False(t, ok, "terms inside a word do not match")

	_, ok = v.AnchorTerm("Nothing medical appears here at all")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "malformed", yaml: "categories: [\n"},
		{name: "missing default subject", yaml: "categories: []\n"},
		{name: "missing subject", yaml: "default_subject: X\ncategories:\n  - key: a\n"},
		{name: "duplicate key", yaml: "default_subject: X\ncategories:\n  - {key: a, subject: A}\n  - {key: a, subject: B}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidConfig))
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	content := `default_subject: General
categories:
  - key: cars
    subject: Cars
    aliases: [Automotive]
    keywords: [Engine, engine, Wheel]
anchor_terms: [Engine]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "General", v.DefaultSubject)
	assert.Equal(t, []string{"engine", "wheel"}, v.Categories[0].Keywords)
	assert.Equal(t, []string{"automotive"}, v.Categories[0].Aliases)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), def)
}
