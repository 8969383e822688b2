// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/study-engine/internal/study"
	"github.com/pdiddy/study-engine/pkg/types"
)

func init() {
	color.NoColor = true
}

func twoCards() []types.Flashcard {
	return []types.Flashcard{
		{ID: 1, Question: "Homeostaz nedir?", Answer: "İç dengenin korunması", Category: types.CategoryDefinition},
		{ID: 2, Question: "Osmoz nedir?", Answer: "Suyun zardan geçişi", Category: types.CategoryDefinition},
	}
}

func TestStudyLoopRatesAndSaves(t *testing.T) {
	s := study.New(twoCards(), nil)
	var saved []types.Progress
	save := func(p types.Progress) error {
		saved = append(saved, p)
		return nil
	}

	var out bytes.Buffer
	err := studyLoop(s, strings.NewReader("e\ns\nf\ne\nf\nh\nq\n"), &out, save, nil)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "[1/2] Homeostaz nedir?")
	assert.Contains(t, text, "study mode is off", "rating before study mode is refused")
	assert.Contains(t, text, "  İç dengenin korunması\n")
	assert.Contains(t, text, "[2/2] Osmoz nedir?")
	assert.Contains(t, text, "Tüm kartlar tamamlandı!")
	assert.Contains(t, text, "Toplam: 2  Çalışılan: 2  Kolay: 1  Orta: 0  Zor: 1")

	require.Len(t, saved, 3, "two ratings and the final save")
	assert.Equal(t, types.Progress{
		1: {Difficulty: types.DifficultyEasy, Studied: true},
		2: {Difficulty: types.DifficultyHard, Studied: true},
	}, saved[2])
}

func TestStudyLoopNavigationAndReset(t *testing.T) {
	saved := types.Progress{1: {Difficulty: types.DifficultyMedium, Studied: true}}
	s := study.New(twoCards(), saved)

	var last types.Progress
	save := func(p types.Progress) error {
		last = p
		return nil
	}

	var out bytes.Buffer
	require.NoError(t, studyLoop(s, strings.NewReader("p\nn\nn\nt\nr\nbogus\n"), &out, save, nil))

	text := out.String()
	assert.Contains(t, text, "  (medium)\n", "saved rating is shown")
	assert.Contains(t, text, "İlk karttasınız.")
	assert.Contains(t, text, "Son karttasınız.")
	assert.Contains(t, text, "Toplam: 2  Çalışılan: 1  Kolay: 0  Orta: 1  Zor: 0")
	assert.Contains(t, text, "İlerleme sıfırlandı.")
	assert.Contains(t, text, `Bilinmeyen komut "bogus"`)
	assert.Empty(t, last, "end of input saves the reset progress")
}

func TestStudyLoopEmptyDeck(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, studyLoop(study.New(nil, nil), strings.NewReader("f\n"), &out, func(types.Progress) error { return nil }, nil))
	assert.Equal(t, "Deck is empty.\n", out.String())
}
