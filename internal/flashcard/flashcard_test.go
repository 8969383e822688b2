// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flashcard

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/study-engine/pkg/types"
)

const kalpSentence = "Kalp dört odacıktan oluşan kaslı bir yapıdır."

func newTestSynthesizer() *Synthesizer {
	return New(Options{Config: types.DefaultExtractionConfig()})
}

func definitions(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "Terim%03d: Bu terimin açıklaması yeterince uzundur\n", i)
	}
	return b.String()
}

func TestSynthesizeDefinitionCard(t *testing.T) {
	s := newTestSynthesizer()

	res, err := s.Synthesize("Homeostaz: Vücudun iç dengesini koruma mekanizmasıdır.", "Fizyoloji", 0, nil)
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)

	card := res.Cards[0]
	assert.Equal(t, 1, card.ID)
	assert.Equal(t, "Homeostaz nedir?", card.Question)
	assert.Equal(t, "Vücudun iç dengesini koruma mekanizmasıdır.", card.Answer)
	assert.Equal(t, types.CategoryDefinition, card.Category)
	assert.Equal(t, types.DifficultyUnset, card.Difficulty)
	assert.False(t, card.Studied)
	assert.False(t, res.Fallback)
}

func TestSynthesizeSentenceCardAnchoredOnTerm(t *testing.T) {
	s := newTestSynthesizer()
	text := "Homeostaz: Vücudun iç dengesini koruma mekanizmasıdır.\n" + kalpSentence

	res, err := s.Synthesize(text, "Anatomi", 0, nil)
	require.NoError(t, err)
	require.Len(t, res.Cards, 2)

	assert.Equal(t, "Kalp hakkında bu bilgi nedir?", res.Cards[1].Question)
	assert.Equal(t, kalpSentence, res.Cards[1].Answer)
	assert.Equal(t, types.CategoryGeneral, res.Cards[1].Category)
	assert.Equal(t, 1, res.FromDefinitions)
	assert.Equal(t, 1, res.FromSentences)
}

func TestSynthesizeGenericQuestion(t *testing.T) {
	s := newTestSynthesizer()
	sentence := "Bu cümle herhangi bir özel terim içermeyen uzunca bir açıklamadır."

	res, err := s.Synthesize(sentence, "Genel Tıp", 0, nil)
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "Bu tıbbi bilgi neyi açıklar?", res.Cards[0].Question)

	seeded := func() []types.Flashcard {
		r, err := s.Synthesize(sentence, "Genel Tıp", 0, rand.New(rand.NewPCG(42, 42)))
		require.NoError(t, err)
		return r.Cards
	}
	assert.Equal(t, seeded(), seeded(), "same seed gives the same deck")
}

func TestSynthesizeCapTruncatesBeforeIDs(t *testing.T) {
	s := newTestSynthesizer()

	res, err := s.Synthesize(definitions(10), "Genel Tıp", 2, nil)
	require.NoError(t, err)
	require.Len(t, res.Cards, 2)
	assert.Equal(t, 1, res.Cards[0].ID)
	assert.Equal(t, 2, res.Cards[1].ID)
	assert.Equal(t, "Terim000 nedir?", res.Cards[0].Question)
	assert.Equal(t, "Terim001 nedir?", res.Cards[1].Question)
}

func TestSynthesizeCapResolution(t *testing.T) {
	s := newTestSynthesizer()

	res, err := s.Synthesize(definitions(30), "Genel Tıp", 0, nil)
	require.NoError(t, err)
	assert.Len(t, res.Cards, 25, "zero selects the default cap")

	res, err = s.Synthesize(definitions(60), "Genel Tıp", 500, nil)
	require.NoError(t, err)
	assert.Len(t, res.Cards, 50, "caps above the maximum are clamped")
}

func TestSynthesizeNegativeCap(t *testing.T) {
	s := newTestSynthesizer()

	_, err := s.Synthesize("Homeostaz: Vücudun iç dengesini koruma mekanizmasıdır.", "Genel Tıp", -1, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrPrecondition))

	_, err = s.Synthesize("", "Genel Tıp", 5, nil)
	assert.NoError(t, err, "missing content is not an error")
}

func TestSynthesizeFallback(t *testing.T) {
	s := newTestSynthesizer()

	for _, text := range []string{"", "   \n\t  ", "Kalp bir organdır."} {
		t.Run(fmt.Sprintf("%q", text), func(t *testing.T) {
			first, err := s.Synthesize(text, "Genel Tıp", 0, nil)
			require.NoError(t, err)
			second, err := s.Synthesize(text, "Genel Tıp", 0, nil)
			require.NoError(t, err)

			assert.True(t, first.Fallback)
			require.Len(t, first.Cards, 6)
			assert.Equal(t, first.Cards, second.Cards, "fallback deck is stable")
			assert.Equal(t, "Hücre zarının temel yapısı nedir?", first.Cards[0].Question)
			for i, c := range first.Cards {
				assert.Equal(t, i+1, c.ID)
			}
		})
	}
}

func TestSynthesizeFallbackRespectsSubjectAndCap(t *testing.T) {
	s := newTestSynthesizer()

	res, err := s.Synthesize("", "Anatomi", 0, nil)
	require.NoError(t, err)
	require.Len(t, res.Cards, 3)
	assert.Equal(t, "Anatomi", res.Cards[0].Category)

	res, err = s.Synthesize("", "Genel Tıp", 2, nil)
	require.NoError(t, err)
	assert.Len(t, res.Cards, 2)
}

func TestSynthesizeSkipsSentencesWhenDefinitionsSuffice(t *testing.T) {
	s := newTestSynthesizer()
	text := definitions(3) + kalpSentence

	res, err := s.Synthesize(text, "Genel Tıp", 0, nil)
	require.NoError(t, err)
	assert.Len(t, res.Cards, 3)
	assert.Zero(t, res.FromSentences)
}

func TestSynthesizeDeduplicates(t *testing.T) {
	s := newTestSynthesizer()
	text := strings.Repeat(kalpSentence+"\n", 3)

	res, err := s.Synthesize(text, "Genel Tıp", 0, nil)
	require.NoError(t, err)
	assert.Len(t, res.Cards, 1)
}

func TestSynthesizeDeduplicatesRepeatedGenericSentence(t *testing.T) {
	s := newTestSynthesizer()
	sentence := "Bu süreç günlük yaşamda sıklıkla gözlemlenen bir olaydır."
	text := sentence + "\n" + sentence + "\n" + sentence

	for seed := uint64(0); seed < 20; seed++ {
		res, err := s.Synthesize(text, "Genel Tıp", 0, rand.New(rand.NewPCG(seed, seed)))
		require.NoError(t, err)
		require.Len(t, res.Cards, 1, "seed %d", seed)
		assert.Equal(t, sentence, res.Cards[0].Answer)
		assert.Equal(t, 1, res.FromSentences)
	}
}

func TestSynthesizeCardProperties(t *testing.T) {
	s := newTestSynthesizer()
	inputs := []string{
		"",
		definitions(12),
		definitions(2) + kalpSentence + " Beyin kafatası içinde korunan bir yapıdır.\n" + kalpSentence,
		"BAŞLIK\n- madde bir iki üç dört beş altı yedi\nKan dolaşımı oksijeni dokulara taşır ve atıkları uzaklaştırır.",
	}

	for i, text := range inputs {
		for _, limit := range []int{1, 3, 25} {
			t.Run(fmt.Sprintf("input%d/cap%d", i, limit), func(t *testing.T) {
				res, err := s.Synthesize(text, "Genel Tıp", limit, rand.New(rand.NewPCG(1, 1)))
				require.NoError(t, err)
				require.NotEmpty(t, res.Cards)
				assert.LessOrEqual(t, len(res.Cards), limit)

				seen := make(map[[2]string]bool)
				for j, c := range res.Cards {
					assert.Equal(t, j+1, c.ID)
					assert.False(t, seen[c.Key()], "duplicate card %q", c.Question)
					seen[c.Key()] = true
				}
			})
		}
	}
}
