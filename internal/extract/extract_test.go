// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/study-engine/pkg/types"
)

func newTestExtractor() *Extractor {
	return New(types.DefaultExtractionConfig(), nil)
}

func TestDefinition(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantRule string
		want     types.DefinitionPair
	}{
		{
			name:     "colon",
			line:     "Homeostaz: Vücudun iç dengesini koruma mekanizmasıdır.",
			wantOK:   true,
			wantRule: "colon",
			want:     types.DefinitionPair{Term: "Homeostaz", Definition: "Vücudun iç dengesini koruma mekanizmasıdır."},
		},
		{
			name:     "spaced dash",
			line:     "Mitokondri - Hücrenin enerji üreten organelidir",
			wantOK:   true,
			wantRule: "dash",
			want:     types.DefinitionPair{Term: "Mitokondri", Definition: "Hücrenin enerji üreten organelidir"},
		},
		{
			name:     "equals sign",
			line:     "Osmoz = Suyun yarı geçirgen zardan geçişi",
			wantOK:   true,
			wantRule: "equals",
			want:     types.DefinitionPair{Term: "Osmoz", Definition: "Suyun yarı geçirgen zardan geçişi"},
		},
		{
			name:     "colon wins over dash",
			line:     "Kalp - Organ: dört odacıklı yapıdır ve kan pompalar",
			wantOK:   true,
			wantRule: "colon",
			want:     types.DefinitionPair{Term: "Kalp - Organ", Definition: "dört odacıklı yapıdır ve kan pompalar"},
		},
		{
			name:     "list marker is stripped before matching",
			line:     "- Enzim: Reaksiyonları hızlandıran protein yapılı katalizör",
			wantOK:   true,
			wantRule: "colon",
			want:     types.DefinitionPair{Term: "Enzim", Definition: "Reaksiyonları hızlandıran protein yapılı katalizör"},
		},
		{
			name:     "answer keeps later colons",
			line:     "Oran: Sistol:diyastol süre oranı yaklaşık bire ikidir",
			wantOK:   true,
			wantRule: "colon",
			want:     types.DefinitionPair{Term: "Oran", Definition: "Sistol:diyastol süre oranı yaklaşık bire ikidir"},
		},
		{name: "lower-case term", line: "kalp: dört odacıklı kaslı bir organdır"},
		{name: "term too short", line: "Ab: yeterince uzun bir açıklama metni"},
		{name: "definition too short", line: "Kalp: Organdır"},
		{name: "clock time", line: "Saat 10:30 itibarıyla ders başlar"},
		{name: "no delimiter", line: "Kalp dört odacıklı kaslı bir organdır"},
		{name: "leading delimiter", line: ": tanımı olmayan bir satır burada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule, ok := e.Definition(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantRule, rule)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefinitionBounds(t *testing.T) {
	e := newTestExtractor()
	def := func(n int) string { return "A" + strings.Repeat("b", n-1) }

	tests := []struct {
		name    string
		termLen int
		defLen  int
		wantOK  bool
	}{
		{"shortest term", 3, 20, true},
		{"term below minimum", 2, 20, false},
		{"longest term", 50, 20, true},
		{"term above maximum", 51, 20, false},
		{"shortest definition", 5, 10, true},
		{"definition below minimum", 5, 9, false},
		{"longest definition", 5, 300, true},
		{"definition above maximum", 5, 301, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := fmt.Sprintf("%s: %s", def(tt.termLen), def(tt.defLen))
			_, _, ok := e.Definition(line)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestHeading(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		line string
		want bool
	}{
		{"HÜCRE BİYOLOJİSİ", true},
		{"1. Giriş ve Tarihçe", true},
		{"12 Kardiyovasküler Sistem", true},
		{"Kalbin yapısı:", true},
		{"Homeostaz nasıl sağlanır?", true},
		{"Sonuç olarak bu bölümde", true},
		{"özellikler listesi burada", true},
		{"Kalp dört odacıklı bir organdır.", false},
		{"HbA1c DEĞERİ ÖLÇÜLDÜ", false},
		{strings.Repeat("uzun ", 20) + "soru?", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, ok := e.Heading(tt.line)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestKeyPoint(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{
			name: "bullet is stripped", wantOK: true,
			line: "- Kalp dört odacıklı bir organdır ve kan pompalar",
			want: "Kalp dört odacıklı bir organdır ve kan pompalar",
		},
		{
			name: "numbered item is stripped", wantOK: true,
			line: "2) Sol ventrikül sistemik dolaşımı başlatır",
			want: "Sol ventrikül sistemik dolaşımı başlatır",
		},
		{
			name: "single colon", wantOK: true,
			line: "Homeostaz: Vücudun iç dengesini koruma mekanizması",
			want: "Homeostaz: Vücudun iç dengesini koruma mekanizması",
		},
		{
			name: "importance word", wantOK: true,
			line: "Bu konu sınav için çok önemli bir başlıktır",
			want: "Bu konu sınav için çok önemli bir başlıktır",
		},
		{
			name: "question phrase", wantOK: true,
			line: "Kan basıncı ne zaman yükselir ve düşer",
			want: "Kan basıncı ne zaman yükselir ve düşer",
		},
		{name: "importance word must be a whole word", line: "Anatomik yapılar incelenir ve sınıflandırılır"},
		{name: "too short", line: "- Kısa madde"},
		{name: "too long", line: "- " + strings.Repeat("a", 199)},
		{name: "plain sentence", line: "Kalp göğüs boşluğunda yer alan bir yapıdır"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.KeyPoint(tt.line)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCaps(t *testing.T) {
	e := newTestExtractor()

	var b strings.Builder
	for i := range 12 {
		fmt.Fprintf(&b, "BÖLÜM BAŞLIĞI %s\n", strings.Repeat("X", i+1))
	}
	for i := range 20 {
		fmt.Fprintf(&b, "- Önemli madde numarası %d burada yazılıdır\n", i)
	}
	for i := range 12 {
		fmt.Fprintf(&b, "Terim%c: Bu terimin açıklaması yeterince uzundur\n", 'A'+i)
	}

	got := e.Extract(b.String())
	assert.Len(t, got.Headings, 10)
	assert.Len(t, got.KeyPoints, 15)
	assert.Len(t, got.Definitions, 10)
	assert.Equal(t, "BÖLÜM BAŞLIĞI X", got.Headings[0])
	assert.Equal(t, "TerimA", got.Definitions[0].Term)
}

func TestExtractDeduplicates(t *testing.T) {
	e := newTestExtractor()
	text := strings.Repeat("Homeostaz: Vücudun iç dengesini koruma mekanizmasıdır.\nGİRİŞ BÖLÜMÜ\n", 3)

	got := e.Extract(text)
	assert.Len(t, got.Definitions, 1)
	assert.Equal(t, []string{"GİRİŞ BÖLÜMÜ"}, got.Headings)
}

func TestExtractEmpty(t *testing.T) {
	e := newTestExtractor()
	for _, text := range []string{"", "   \n\t\n", "kısa\nsatır"} {
		got := e.Extract(text)
		assert.True(t, got.IsEmpty(), "text %q", text)
	}
}

func TestDefinitionMatchesPositions(t *testing.T) {
	e := newTestExtractor()
	lines := []string{
		"Kalp dört odacıklı bir organdır",
		"Homeostaz: Vücudun iç dengesini koruma mekanizmasıdır.",
		"Osmoz = Suyun yarı geçirgen zardan geçişi",
	}
	got := e.DefinitionMatches(lines, 0)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, "colon", got[0].Rule)
	assert.Equal(t, 2, got[1].Line)
	assert.Equal(t, "equals", got[1].Rule)
}
