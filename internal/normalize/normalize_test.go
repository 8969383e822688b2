// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "trims and drops short lines",
			text: "  Kısa  \n   Homeostaz iç dengenin korunmasıdır.  \n\n",
			want: []string{"Homeostaz iç dengenin korunmasıdır."},
		},
		{
			name: "keeps a line of exactly the minimum length",
			text: "0123456789\n012345678",
			want: []string{"0123456789"},
		},
		{
			name: "handles CRLF line endings",
			text: "Birinci uzun satır burada\r\nİkinci uzun satır burada",
			want: []string{"Birinci uzun satır burada", "İkinci uzun satır burada"},
		},
		{
			name: "drops boundary markers",
			text: "=== anatomi.pdf ===\nKalp dört odacıklıdır ve kan pompalar",
			want: []string{"Kalp dört odacıklıdır ve kan pompalar"},
		},
		{
			name: "counts characters not bytes",
			text: "çğıöşüÇĞİÖ",
			want: []string{"çğıöşüÇĞİÖ"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lines(tt.text, 10))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "keeps terminators",
			line: "Kalp bir organdır. Kan pompalar! Nasıl çalışır?",
			want: []string{"Kalp bir organdır.", "Kan pompalar!", "Nasıl çalışır?"},
		},
		{
			name: "does not split decimals",
			line: "pH değeri 7.4 civarındadır. Sonra",
			want: []string{"pH değeri 7.4 civarındadır.", "Sonra"},
		},
		{
			name: "groups repeated terminators",
			line: "Gerçekten mi?! Evet...",
			want: []string{"Gerçekten mi?!", "Evet..."},
		},
		{
			name: "no terminator",
			line: "Tek parça metin",
			want: []string{"Tek parça metin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.line))
		})
	}
}

func TestSentencesDropsShortOnes(t *testing.T) {
	text := "Kısa cümle. Bu cümle yeterince uzun bir cümledir.\nBaşka bir satırda da uzun bir cümle var."
	got := Sentences(text, 20)
	assert.Equal(t, []string{
		"Bu cümle yeterince uzun bir cümledir.",
		"Başka bir satırda da uzun bir cümle var.",
	}, got)
}

func TestTurkishCase(t *testing.T) {
	assert.Equal(t, "kalp", Lower("KALP"))
	assert.Equal(t, "ılık", Lower("ILIK"))
	assert.Equal(t, "iskelet", Lower("İSKELET"))
	assert.Equal(t, "Kalp", UpperFirst("kalp"))
	assert.Equal(t, "İskelet sistemi", UpperFirst("iskelet sistemi"))
	assert.Equal(t, "3 boyut", UpperFirst("3 boyut"))
	assert.Equal(t, "", UpperFirst(""))
}

func TestText(t *testing.T) {
	decomposed := "c\u0327"
	assert.Equal(t, "\u00e7", Text(decomposed))
	assert.Equal(t, "a\nb\nc", Text("a\r\nb\rc"))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"ne", "zaman", "önemli", "atp"}, Words("Ne zaman? ÖNEMLİ: ATP!"))
	assert.Equal(t, 4, WordCount(" bir  iki\nüç\tdört "))
}
