// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Difficulty is the self-assessed recall difficulty of a flashcard.
// The zero value means the card has not been rated yet.
type Difficulty string

const (
	DifficultyUnset  Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps a user-supplied level to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	case "e":
		return DifficultyEasy, nil
	case "m":
		return DifficultyMedium, nil
	case "h":
		return DifficultyHard, nil
	}
	return DifficultyUnset, fmt.Errorf("%w: unknown difficulty %q (want easy, medium, or hard)", ErrPrecondition, s)
}

// MarshalJSON writes an unset difficulty as null.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	if d == DifficultyUnset {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON accepts null as an unset difficulty.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DifficultyUnset
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = DifficultyUnset
		return nil
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Card categories assigned by the synthesizer. Fallback decks carry
// their own subject-specific categories.
const (
	CategoryDefinition = "Definition"
	CategoryGeneral    = "General"
)

// Flashcard is a single question/answer study card.
type Flashcard struct {
	// ID is the 1-based position of the card in its deck.
	ID int `json:"id" yaml:"id"`

	// Question is the prompt shown on the front of the card.
	Question string `json:"question" yaml:"question"`

	// Answer is the text shown on the back of the card.
	Answer string `json:"answer" yaml:"answer"`

	// Category labels where the card came from (Definition, General, or a
	// subject-specific label for fallback cards).
	Category string `json:"category" yaml:"category"`

	// Difficulty is unset on freshly synthesized cards.
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty,omitempty"`

	// Studied is false on freshly synthesized cards.
	Studied bool `json:"studied" yaml:"studied"`
}

// Key returns the (question, answer) pair that identifies duplicate cards.
func (f Flashcard) Key() [2]string {
	return [2]string{f.Question, f.Answer}
}

// CardProgress is the study state of one card, kept apart from the card.
type CardProgress struct {
	// Difficulty is the last rating given to the card.
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty,omitempty"`

	// Studied reports whether the card has been rated at least once.
	Studied bool `json:"studied" yaml:"studied"`
}

// Progress maps card IDs to their study state.
type Progress map[int]CardProgress

// Deck is a persisted set of flashcards generated from one input.
type Deck struct {
	// ID is a ULID assigned when the deck is saved.
	ID string `json:"id" yaml:"id"`

	// Subject is the classified subject of the source text.
	Subject string `json:"subject" yaml:"subject"`

	// Sources lists the names of the documents the deck came from.
	Sources []string `json:"sources" yaml:"sources"`

	// Fallback is true when the cards came from the fallback library.
	Fallback bool `json:"fallback" yaml:"fallback"`

	// CreatedAt is when the deck was saved.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Cards holds the deck in id order.
	Cards []Flashcard `json:"cards" yaml:"cards"`
}
