// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package study runs an interactive flashcard session over a deck. The deck
// is never modified: the session keeps a presentation order and an id-keyed
// progress map alongside it.
package study

import (
	"fmt"
	"math/rand/v2"

	"github.com/pdiddy/study-engine/pkg/types"
)

// Stats counts the cards of a session by study state.
type Stats struct {
	Total   int `json:"total"`
	Studied int `json:"studied"`
	Easy    int `json:"easy"`
	Medium  int `json:"medium"`
	Hard    int `json:"hard"`
}

// Session is the state of one study run. It is not safe for concurrent
// use.
type Session struct {
	cards     []types.Flashcard
	order     []int
	pos       int
	flipped   bool
	studyMode bool
	progress  types.Progress
}

// New starts a session over cards with previously saved progress. Progress
// entries for IDs not in the deck are dropped.
func New(cards []types.Flashcard, saved types.Progress) *Session {
	s := &Session{
		cards:    append([]types.Flashcard(nil), cards...),
		order:    make([]int, len(cards)),
		progress: make(types.Progress, len(saved)),
	}
	for i := range s.order {
		s.order[i] = i
	}
	for _, c := range s.cards {
		if p, ok := saved[c.ID]; ok {
			s.progress[c.ID] = p
		}
	}
	return s
}

// Len returns the number of cards.
func (s *Session) Len() int { return len(s.cards) }

// Position returns the 0-based index of the current card in presentation
// order.
func (s *Session) Position() int { return s.pos }

// Current returns the current card with its progress applied. It returns
// false for an empty deck.
func (s *Session) Current() (types.Flashcard, bool) {
	if len(s.cards) == 0 {
		return types.Flashcard{}, false
	}
	return s.withProgress(s.cards[s.order[s.pos]]), true
}

func (s *Session) withProgress(c types.Flashcard) types.Flashcard {
	p := s.progress[c.ID]
	c.Difficulty = p.Difficulty
	c.Studied = p.Studied
	return c
}

// Flipped reports whether the answer side is showing.
func (s *Session) Flipped() bool { return s.flipped }

// Flip turns the current card over.
func (s *Session) Flip() { s.flipped = !s.flipped }

// Next moves to the following card, showing its question. It returns false
// at the last card.
func (s *Session) Next() bool {
	if s.pos >= len(s.cards)-1 {
		return false
	}
	s.pos++
	s.flipped = false
	return true
}

// Previous moves to the preceding card, showing its question. It returns
// false at the first card.
func (s *Session) Previous() bool {
	if s.pos == 0 {
		return false
	}
	s.pos--
	s.flipped = false
	return true
}

// Shuffle reorders the presentation with a Fisher-Yates shuffle driven by
// rng and returns to the first card. A nil rng uses the global source.
func (s *Session) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) { s.order[i], s.order[j] = s.order[j], s.order[i] }
	if rng != nil {
		rng.Shuffle(len(s.order), swap)
	} else {
		rand.Shuffle(len(s.order), swap)
	}
	s.pos = 0
	s.flipped = false
}

// StudyMode reports whether cards may be rated.
func (s *Session) StudyMode() bool { return s.studyMode }

// ToggleStudyMode switches rating on or off and returns the new mode.
func (s *Session) ToggleStudyMode() bool {
	s.studyMode = !s.studyMode
	return s.studyMode
}

// Mark rates the current card and marks it studied. Rating needs study mode
// and the answer showing. After rating, the session advances; complete is
// true when the rated card was the last one.
func (s *Session) Mark(d types.Difficulty) (complete bool, err error) {
	switch {
	case len(s.cards) == 0:
		return false, fmt.Errorf("%w: deck is empty", types.ErrPrecondition)
	case d == types.DifficultyUnset:
		return false, fmt.Errorf("%w: difficulty is required", types.ErrPrecondition)
	case !s.studyMode:
		return false, fmt.Errorf("%w: study mode is off", types.ErrPrecondition)
	case !s.flipped:
		return false, fmt.Errorf("%w: answer has not been shown", types.ErrPrecondition)
	}

	id := s.cards[s.order[s.pos]].ID
	s.progress[id] = types.CardProgress{Difficulty: d, Studied: true}
	return !s.Next(), nil
}

// Reset clears all progress and returns to the first card.
func (s *Session) Reset() {
	s.progress = make(types.Progress)
	s.pos = 0
	s.flipped = false
}

// Stats counts cards by study state.
func (s *Session) Stats() Stats {
	st := Stats{Total: len(s.cards)}
	for _, c := range s.cards {
		p := s.progress[c.ID]
		if p.Studied {
			st.Studied++
		}
		switch p.Difficulty {
		case types.DifficultyEasy:
			st.Easy++
		case types.DifficultyMedium:
			st.Medium++
		case types.DifficultyHard:
			st.Hard++
		}
	}
	return st
}

// Progress returns a copy of the progress map for persistence.
func (s *Session) Progress() types.Progress {
	out := make(types.Progress, len(s.progress))
	for id, p := range s.progress {
		out[id] = p
	}
	return out
}

// Cards returns the deck in id order with progress applied, as exported.
func (s *Session) Cards() []types.Flashcard {
	out := make([]types.Flashcard, len(s.cards))
	for i, c := range s.cards {
		out[i] = s.withProgress(c)
	}
	return out
}
