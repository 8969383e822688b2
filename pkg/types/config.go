// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExtractionConfig holds the thresholds and caps of the extraction core.
type ExtractionConfig struct {
	// MinLineLength drops shorter lines during normalization (default 10).
	MinLineLength int `json:"min_line_length" yaml:"min_line_length" mapstructure:"min_line_length" validate:"gte=1"`

	// MinSentenceLength drops shorter sentences (default 20).
	MinSentenceLength int `json:"min_sentence_length" yaml:"min_sentence_length" mapstructure:"min_sentence_length" validate:"gte=1"`

	// TermMinLength and TermMaxLength bound definition terms (3..50).
	TermMinLength int `json:"term_min_length" yaml:"term_min_length" mapstructure:"term_min_length" validate:"gte=1"`
	TermMaxLength int `json:"term_max_length" yaml:"term_max_length" mapstructure:"term_max_length" validate:"gtefield=TermMinLength"`

	// DefinitionMinLength and DefinitionMaxLength bound definitions (10..300).
	DefinitionMinLength int `json:"definition_min_length" yaml:"definition_min_length" mapstructure:"definition_min_length" validate:"gte=1"`
	DefinitionMaxLength int `json:"definition_max_length" yaml:"definition_max_length" mapstructure:"definition_max_length" validate:"gtefield=DefinitionMinLength"`

	// HeadingMaxLength is the exclusive upper length of a heading (100).
	HeadingMaxLength int `json:"heading_max_length" yaml:"heading_max_length" mapstructure:"heading_max_length" validate:"gte=1"`

	// KeyPointMinLength and KeyPointMaxLength bound key points (20..200).
	KeyPointMinLength int `json:"key_point_min_length" yaml:"key_point_min_length" mapstructure:"key_point_min_length" validate:"gte=1"`
	KeyPointMaxLength int `json:"key_point_max_length" yaml:"key_point_max_length" mapstructure:"key_point_max_length" validate:"gtefield=KeyPointMinLength"`

	// SentenceCardMinLength and SentenceCardMaxLength bound sentences that
	// become flashcards (30..200).
	SentenceCardMinLength int `json:"sentence_card_min_length" yaml:"sentence_card_min_length" mapstructure:"sentence_card_min_length" validate:"gte=1"`
	SentenceCardMaxLength int `json:"sentence_card_max_length" yaml:"sentence_card_max_length" mapstructure:"sentence_card_max_length" validate:"gtefield=SentenceCardMinLength"`

	// MaxHeadings, MaxKeyPoints, and MaxDefinitions cap the summary lists.
	MaxHeadings    int `json:"max_headings" yaml:"max_headings" mapstructure:"max_headings" validate:"gte=1"`
	MaxKeyPoints   int `json:"max_key_points" yaml:"max_key_points" mapstructure:"max_key_points" validate:"gte=1"`
	MaxDefinitions int `json:"max_definitions" yaml:"max_definitions" mapstructure:"max_definitions" validate:"gte=1"`

	// MinSufficientCards is the definition-card count below which
	// sentences are scanned for more cards (default 3).
	MinSufficientCards int `json:"min_sufficient_cards" yaml:"min_sufficient_cards" mapstructure:"min_sufficient_cards" validate:"gte=0"`

	// DefaultCap is the flashcard cap used when the caller passes 0 (25).
	DefaultCap int `json:"default_cap" yaml:"default_cap" mapstructure:"default_cap" validate:"gte=1,ltefield=MaxCap"`

	// MaxCap is the largest cap a caller may request (50).
	MaxCap int `json:"max_cap" yaml:"max_cap" mapstructure:"max_cap" validate:"gte=1"`

	// FallbackTopics is how many library topics fill an empty summary (5).
	FallbackTopics int `json:"fallback_topics" yaml:"fallback_topics" mapstructure:"fallback_topics" validate:"gte=0"`

	// MaxTermHighlights caps the detected-term list of a summary (20).
	MaxTermHighlights int `json:"max_term_highlights" yaml:"max_term_highlights" mapstructure:"max_term_highlights" validate:"gte=0"`
}

// DefaultExtractionConfig returns the stock thresholds.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		MinLineLength:         10,
		MinSentenceLength:     20,
		TermMinLength:         3,
		TermMaxLength:         50,
		DefinitionMinLength:   10,
		DefinitionMaxLength:   300,
		HeadingMaxLength:      100,
		KeyPointMinLength:     20,
		KeyPointMaxLength:     200,
		SentenceCardMinLength: 30,
		SentenceCardMaxLength: 200,
		MaxHeadings:           10,
		MaxKeyPoints:          15,
		MaxDefinitions:        10,
		MinSufficientCards:    3,
		DefaultCap:            25,
		MaxCap:                50,
		FallbackTopics:        5,
		MaxTermHighlights:     20,
	}
}

// LibraryConfig points at externally edited content files. Empty paths
// select the built-in content.
type LibraryConfig struct {
	// VocabularyPath is a YAML file replacing the built-in vocabulary.
	VocabularyPath string `json:"vocabulary_path,omitempty" yaml:"vocabulary_path,omitempty" mapstructure:"vocabulary_path" validate:"omitempty,file"`

	// FallbackPath is a YAML file replacing the built-in fallback library.
	FallbackPath string `json:"fallback_path,omitempty" yaml:"fallback_path,omitempty" mapstructure:"fallback_path" validate:"omitempty,file"`
}

// ReaderConfig holds settings for turning files into text.
type ReaderConfig struct {
	// Markitdown enables the container-based converter for office formats.
	Markitdown bool `json:"markitdown" yaml:"markitdown" mapstructure:"markitdown"`

	// Image is the markitdown container image (default "markitdown:latest").
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Runtime selects docker, podman, or auto detection.
	Runtime string `json:"runtime" yaml:"runtime" mapstructure:"runtime" validate:"oneof=auto docker podman"`

	// Timeout bounds a single container conversion.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// MaxFileSize rejects larger files as unsupported (bytes, 0 = no limit).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size" mapstructure:"max_file_size" validate:"gte=0"`

	// MinSalvageLetters is the letter count below which salvaged text is
	// discarded (default 40).
	MinSalvageLetters int `json:"min_salvage_letters" yaml:"min_salvage_letters" mapstructure:"min_salvage_letters" validate:"gte=0"`
}

// StoreConfig holds settings for the deck database.
type StoreConfig struct {
	// Dir contains the SQLite database and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir" validate:"required"`

	// MaxResults is the default search result limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"gte=1"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Mode selects development (console) or production (JSON) encoding.
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode" validate:"oneof=development production"`

	// Level is the minimum level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`

	// File, when set, also writes JSON logs to a rotated file.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// Config groups all settings of the study engine.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Library    LibraryConfig    `json:"library" yaml:"library" mapstructure:"library"`
	Reader     ReaderConfig     `json:"reader" yaml:"reader" mapstructure:"reader"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultReaderConfig returns the stock reader settings. The container
// converter is off unless enabled.
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Image:             "markitdown:latest",
		Runtime:           "auto",
		Timeout:           2 * time.Minute,
		MaxFileSize:       50 << 20,
		MinSalvageLetters: 40,
	}
}
