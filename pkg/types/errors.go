// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

var (
	// ErrPrecondition reports a caller contract violation, such as a
	// negative flashcard cap. It never signals missing content.
	ErrPrecondition = errors.New("precondition violated")

	// ErrUnsupported reports that a document yielded no usable text.
	ErrUnsupported = errors.New("no usable text")

	// ErrNotFound reports a missing deck, subject, or course.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig reports configuration that failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
