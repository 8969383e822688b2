// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/study-engine/internal/container"
)

// DefaultImage is the markitdown container image used when none is set.
const DefaultImage = "markitdown:latest"

// MarkitdownConverter converts office documents by piping them through the
// markitdown container image. It depends on a container.Runtime (docker or
// podman) injected at construction time.
type MarkitdownConverter struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownConverter creates a converter that uses the given container
// runtime to run image. It verifies that the image exists locally before
// returning.
func NewMarkitdownConverter(ctx context.Context, rt container.Runtime, image string) (*MarkitdownConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownConverter{runtime: rt, image: image}, nil
}

// Convert pipes the document through the markitdown container and returns
// the resulting Markdown text.
func (m *MarkitdownConverter) Convert(ctx context.Context, name string, r io.Reader) (string, error) {
	var out bytes.Buffer
	if err := m.runtime.Run(ctx, m.image, r, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", name, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", name)
	}

	return out.String(), nil
}
