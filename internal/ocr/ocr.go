// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr recognizes text on rasterized PDF pages. The production
// engine wraps tesseract; extraction code depends only on the Engine
// interface so tests can substitute a fake.
package ocr

import (
	"context"
	"sort"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// Block is one recognized text line with its pixel bounding box.
type Block struct {
	// Text is the recognized text.
	Text string

	// X, Y, W, H is the bounding box in image pixels. Y grows downward.
	X, Y, W, H int

	// Confidence is the recognition confidence on tesseract's 0-100 scale.
	Confidence float64
}

// Engine recognizes text blocks on a page image.
type Engine interface {
	// Recognize runs OCR over a PNG-encoded page image and returns the
	// detected text-line blocks.
	Recognize(ctx context.Context, png []byte, languages []string) ([]Block, error)
}

// BlocksToLines converts recognized blocks into document lines for the
// given zero-based page. The block height, scaled from pixels at dpi back
// to points, stands in for the font size. Blocks below minConfidence are
// dropped.
func BlocksToLines(blocks []Block, page int, dpi, minConfidence float64) []types.Line {
	if dpi <= 0 {
		dpi = 72
	}

	sorted := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if strings.TrimSpace(b.Text) == "" || b.Confidence < minConfidence {
			continue
		}
		sorted = append(sorted, b)
	}
	// Reading order: top of the image first, then left to right.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	lines := make([]types.Line, 0, len(sorted))
	for _, b := range sorted {
		lines = append(lines, types.Line{
			Text: strings.TrimSpace(b.Text),
			Page: page,
			// Image Y grows downward; negate so larger Y means
			// higher on the page, matching text-layer lines.
			Y:          -float64(b.Y),
			FontSize:   float64(b.H) * 72.0 / dpi,
			Source:     types.SourceOCR,
			Confidence: b.Confidence / 100.0,
		})
	}
	return lines
}
