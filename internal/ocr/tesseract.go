// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes text with a local tesseract installation via
// gosseract. It is safe for sequential use; one client is created per page
// because gosseract clients are not goroutine-safe.
type TesseractEngine struct{}

// NewTesseractEngine returns a tesseract-backed Engine.
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{}
}

// Recognize runs tesseract over the PNG image and returns text-line blocks.
func (e *TesseractEngine) Recognize(ctx context.Context, png []byte, languages []string) ([]Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			return nil, fmt.Errorf("setting OCR languages %v: %w", languages, err)
		}
	}

	if err := client.SetImageFromBytes(png); err != nil {
		return nil, fmt.Errorf("loading page image for OCR: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognizing text lines: %w", err)
	}

	blocks := make([]Block, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		blocks = append(blocks, Block{
			Text:       text,
			X:          box.Box.Min.X,
			Y:          box.Box.Min.Y,
			W:          box.Box.Dx(),
			H:          box.Box.Dy(),
			Confidence: box.Confidence,
		})
	}
	return blocks, nil
}
