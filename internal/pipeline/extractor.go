// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/outline-engine/internal/ocr"
	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/internal/pdftext"
	"github.com/pdiddy/outline-engine/internal/raster"
	"github.com/pdiddy/outline-engine/pkg/types"
)

const (
	defaultDPI           = 200
	defaultMinConfidence = 40
)

// OutlineExtractor is the production extraction chain: text layer first,
// then a raster/OCR fallback for pages without one.
type OutlineExtractor struct {
	// OCR recognizes rasterized pages. Nil disables the OCR fallback;
	// pages without a text layer then contribute only what MuPDF's
	// plain-text view can recover.
	OCR ocr.Engine

	// Languages are the OCR language codes, in priority order.
	Languages []string

	// DPI is the rasterization resolution (default 200).
	DPI float64

	// MinConfidence drops OCR blocks below this 0-100 confidence
	// (default 40).
	MinConfidence float64

	// Outline tunes the extraction engine.
	Outline outline.Config
}

// Extract loads the PDF at path and produces its outline. Pages without a
// text layer are rasterized and OCR'd when an engine is configured.
func (e *OutlineExtractor) Extract(ctx context.Context, path string) (types.Outline, error) {
	doc, err := e.LoadDocument(ctx, path)
	if err != nil {
		return types.Outline{}, err
	}
	return outline.Extract(doc, e.Outline), nil
}

// LoadDocument loads the PDF's full content model, running the OCR
// fallback for pages without a text layer. Callers that need the body
// text (section building, indexing) use this instead of Extract.
func (e *OutlineExtractor) LoadDocument(ctx context.Context, path string) (*types.Document, error) {
	doc, err := pdftext.Load(path)
	if err != nil {
		// The text-layer parser rejects some files MuPDF can still
		// read; fall back to a raster-only document.
		doc, err = e.rasterOnlyDocument(path)
		if err != nil {
			return nil, err
		}
	}

	if err := e.fillMissingPages(ctx, path, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// rasterOnlyDocument builds a document shell with one empty, text-layer-less
// page per PDF page, leaving all content to the OCR fallback.
func (e *OutlineExtractor) rasterOnlyDocument(path string) (*types.Document, error) {
	r, err := raster.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unreadable PDF %s: %w", path, err)
	}
	defer r.Close()

	doc := &types.Document{
		ID:   pdftext.DocumentID(path),
		Path: path,
	}
	for i := 0; i < r.PageCount(); i++ {
		doc.Pages = append(doc.Pages, types.Page{Index: i})
	}
	return doc, nil
}

// fillMissingPages routes pages without a text layer through OCR, or
// through MuPDF's plain-text view when no OCR engine is configured.
func (e *OutlineExtractor) fillMissingPages(ctx context.Context, path string, doc *types.Document) error {
	var missing []int
	for i := range doc.Pages {
		if !doc.Pages[i].HasTextLayer {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	r, err := raster.Open(path)
	if err != nil {
		// Text-layer pages already loaded still produce an outline.
		return nil
	}
	defer r.Close()

	dpi := e.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}
	minConf := e.MinConfidence
	if minConf <= 0 {
		minConf = defaultMinConfidence
	}

	for _, idx := range missing {
		if idx >= r.PageCount() {
			break
		}

		if e.OCR == nil {
			if text, err := r.PageText(idx); err == nil && text != "" {
				doc.Pages[idx].Lines = plainTextLines(text, idx)
			}
			continue
		}

		png, err := r.PagePNG(idx, dpi)
		if err != nil {
			continue // lost page, not a lost document
		}
		blocks, err := e.OCR.Recognize(ctx, png, e.Languages)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		doc.Pages[idx].Lines = ocr.BlocksToLines(blocks, idx, dpi, minConf)
	}
	return nil
}

// plainTextLines converts MuPDF plain text into sizeless lines; heading
// levels for these fall back to textual patterns.
func plainTextLines(text string, page int) []types.Line {
	var lines []types.Line
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lines = append(lines, types.Line{
			Text:       trimmed,
			Page:       page,
			Y:          -float64(i),
			Source:     types.SourceTextLayer,
			Confidence: 1.0,
		})
	}
	return lines
}
