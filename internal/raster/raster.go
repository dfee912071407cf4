// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster renders PDF pages to images and provides a secondary plain
// text source, both backed by MuPDF.
package raster

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Renderer wraps an open MuPDF document.
type Renderer struct {
	doc  *fitz.Document
	path string
}

// Open opens the PDF at path for rendering.
func Open(path string) (*Renderer, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s for rendering: %w", path, err)
	}
	return &Renderer{doc: doc, path: path}, nil
}

// Close releases the underlying document.
func (r *Renderer) Close() error {
	return r.doc.Close()
}

// PageCount returns the number of pages.
func (r *Renderer) PageCount() int {
	return r.doc.NumPage()
}

// PagePNG renders the zero-based page to a PNG at the given DPI.
func (r *Renderer) PagePNG(page int, dpi float64) ([]byte, error) {
	png, err := r.doc.ImagePNG(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d of %s: %w", page, r.path, err)
	}
	return png, nil
}

// PageText returns the plain text of the zero-based page as MuPDF sees it.
// Used to double-check whether a page really has no text layer before
// paying for OCR.
func (r *Renderer) PageText(page int) (string, error) {
	text, err := r.doc.Text(page)
	if err != nil {
		return "", fmt.Errorf("extracting text from page %d of %s: %w", page, r.path, err)
	}
	return strings.TrimSpace(text), nil
}
