// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for outline-engine: documents,
// text runs, outlines, sections, and per-stage configuration.
package types

// Script identifies the dominant writing system of a piece of text.
type Script string

const (
	ScriptLatin      Script = "latin"
	ScriptChinese    Script = "chinese"
	ScriptJapanese   Script = "japanese"
	ScriptKorean     Script = "korean"
	ScriptDevanagari Script = "devanagari"
	ScriptCyrillic   Script = "cyrillic"
)

// LineSource records where a line's text came from.
type LineSource string

const (
	// SourceTextLayer marks lines assembled from the PDF's embedded text runs.
	SourceTextLayer LineSource = "text"
	// SourceOCR marks lines recognized from a rasterized page image.
	SourceOCR LineSource = "ocr"
)

// TextRun is a positioned piece of styled text from a PDF content stream.
// OCR text blocks are converted into TextRuns with the block height standing
// in for the font size.
type TextRun struct {
	// Text is the run content. Text-layer runs are often single glyphs.
	Text string `json:"text" yaml:"text"`

	// Page is the zero-based page index.
	Page int `json:"page" yaml:"page"`

	// X and Y locate the run baseline origin in page coordinates.
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`

	// W is the advance width of the run.
	W float64 `json:"w" yaml:"w"`

	// FontSize is the nominal size in points (or block height for OCR runs).
	FontSize float64 `json:"font_size" yaml:"font_size"`

	// FontName is the PostScript font name, empty for OCR runs.
	FontName string `json:"font_name,omitempty" yaml:"font_name,omitempty"`

	// Bold reports whether the font name indicates a bold weight.
	Bold bool `json:"bold,omitempty" yaml:"bold,omitempty"`
}

// Line is a baseline-grouped sequence of runs, the unit the outline engine
// reasons about.
type Line struct {
	// Text is the assembled line content.
	Text string `json:"text" yaml:"text"`

	// Page is the zero-based page index.
	Page int `json:"page" yaml:"page"`

	// Y is the baseline position. Larger Y is higher on the page, so
	// reading order within a page is descending Y.
	Y float64 `json:"y" yaml:"y"`

	// FontSize is the dominant size of the line's runs.
	FontSize float64 `json:"font_size" yaml:"font_size"`

	// Bold reports whether the majority of the line's text is bold.
	Bold bool `json:"bold,omitempty" yaml:"bold,omitempty"`

	// Source records whether the line came from the text layer or OCR.
	Source LineSource `json:"source" yaml:"source"`

	// Confidence is 1.0 for text-layer lines, the scaled recognition
	// confidence (0..1) for OCR lines.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Page holds the content of one document page.
type Page struct {
	// Index is the zero-based page index.
	Index int `json:"index" yaml:"index"`

	// Width and Height are the page dimensions in points, when known.
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	// Lines are the page's lines in reading order.
	Lines []Line `json:"lines" yaml:"lines"`

	// HasTextLayer reports whether the page carried extractable text runs.
	// Pages without a text layer are candidates for OCR.
	HasTextLayer bool `json:"has_text_layer" yaml:"has_text_layer"`
}

// Document is one PDF's extracted content: an ordered set of pages.
type Document struct {
	// ID is a slug derived from the source filename (e.g. "report-2024").
	ID string `json:"id" yaml:"id"`

	// Path is the source PDF path.
	Path string `json:"path" yaml:"path"`

	// Pages holds the page contents in order.
	Pages []Page `json:"pages" yaml:"pages"`
}

// Lines returns all lines of the document in (page, reading-order) sequence.
func (d *Document) Lines() []Line {
	var lines []Line
	for _, p := range d.Pages {
		lines = append(lines, p.Lines...)
	}
	return lines
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}
