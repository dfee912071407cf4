// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// HeadingLevel is the prominence rank of a heading, H1 most prominent.
type HeadingLevel string

const (
	LevelH1 HeadingLevel = "H1"
	LevelH2 HeadingLevel = "H2"
	LevelH3 HeadingLevel = "H3"
)

// Heading is one detected heading.
type Heading struct {
	// Level is H1, H2, or H3.
	Level HeadingLevel `json:"level" yaml:"level"`

	// Text is the cleaned heading text.
	Text string `json:"text" yaml:"text"`

	// Page is the zero-based page index the heading appears on.
	Page int `json:"page" yaml:"page"`

	// Script is the dominant writing system of the heading text.
	// Internal; not part of the per-document JSON output.
	Script Script `json:"-" yaml:"script,omitempty"`

	// Confidence is the extraction confidence: 1.0 for text-layer
	// headings, the OCR confidence for recognized ones. Internal.
	Confidence float64 `json:"-" yaml:"confidence,omitempty"`
}

// Outline is a document title plus the ordered heading sequence.
// Headings are ordered by (page index, vertical position) descending-Y,
// i.e. top of each page first.
type Outline struct {
	// Title is the document title, empty when none was found.
	Title string `json:"title" yaml:"title"`

	// Outline is the ordered heading sequence. Marshals as an empty
	// array rather than null so consumers always see a list.
	Outline []Heading `json:"outline" yaml:"outline"`

	// Script is the document's primary script. Internal.
	Script Script `json:"-" yaml:"script,omitempty"`
}

// Section is a heading together with the body text that follows it, up to
// the next heading. Sections feed the index and the persona ranker.
type Section struct {
	// DocumentID identifies the source document.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Document is the source PDF filename.
	Document string `json:"document" yaml:"document"`

	// Level is the heading level of the section heading.
	Level HeadingLevel `json:"level" yaml:"level"`

	// Heading is the section heading text.
	Heading string `json:"heading" yaml:"heading"`

	// Page is the zero-based page index of the section heading.
	Page int `json:"page" yaml:"page"`

	// Body is the text between this heading and the next.
	Body string `json:"body" yaml:"body"`
}
