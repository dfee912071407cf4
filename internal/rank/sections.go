// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"path/filepath"
	"strings"

	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// BuildSections pairs each outline heading with the body text that follows
// it, up to the next heading. A document with no headings yields a single
// untitled section holding all of its text, so heading-less documents still
// participate in ranking.
func BuildSections(doc *types.Document, out types.Outline) []types.Section {
	lines := doc.Lines()
	docName := filepath.Base(doc.Path)

	if len(out.Outline) == 0 {
		body := joinLines(lines, 0, len(lines))
		if body == "" {
			return nil
		}
		heading := out.Title
		if heading == "" {
			heading = docName
		}
		return []types.Section{{
			DocumentID: doc.ID,
			Document:   docName,
			Level:      types.LevelH1,
			Heading:    heading,
			Page:       0,
			Body:       body,
		}}
	}

	// Locate each heading's line position in reading order. Headings
	// whose line cannot be found anymore (cleanup changed the text)
	// fall back to the start of their page.
	positions := make([]int, len(out.Outline))
	next := 0
	for i, h := range out.Outline {
		positions[i] = pageStart(lines, h.Page)
		for j := next; j < len(lines); j++ {
			if lines[j].Page == h.Page && outline.CleanHeading(lines[j].Text) == h.Text {
				positions[i] = j
				next = j + 1
				break
			}
		}
	}

	sections := make([]types.Section, 0, len(out.Outline))
	for i, h := range out.Outline {
		start := positions[i] + 1
		end := len(lines)
		if i+1 < len(out.Outline) {
			end = positions[i+1]
		}
		sections = append(sections, types.Section{
			DocumentID: doc.ID,
			Document:   docName,
			Level:      h.Level,
			Heading:    h.Text,
			Page:       h.Page,
			Body:       joinLines(lines, start, end),
		})
	}
	return sections
}

// pageStart returns the index of the first line on the given page, or the
// end of the slice when the page has no lines.
func pageStart(lines []types.Line, page int) int {
	for i, l := range lines {
		if l.Page >= page {
			return i
		}
	}
	return len(lines)
}

func joinLines(lines []types.Line, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	var parts []string
	for _, l := range lines[start:end] {
		if t := strings.TrimSpace(l.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
