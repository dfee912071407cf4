// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline implements the heading extraction engine: given a
// document's positioned lines it produces a title and an ordered H1/H2/H3
// heading sequence. The engine layers two signals: font-size prominence
// relative to the document's body text, and multilingual textual patterns
// (numbering, casing, chapter markers) that carry the load when font sizes
// are uniform, as they are for OCR'd scans.
package outline

import (
	"sort"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// defaultMinSizeRatio is how much larger than the body size a line must be
// to count as a heading candidate on font evidence alone.
const defaultMinSizeRatio = 1.15

// Config tunes the extraction engine.
type Config struct {
	// MinSizeRatio overrides the font-size prominence threshold.
	// Zero uses the default (1.15).
	MinSizeRatio float64
}

// candidate is a heading candidate awaiting level assignment.
type candidate struct {
	text       string
	page       int
	y          float64
	size       float64
	script     types.Script
	confidence float64
	fontSignal bool
}

// Extract produces the outline of a document. Extraction is deterministic:
// the same document always yields the same outline.
func Extract(doc *types.Document, cfg Config) types.Outline {
	minRatio := cfg.MinSizeRatio
	if minRatio <= 0 {
		minRatio = defaultMinSizeRatio
	}

	out := types.Outline{Outline: []types.Heading{}}

	lines := doc.Lines()
	if len(lines) == 0 {
		return out
	}

	stats := computeStats(lines, doc.PageCount())
	out.Script = stats.primaryScript

	if len(doc.Pages) > 0 {
		out.Title = extractTitle(doc.Pages[0].Lines, stats.repeated)
	}

	// Documents dominated by repeated short lines are forms; their
	// fields must not be read as an outline.
	if stats.uniqueRatio < 0.3 && stats.totalLines < 50 {
		return out
	}

	candidates := collectCandidates(doc, stats, minRatio)

	// Drop the title and duplicates before ranking sizes: the title is
	// usually the unique largest line and would otherwise claim rank 1,
	// demoting every real top-level heading.
	titleLower := strings.ToLower(out.Title)
	seen := make(map[string]bool)
	kept := candidates[:0]
	for _, c := range candidates {
		key := strings.ToLower(c.text)
		if key == "" || key == titleLower || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, c)
	}

	ranks := sizeRanks(kept)
	for _, c := range kept {
		out.Outline = append(out.Outline, types.Heading{
			Level:      assignLevel(c, ranks),
			Text:       c.text,
			Page:       c.page,
			Script:     c.script,
			Confidence: c.confidence,
		})
	}

	return out
}

// collectCandidates walks the document in reading order and gathers heading
// candidates: lines prominent by font size or weight, and lines matching
// the multilingual heading patterns.
func collectCandidates(doc *types.Document, stats docStats, minRatio float64) []candidate {
	var candidates []candidate

	for _, page := range doc.Pages {
		for idx, line := range page.Lines {
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}

			shortNearby := shortNeighborCount(page.Lines, idx)
			if isNoise(text, stats.repeated, shortNearby) {
				continue
			}

			script := DetectScript(text)

			size := roundSize(line.FontSize)
			fontSignal := stats.bodySize > 0 &&
				(line.FontSize >= stats.bodySize*minRatio ||
					(line.Bold && line.FontSize >= stats.bodySize))
			// Font prominence alone is not enough for a paragraph-length
			// line; the shape constraints apply either way.
			if fontSignal && !withinHeadingShape(text, script, shortNearby) {
				fontSignal = false
			}

			patternSignal := isPatternCandidate(text, script, shortNearby)
			if !fontSignal && !patternSignal {
				continue
			}

			clean := CleanHeading(text)
			if clean == "" {
				continue
			}

			candidates = append(candidates, candidate{
				text:       clean,
				page:       page.Index,
				y:          line.Y,
				size:       size,
				script:     script,
				confidence: line.Confidence,
				fontSignal: fontSignal,
			})
		}
	}

	return candidates
}

// sizeRanks maps each distinct candidate font size to its descending rank
// (largest size → 1). When fewer than two distinct sizes exist among
// font-signal candidates the document is size-flat and the map is empty,
// pushing level assignment onto textual patterns.
func sizeRanks(candidates []candidate) map[float64]int {
	distinct := make(map[float64]bool)
	for _, c := range candidates {
		if c.fontSignal {
			distinct[c.size] = true
		}
	}
	if len(distinct) < 2 {
		return map[float64]int{}
	}

	sizes := make([]float64, 0, len(distinct))
	for s := range distinct {
		sizes = append(sizes, s)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	ranks := make(map[float64]int, len(sizes))
	for i, s := range sizes {
		ranks[s] = i + 1
	}
	return ranks
}

// assignLevel picks the heading level: by font-size rank when the document
// has a usable size hierarchy, by textual pattern otherwise. Levels are
// monotonic with font-size rank within a document.
func assignLevel(c candidate, ranks map[float64]int) types.HeadingLevel {
	if rank, ok := ranks[c.size]; ok && c.fontSignal {
		return levelForRank(rank)
	}
	level, _ := patternLevel(c.text)
	return level
}

// titleBounds returns the length limits for a plausible title line.
func titleBounds(script types.Script) (minRunes, maxRunes, maxWords int) {
	if isCJK(script) {
		return 3, 80, 25
	}
	return 5, 100, 15
}

// extractTitle picks the document title from the first page: among the
// first ten plausible lines it takes the one with the largest font size,
// earliest on ties. Returns "" when no line qualifies.
func extractTitle(firstPage []types.Line, repeated map[string]bool) string {
	var best *types.Line
	checked := 0

	for i := range firstPage {
		if checked >= 10 {
			break
		}
		line := &firstPage[i]
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		checked++

		script := DetectScript(text)
		minRunes, maxRunes, maxWords := titleBounds(script)
		n := len([]rune(text))
		if n <= minRunes || n >= maxRunes {
			continue
		}
		if len(strings.Fields(text)) > maxWords {
			continue
		}
		if repeated[text] || isNoise(text, repeated, 0) {
			continue
		}

		if best == nil || line.FontSize > best.FontSize {
			best = line
		}
	}

	if best == nil {
		return ""
	}
	return CleanHeading(best.Text)
}
