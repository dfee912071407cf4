// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// docStats holds document-wide measurements the extraction pass needs.
type docStats struct {
	// bodySize is the dominant (body text) font size, by rune count.
	bodySize float64

	// repeated marks lines that recur on enough pages to be running
	// headers or footers.
	repeated map[string]bool

	// uniqueRatio is distinct lines over total lines; very low values
	// indicate a form.
	uniqueRatio float64

	// totalLines counts non-empty lines across the document.
	totalLines int

	// primaryScript is detected from the leading lines of the document.
	primaryScript types.Script
}

// computeStats walks the document once and derives the measurements used
// by candidate selection and the form short-circuit.
func computeStats(lines []types.Line, pageCount int) docStats {
	stats := docStats{repeated: make(map[string]bool)}

	sizeRunes := make(map[float64]int)
	lineCounts := make(map[string]int)
	var sample strings.Builder

	for i, l := range lines {
		text := strings.TrimSpace(l.Text)
		if text == "" {
			continue
		}
		stats.totalLines++
		lineCounts[text]++
		sizeRunes[roundSize(l.FontSize)] += len([]rune(text))
		if i < 50 {
			sample.WriteString(text)
			sample.WriteByte(' ')
		}
	}

	if stats.totalLines == 0 {
		stats.primaryScript = types.ScriptLatin
		return stats
	}

	// Headers and footers repeat on a third of the pages or more.
	repeatedThreshold := pageCount / 3
	if repeatedThreshold < 2 {
		repeatedThreshold = 2
	}
	for text, count := range lineCounts {
		if count >= repeatedThreshold {
			stats.repeated[text] = true
		}
	}

	stats.uniqueRatio = float64(len(lineCounts)) / float64(stats.totalLines)
	stats.bodySize = dominantBodySize(sizeRunes)
	stats.primaryScript = DetectScript(sample.String())
	return stats
}

// dominantBodySize picks the font size carrying the most text. Ties break
// toward the smaller size so headings never masquerade as body text.
func dominantBodySize(sizeRunes map[float64]int) float64 {
	var best float64
	bestCount := -1
	for size, count := range sizeRunes {
		if count > bestCount || (count == bestCount && size < best) {
			best = size
			bestCount = count
		}
	}
	return best
}

// roundSize quantizes a font size to half-point steps.
func roundSize(size float64) float64 {
	return float64(int(size*2+0.5)) / 2
}

// shortNeighborCount counts lines within three positions of idx on the
// same page that have at most six words. Dense clusters of short lines
// mean forms or address blocks, not headings.
func shortNeighborCount(lines []types.Line, idx int) int {
	count := 0
	start := idx - 3
	if start < 0 {
		start = 0
	}
	end := idx + 4
	if end > len(lines) {
		end = len(lines)
	}
	for i := start; i < end; i++ {
		if i == idx {
			continue
		}
		text := strings.TrimSpace(lines[i].Text)
		if text == "" {
			continue
		}
		if len(strings.Fields(text)) <= 6 {
			count++
		}
	}
	return count
}
