// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext loads the embedded text layer of a PDF into the shared
// document model: positioned, styled runs assembled into baseline lines.
package pdftext

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// lineTolerance is the maximum baseline distance (in points) between runs
// that still belong to the same line.
const lineTolerance = 2.0

// Load reads the PDF at path and returns a Document with one Page per PDF
// page. Pages that yield no text runs are flagged HasTextLayer=false so the
// caller can route them through OCR. A PDF the parser cannot open at all
// returns an error; a single malformed page only loses that page.
func Load(path string) (doc *types.Document, err error) {
	// The underlying parser panics on some malformed files. Convert
	// that to an error so one bad PDF never takes down a batch.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("parsing PDF %s: %v", path, r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	doc = &types.Document{
		ID:   DocumentID(path),
		Path: path,
	}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := types.Page{Index: i - 1}

		runs := pageRuns(reader.Page(i), i-1)
		if len(runs) > 0 {
			page.HasTextLayer = true
			page.Lines = AssembleLines(runs)
		}

		doc.Pages = append(doc.Pages, page)
	}

	return doc, nil
}

// DocumentID derives a document slug from a PDF path: the base filename
// without its extension.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// pageRuns extracts the styled runs of one page. Content-stream parse
// panics are contained here so the rest of the document survives.
func pageRuns(p pdflib.Page, pageIndex int) (runs []types.TextRun) {
	defer func() {
		if recover() != nil {
			runs = nil
		}
	}()

	if p.V.IsNull() {
		return nil
	}

	for _, t := range p.Content().Text {
		if t.S == "" {
			continue
		}
		runs = append(runs, types.TextRun{
			Text:     t.S,
			Page:     pageIndex,
			X:        t.X,
			Y:        t.Y,
			W:        t.W,
			FontSize: t.FontSize,
			FontName: t.Font,
			Bold:     IsBoldFont(t.Font),
		})
	}
	return runs
}

// IsBoldFont reports whether a PostScript font name indicates a bold weight.
func IsBoldFont(name string) bool {
	n := strings.ToLower(name)
	for _, marker := range []string{"bold", "black", "heavy", "semibold", "demibold"} {
		if strings.Contains(n, marker) {
			return true
		}
	}
	return false
}

// AssembleLines groups runs of one page into baseline lines. Runs whose Y
// positions differ by at most lineTolerance share a line; within a line runs
// are ordered by X and joined, inserting a space when the horizontal gap
// between consecutive runs exceeds a quarter of the font size.
func AssembleLines(runs []types.TextRun) []types.Line {
	if len(runs) == 0 {
		return nil
	}

	// Reading order: top of the page first (descending Y), then X.
	sorted := make([]types.TextRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []types.Line
	var group []types.TextRun
	for _, r := range sorted {
		if len(group) > 0 && group[0].Y-r.Y > lineTolerance {
			if line, ok := buildLine(group); ok {
				lines = append(lines, line)
			}
			group = group[:0]
		}
		group = append(group, r)
	}
	if line, ok := buildLine(group); ok {
		lines = append(lines, line)
	}

	return lines
}

// buildLine merges one baseline group into a Line. It returns ok=false for
// groups whose assembled text is empty.
func buildLine(group []types.TextRun) (types.Line, bool) {
	if len(group) == 0 {
		return types.Line{}, false
	}

	sort.SliceStable(group, func(i, j int) bool { return group[i].X < group[j].X })

	var (
		b         strings.Builder
		sizeRunes = make(map[float64]int)
		boldRunes int
		total     int
		prev      *types.TextRun
	)
	for i := range group {
		r := &group[i]
		if prev != nil {
			gap := r.X - (prev.X + prev.W)
			threshold := prev.FontSize * 0.25
			if threshold < 1.0 {
				threshold = 1.0
			}
			if gap > threshold && !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(r.Text)

		n := len([]rune(r.Text))
		sizeRunes[roundSize(r.FontSize)] += n
		if r.Bold {
			boldRunes += n
		}
		total += n
		prev = r
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return types.Line{}, false
	}

	return types.Line{
		Text:       text,
		Page:       group[0].Page,
		Y:          group[0].Y,
		FontSize:   dominantSize(sizeRunes),
		Bold:       total > 0 && boldRunes*2 > total,
		Source:     types.SourceTextLayer,
		Confidence: 1.0,
	}, true
}

// roundSize quantizes a font size to half-point steps so near-identical
// sizes cluster together.
func roundSize(size float64) float64 {
	return float64(int(size*2+0.5)) / 2
}

// dominantSize returns the rounded size covering the most runes, preferring
// the larger size on ties.
func dominantSize(sizeRunes map[float64]int) float64 {
	var best float64
	var bestCount int
	for size, count := range sizeRunes {
		if count > bestCount || (count == bestCount && size > best) {
			best = size
			bestCount = count
		}
	}
	return best
}
