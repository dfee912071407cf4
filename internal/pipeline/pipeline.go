// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs outline extraction over batches of PDF files.
// Each file is processed in isolation: a corrupt PDF records a failure and
// the batch continues.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// Extractor produces a document outline from a PDF path.
type Extractor interface {
	Extract(ctx context.Context, path string) (types.Outline, error)
}

// Status is the outcome of processing one file.
type Status string

const (
	StatusExtracted Status = "extracted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns the JSON output path for a PDF under outputDir.
func OutputPath(pdfPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(outputDir, base+".json")
}

// ProcessFile extracts one PDF's outline and writes it as JSON to
// outputDir. When the output already exists and force is false, the file
// is skipped. Per-file status lines go to w.
func ProcessFile(ctx context.Context, e Extractor, pdfPath, outputDir string, force bool, w io.Writer) Status {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	outPath := OutputPath(pdfPath, outputDir)

	if !force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return StatusSkipped
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	outline, err := e.Extract(ctx, pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	if err := WriteOutline(outPath, outline); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "extracted: %s (%d headings)\n", base, len(outline.Outline))
	return StatusExtracted
}

// WriteOutline writes an outline as indented JSON.
func WriteOutline(path string, outline types.Outline) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(outline); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadOutline loads a previously written outline JSON.
func ReadOutline(path string) (types.Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Outline{}, fmt.Errorf("reading outline %s: %w", path, err)
	}
	var out types.Outline
	if err := json.Unmarshal(data, &out); err != nil {
		return types.Outline{}, fmt.Errorf("parsing outline %s: %w", path, err)
	}
	return out, nil
}

// ProcessBatch runs the files through the extractor with at most jobs
// concurrent workers, printing per-file status to w and returning a
// summary. Failures never abort the batch.
func ProcessBatch(ctx context.Context, e Extractor, files []string, outputDir string, force bool, jobs int, w io.Writer) BatchResult {
	if jobs <= 0 {
		jobs = 4
	}

	var (
		mu     sync.Mutex
		result BatchResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, path := range files {
		g.Go(func() error {
			var buf strings.Builder
			status := ProcessFile(ctx, e, path, outputDir, force, &buf)

			mu.Lock()
			defer mu.Unlock()
			io.WriteString(w, buf.String())
			switch status {
			case StatusExtracted:
				result.Extracted++
			case StatusSkipped:
				result.Skipped++
			case StatusFailed:
				result.Failed++
			}
			return nil
		})
	}
	g.Wait()

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result
}

// ScanDir returns the PDF files directly under dir, sorted by name so
// batch runs are deterministic.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
