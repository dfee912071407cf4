// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/index"
	"github.com/pdiddy/outline-engine/internal/ocr"
	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/internal/pipeline"
	"github.com/pdiddy/outline-engine/internal/rank"
	"github.com/pdiddy/outline-engine/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build a searchable section index from a directory of PDFs",
	Long: `Index extracts sections from every PDF in the input directory and
ingests them into a SQLite database with FTS5 full-text search. Files
unchanged since the previous run are skipped.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	cfg := indexConfig(cmd)
	useOCR, _ := cmd.Flags().GetBool("ocr")

	files, err := pipeline.ScanDir(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", inputDir)
	}

	store, err := index.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	extractor := &pipeline.OutlineExtractor{}
	if useOCR {
		extractor.OCR = ocr.NewTesseractEngine()
	}

	var indexed, skipped, failed int
	for _, path := range files {
		docID := filepath.Base(path)
		docID = docID[:len(docID)-len(filepath.Ext(docID))]

		modTime := ""
		if info, err := os.Stat(path); err == nil {
			modTime = info.ModTime().UTC().Format(time.RFC3339Nano)
		}
		if store.Unchanged(ctx, docID, modTime) {
			fmt.Fprintf(os.Stdout, "skipped %s\n", docID)
			skipped++
			continue
		}

		doc, err := extractor.LoadDocument(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed  %s: %v\n", docID, err)
			failed++
			continue
		}
		out := outline.Extract(doc, extractor.Outline)
		sections := rank.BuildSections(doc, out)

		rec := index.DocumentRecord{
			ID:      doc.ID,
			Title:   out.Title,
			Path:    path,
			Pages:   doc.PageCount(),
			Script:  out.Script,
			ModTime: modTime,
		}
		if err := store.IngestDocument(ctx, rec, sections); err != nil {
			fmt.Fprintf(os.Stdout, "failed  %s: %v\n", docID, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "indexed %s (%d sections)\n", docID, len(sections))
		indexed++
	}

	fmt.Fprintf(os.Stdout, "\nindexed: %d, skipped: %d, failed: %d\n", indexed, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", failed)
	}
	return nil
}

func indexConfig(cmd *cobra.Command) types.IndexConfig {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = "index"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.IndexConfig{IndexDir: indexDir, MaxResults: maxResults}
}

func init() {
	indexCmd.Flags().String("input-dir", "input", "directory scanned for PDF files")
	indexCmd.Flags().String("index-dir", "index", "directory containing outline.db")
	indexCmd.Flags().Int("max-results", 20, "default maximum number of query results")
	indexCmd.Flags().Bool("ocr", false, "OCR pages without a text layer (requires tesseract)")

	rootCmd.AddCommand(indexCmd)
}
