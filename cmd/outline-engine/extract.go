// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/ocr"
	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdfs...]",
	Short: "Extract outlines from PDF files",
	Long: `Extract produces one JSON file per input PDF containing the document
title and the ordered H1/H2/H3 heading sequence with page indices.

Pages without a text layer are rasterized and OCR'd when tesseract is
available. A corrupt file is reported and skipped; the rest of the batch
still runs.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	jobs, _ := cmd.Flags().GetInt("jobs")
	force, _ := cmd.Flags().GetBool("force")
	useOCR, _ := cmd.Flags().GetBool("ocr")
	langs, _ := cmd.Flags().GetStringSlice("ocr-langs")
	dpi, _ := cmd.Flags().GetFloat64("dpi")
	minRatio, _ := cmd.Flags().GetFloat64("min-size-ratio")

	files := args
	if len(files) == 0 {
		var err error
		files, err = pipeline.ScanDir(inputDir)
		if err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", inputDir)
	}

	extractor := &pipeline.OutlineExtractor{
		Languages: langs,
		DPI:       dpi,
		Outline:   outline.Config{MinSizeRatio: minRatio},
	}
	if useOCR {
		extractor.OCR = ocr.NewTesseractEngine()
	}

	result := pipeline.ProcessBatch(context.Background(), extractor, files, outputDir, force, jobs, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed extraction", result.Failed)
	}
	return nil
}

func init() {
	extractCmd.Flags().String("input-dir", "input", "directory scanned for PDF files when no arguments are given")
	extractCmd.Flags().String("output-dir", "output", "directory JSON outlines are written to")
	extractCmd.Flags().Int("jobs", 4, "number of files processed concurrently")
	extractCmd.Flags().Bool("force", false, "re-extract files whose output already exists")
	extractCmd.Flags().Bool("ocr", false, "OCR pages without a text layer (requires tesseract)")
	extractCmd.Flags().StringSlice("ocr-langs", []string{"eng"}, "tesseract language codes, in priority order")
	extractCmd.Flags().Float64("dpi", 200, "rasterization resolution for OCR")
	extractCmd.Flags().Float64("min-size-ratio", 0, "font-size prominence threshold over body text (0 = default)")

	rootCmd.AddCommand(extractCmd)
}
