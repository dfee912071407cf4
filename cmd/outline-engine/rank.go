// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/ocr"
	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/internal/pipeline"
	"github.com/pdiddy/outline-engine/internal/rank"
	"github.com/pdiddy/outline-engine/pkg/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank extracted sections against a persona/job description",
	Long: `Rank extracts sections (heading plus following body text) from every
PDF in the input directory and scores them against a persona and the job
to be done, producing a single ranked JSON report.

The persona and task come from a YAML job file (--job) or directly from
the --persona and --task flags.`,
	RunE: runRank,
}

func runRank(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	jobFile, _ := cmd.Flags().GetString("job")
	persona, _ := cmd.Flags().GetString("persona")
	task, _ := cmd.Flags().GetString("task")
	topK, _ := cmd.Flags().GetInt("top")
	outPath, _ := cmd.Flags().GetString("output")
	useOCR, _ := cmd.Flags().GetBool("ocr")
	langs, _ := cmd.Flags().GetStringSlice("ocr-langs")

	job := rank.Job{Persona: persona, Task: task}
	if jobFile != "" {
		loaded, err := rank.LoadJob(jobFile)
		if err != nil {
			return err
		}
		job = loaded
	}
	if job.IsEmpty() {
		return fmt.Errorf("job is empty: provide --job, or --persona and --task")
	}

	files, err := pipeline.ScanDir(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", inputDir)
	}

	ctx := context.Background()
	extractor := &pipeline.OutlineExtractor{Languages: langs}
	if useOCR {
		extractor.OCR = ocr.NewTesseractEngine()
	}

	var sections []types.Section
	for _, path := range files {
		doc, err := extractor.LoadDocument(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
			continue
		}
		out := outline.Extract(doc, extractor.Outline)
		sections = append(sections, rank.BuildSections(doc, out)...)
	}
	if len(sections) == 0 {
		return fmt.Errorf("no sections extracted from %s", inputDir)
	}

	report, err := rank.Rank(ctx, sections, job, rank.Config{TopK: topK})
	if err != nil {
		return err
	}

	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

func init() {
	rankCmd.Flags().String("input-dir", "input", "directory scanned for PDF files")
	rankCmd.Flags().String("job", "", "YAML file with persona and job_to_be_done")
	rankCmd.Flags().String("persona", "", "reader description")
	rankCmd.Flags().String("task", "", "job to be done")
	rankCmd.Flags().Int("top", 15, "number of top sections reported")
	rankCmd.Flags().String("output", "", "report path (default: stdout)")
	rankCmd.Flags().Bool("ocr", false, "OCR pages without a text layer (requires tesseract)")
	rankCmd.Flags().StringSlice("ocr-langs", []string{"eng"}, "tesseract language codes")

	rootCmd.AddCommand(rankCmd)
}
