// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores extracted sections against a persona/job description
// and produces the ranked report. Scoring runs through a throwaway
// in-memory FTS5 index: the persona and task are tokenized into an OR query
// and sections are ordered by bm25 relevance, with deterministic
// tie-breaking so the same inputs always produce the same report.
package rank

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/outline-engine/internal/index"
	"github.com/pdiddy/outline-engine/pkg/types"
)

const (
	defaultTopK        = 15
	defaultRefineChars = 500
)

// RankedSection is one section with its relevance placement.
type RankedSection struct {
	Document       string  `json:"document" yaml:"document"`
	SectionTitle   string  `json:"section_title" yaml:"section_title"`
	ImportanceRank int     `json:"importance_rank" yaml:"importance_rank"`
	PageNumber     int     `json:"page_number" yaml:"page_number"`
	Score          float64 `json:"-" yaml:"-"`
	body           string
}

// Subsection is the refined-text analysis of a top-ranked section.
type Subsection struct {
	Document    string `json:"document" yaml:"document"`
	RefinedText string `json:"refined_text" yaml:"refined_text"`
	PageNumber  int    `json:"page_number" yaml:"page_number"`
}

// Metadata describes one ranking run.
type Metadata struct {
	InputDocuments      []string `json:"input_documents" yaml:"input_documents"`
	Persona             string   `json:"persona" yaml:"persona"`
	JobToBeDone         string   `json:"job_to_be_done" yaml:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp" yaml:"processing_timestamp"`
	RunID               string   `json:"run_id" yaml:"run_id"`
}

// Report is the ranked output for one persona/job over a document batch.
type Report struct {
	Metadata           Metadata        `json:"metadata" yaml:"metadata"`
	ExtractedSections  []RankedSection `json:"extracted_sections" yaml:"extracted_sections"`
	SubsectionAnalysis []Subsection    `json:"subsection_analysis" yaml:"subsection_analysis"`
}

// Config tunes ranking.
type Config struct {
	// TopK is the number of sections reported (default 15).
	TopK int

	// RefineChars caps the refined-text excerpt length (default 500).
	RefineChars int
}

// Rank scores the sections against the job and returns the report.
func Rank(ctx context.Context, sections []types.Section, job Job, cfg Config) (Report, error) {
	if job.IsEmpty() {
		return Report{}, fmt.Errorf("job is empty: provide a persona or a task")
	}
	if len(sections) == 0 {
		return Report{}, fmt.Errorf("no sections to rank")
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	refineChars := cfg.RefineChars
	if refineChars <= 0 {
		refineChars = defaultRefineChars
	}

	scores, err := relevanceScores(ctx, sections, job)
	if err != nil {
		return Report{}, err
	}

	ranked := make([]RankedSection, 0, len(sections))
	for i, sec := range sections {
		ranked = append(ranked, RankedSection{
			Document:     sec.Document,
			SectionTitle: sec.Heading,
			PageNumber:   sec.Page,
			Score:        scores[i],
			body:         sec.Body,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Document != ranked[j].Document {
			return ranked[i].Document < ranked[j].Document
		}
		if ranked[i].PageNumber != ranked[j].PageNumber {
			return ranked[i].PageNumber < ranked[j].PageNumber
		}
		return ranked[i].SectionTitle < ranked[j].SectionTitle
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	for i := range ranked {
		ranked[i].ImportanceRank = i + 1
	}

	subsections := make([]Subsection, 0, len(ranked))
	for _, r := range ranked {
		text := refineText(r.body, refineChars)
		if text == "" {
			text = r.SectionTitle
		}
		subsections = append(subsections, Subsection{
			Document:    r.Document,
			RefinedText: text,
			PageNumber:  r.PageNumber,
		})
	}

	return Report{
		Metadata: Metadata{
			InputDocuments:      documentNames(sections),
			Persona:             job.Persona,
			JobToBeDone:         job.Task,
			ProcessingTimestamp: time.Now().UTC().Format(time.RFC3339),
			RunID:               uuid.NewString(),
		},
		ExtractedSections:  ranked,
		SubsectionAnalysis: subsections,
	}, nil
}

// relevanceScores returns one normalized 0..1 score per section, in input
// order. Sections that match no keyword score zero.
func relevanceScores(ctx context.Context, sections []types.Section, job Job) ([]float64, error) {
	scores := make([]float64, len(sections))

	kws := keywords(job)
	if len(kws) == 0 {
		return scores, nil
	}

	store, err := index.NewMemoryStore()
	if err != nil {
		return nil, fmt.Errorf("opening scoring index: %w", err)
	}
	defer store.Close()

	byDoc := make(map[string][]types.Section)
	for _, sec := range sections {
		byDoc[sec.DocumentID] = append(byDoc[sec.DocumentID], sec)
	}
	for docID, docSections := range byDoc {
		rec := index.DocumentRecord{ID: docID, Path: docSections[0].Document}
		if err := store.IngestDocument(ctx, rec, docSections); err != nil {
			return nil, fmt.Errorf("indexing sections for scoring: %w", err)
		}
	}

	results, err := store.Query(ctx, index.QueryOptions{
		Query:      ftsQuery(kws),
		MaxResults: len(sections),
	})
	if err != nil {
		return nil, fmt.Errorf("scoring sections: %w", err)
	}

	relevance := make(map[string]float64, len(results))
	var max float64
	for _, r := range results {
		key := sectionKey(r.DocumentID, r.Heading, r.Page)
		if r.Relevance > relevance[key] {
			relevance[key] = r.Relevance
		}
		if r.Relevance > max {
			max = r.Relevance
		}
	}
	if max == 0 {
		return scores, nil
	}

	for i, sec := range sections {
		scores[i] = relevance[sectionKey(sec.DocumentID, sec.Heading, sec.Page)] / max
	}
	return scores, nil
}

func sectionKey(docID, heading string, page int) string {
	return fmt.Sprintf("%s\x00%s\x00%d", docID, heading, page)
}

// documentNames returns the sorted, deduplicated source filenames.
func documentNames(sections []types.Section) []string {
	seen := make(map[string]bool)
	var names []string
	for _, sec := range sections {
		if !seen[sec.Document] {
			seen[sec.Document] = true
			names = append(names, sec.Document)
		}
	}
	sort.Strings(names)
	return names
}

// refineText returns the leading sentences of body up to roughly maxChars
// runes, cutting at a sentence boundary when one exists.
func refineText(body string, maxChars int) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	runes := []rune(body)
	if len(runes) <= maxChars {
		return body
	}

	cut := maxChars
	for i := maxChars; i > maxChars/2; i-- {
		if isSentenceEnd(runes[i-1]) {
			cut = i
			break
		}
	}
	return strings.TrimSpace(string(runes[:cut]))
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}
