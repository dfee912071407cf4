// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Job describes who is reading the documents and what they need to get
// done. Sections are ranked by relevance to it.
type Job struct {
	// Persona is the reader description (e.g. "PhD student in biology").
	Persona string `json:"persona" yaml:"persona"`

	// Task is the job to be done (e.g. "prepare a literature review").
	Task string `json:"job_to_be_done" yaml:"job_to_be_done"`
}

// IsEmpty reports whether neither persona nor task was provided.
func (j Job) IsEmpty() bool {
	return strings.TrimSpace(j.Persona) == "" && strings.TrimSpace(j.Task) == ""
}

// LoadJob reads a job description from a YAML file.
func LoadJob(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("reading job file %s: %w", path, err)
	}
	var j Job
	if err := yaml.Unmarshal(data, &j); err != nil {
		return Job{}, fmt.Errorf("parsing job file %s: %w", path, err)
	}
	return j, nil
}

// stopwords are dropped from the persona/task text before querying.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "are": true, "from": true, "you": true, "your": true,
	"will": true, "have": true, "has": true, "was": true, "were": true,
	"can": true, "not": true, "but": true, "all": true, "any": true,
	"our": true, "their": true, "its": true, "who": true, "what": true,
	"how": true, "about": true, "into": true, "over": true, "under": true,
}

// keywords tokenizes the job text into lowercased query terms, dropping
// stopwords and tokens shorter than three runes, preserving first-seen
// order so the derived query is deterministic.
func keywords(j Job) []string {
	text := strings.ToLower(j.Persona + " " + j.Task)

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})

	seen := make(map[string]bool)
	var kws []string
	for _, f := range fields {
		if len([]rune(f)) < 3 || stopwords[f] || seen[f] {
			continue
		}
		seen[f] = true
		kws = append(kws, f)
	}
	return kws
}

func isWordRune(r rune) bool {
	return r == '-' || r == '\'' ||
		('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || r > 127
}

// ftsQuery builds an OR query over the keywords, quoting each term so FTS5
// never interprets them as syntax.
func ftsQuery(kws []string) string {
	quoted := make([]string, 0, len(kws))
	for _, k := range kws {
		quoted = append(quoted, `"`+strings.ReplaceAll(k, `"`, ``)+`"`)
	}
	return strings.Join(quoted, " OR ")
}
