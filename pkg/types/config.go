package types

// ExtractionConfig holds settings for the outline extraction stage.
type ExtractionConfig struct {
	// InputDir is the directory scanned for PDF files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the directory JSON outlines are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Jobs is the number of files processed concurrently (default 4).
	Jobs int `json:"jobs" yaml:"jobs"`

	// Force re-extracts files whose output JSON already exists.
	Force bool `json:"force" yaml:"force"`

	// MinSizeRatio is how much larger than the body-text mode a line's
	// font must be to count as a heading candidate (default 1.15).
	MinSizeRatio float64 `json:"min_size_ratio" yaml:"min_size_ratio"`
}

// OCRConfig holds settings for the OCR fallback used on pages without a
// text layer.
type OCRConfig struct {
	// Enabled turns the OCR fallback on. When off, pages without a text
	// layer contribute nothing to the outline.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Languages lists tesseract language codes tried in order
	// (default ["eng"]).
	Languages []string `json:"languages" yaml:"languages"`

	// DPI is the rasterization resolution for OCR (default 200).
	DPI float64 `json:"dpi" yaml:"dpi"`

	// MinConfidence drops recognized blocks below this confidence,
	// on the tesseract 0-100 scale (default 40).
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`
}

// IndexConfig holds settings for the section index.
type IndexConfig struct {
	// IndexDir is the directory containing outline.db.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// RankConfig holds settings for persona/job section ranking.
type RankConfig struct {
	// TopK is the number of ranked sections reported (default 15).
	TopK int `json:"top_k" yaml:"top_k"`

	// RefineChars caps the refined-text excerpt length for subsection
	// analysis (default 500).
	RefineChars int `json:"refine_chars" yaml:"refine_chars"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	OCR        OCRConfig        `json:"ocr" yaml:"ocr"`
	Index      IndexConfig      `json:"index" yaml:"index"`
	Rank       RankConfig       `json:"rank" yaml:"rank"`
}
