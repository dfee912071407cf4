package rank

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/outline-engine/pkg/types"
)

func section(docID, heading string, page int, body string) types.Section {
	return types.Section{
		DocumentID: docID,
		Document:   docID + ".pdf",
		Level:      types.LevelH1,
		Heading:    heading,
		Page:       page,
		Body:       body,
	}
}

func travelSections() []types.Section {
	return []types.Section{
		section("guide-a", "Coastal Cuisine And Seafood", 3,
			"restaurants along the coast serve seafood dishes and regional cuisine with local wine pairings for every budget"),
		section("guide-a", "Bus And Train Schedules", 7,
			"regional transit timetables connect the airport with the old town every twenty minutes"),
		section("guide-b", "Nightlife And Bars", 2,
			"bars and clubs stay open late with live music on weekends near the waterfront district"),
		section("guide-b", "Museum Opening Hours", 5,
			"the maritime museum opens at nine and closes at five except on public holidays"),
	}
}

func TestRankOrdersByRelevance(t *testing.T) {
	job := Job{
		Persona: "Food critic",
		Task:    "Review seafood cuisine and restaurants for a travel column",
	}

	report, err := Rank(context.Background(), travelSections(), job, Config{})
	require.NoError(t, err)
	require.NotEmpty(t, report.ExtractedSections)

	assert.Equal(t, "Coastal Cuisine And Seafood", report.ExtractedSections[0].SectionTitle)
	assert.Equal(t, "guide-a.pdf", report.ExtractedSections[0].Document)
	assert.Equal(t, 3, report.ExtractedSections[0].PageNumber)

	// Ranks are 1-based and contiguous.
	for i, sec := range report.ExtractedSections {
		assert.Equal(t, i+1, sec.ImportanceRank)
	}
}

func TestRankReportShape(t *testing.T) {
	job := Job{Persona: "Traveler", Task: "plan museum visits"}

	report, err := Rank(context.Background(), travelSections(), job, Config{})
	require.NoError(t, err)

	assert.Equal(t, []string{"guide-a.pdf", "guide-b.pdf"}, report.Metadata.InputDocuments)
	assert.Equal(t, "Traveler", report.Metadata.Persona)
	assert.Equal(t, "plan museum visits", report.Metadata.JobToBeDone)
	assert.NotEmpty(t, report.Metadata.ProcessingTimestamp)
	assert.NotEmpty(t, report.Metadata.RunID)

	require.Len(t, report.SubsectionAnalysis, len(report.ExtractedSections))
	for i, sub := range report.SubsectionAnalysis {
		assert.Equal(t, report.ExtractedSections[i].Document, sub.Document)
		assert.Equal(t, report.ExtractedSections[i].PageNumber, sub.PageNumber)
		assert.NotEmpty(t, sub.RefinedText)
	}
}

func TestRankTopK(t *testing.T) {
	job := Job{Task: "find anything about the town"}

	report, err := Rank(context.Background(), travelSections(), job, Config{TopK: 2})
	require.NoError(t, err)
	assert.Len(t, report.ExtractedSections, 2)
	assert.Len(t, report.SubsectionAnalysis, 2)
}

func TestRankDeterministic(t *testing.T) {
	job := Job{Persona: "Food critic", Task: "review seafood restaurants"}

	first, err := Rank(context.Background(), travelSections(), job, Config{})
	require.NoError(t, err)
	second, err := Rank(context.Background(), travelSections(), job, Config{})
	require.NoError(t, err)

	// Metadata carries a timestamp and run ID; the ranking itself must
	// be identical across runs.
	assert.Equal(t, first.ExtractedSections, second.ExtractedSections)
	assert.Equal(t, first.SubsectionAnalysis, second.SubsectionAnalysis)
}

func TestRankEmptyJob(t *testing.T) {
	_, err := Rank(context.Background(), travelSections(), Job{}, Config{})
	assert.Error(t, err)
}

func TestRankNoSections(t *testing.T) {
	_, err := Rank(context.Background(), nil, Job{Task: "anything"}, Config{})
	assert.Error(t, err)
}

func TestRankNoKeywordOverlap(t *testing.T) {
	job := Job{Task: "quantum chromodynamics lattice simulations"}

	report, err := Rank(context.Background(), travelSections(), job, Config{})
	require.NoError(t, err)

	// No section matches; ties fall back to (document, page) order.
	require.NotEmpty(t, report.ExtractedSections)
	assert.Equal(t, "Coastal Cuisine And Seafood", report.ExtractedSections[0].SectionTitle)
	assert.Equal(t, "Bus And Train Schedules", report.ExtractedSections[1].SectionTitle)
}

// --- refineText ---

func TestRefineText(t *testing.T) {
	short := "One sentence only."
	assert.Equal(t, short, refineText(short, 500))

	long := strings.Repeat("padding words here. ", 40) // ~800 runes
	got := refineText(long, 500)
	assert.LessOrEqual(t, len([]rune(got)), 500)
	assert.True(t, strings.HasSuffix(got, "."), "cut mid-sentence: %q", got[len(got)-20:])

	assert.Equal(t, "", refineText("   ", 500))
}

func TestDocumentNames(t *testing.T) {
	names := documentNames(travelSections())
	assert.Equal(t, []string{"guide-a.pdf", "guide-b.pdf"}, names)
}
