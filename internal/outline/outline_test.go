package outline

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// --- test document builders ---

// textLine builds a text-layer line.
func textLine(text string, page int, y, size float64, bold bool) types.Line {
	return types.Line{
		Text:       text,
		Page:       page,
		Y:          y,
		FontSize:   size,
		Bold:       bold,
		Source:     types.SourceTextLayer,
		Confidence: 1.0,
	}
}

// ocrLine builds an OCR line with uniform font size.
func ocrLine(text string, page int, y float64) types.Line {
	return types.Line{
		Text:       text,
		Page:       page,
		Y:          y,
		FontSize:   10,
		Source:     types.SourceOCR,
		Confidence: 0.9,
	}
}

// buildDoc assembles a document from per-page line slices.
func buildDoc(pages ...[]types.Line) *types.Document {
	doc := &types.Document{ID: "test-doc", Path: "test-doc.pdf"}
	for i, lines := range pages {
		doc.Pages = append(doc.Pages, types.Page{
			Index:        i,
			Lines:        lines,
			HasTextLayer: true,
		})
	}
	return doc
}

// bodyPara returns n long body lines starting at the given y.
func bodyPara(page int, y float64, n int) []types.Line {
	var lines []types.Line
	for i := 0; i < n; i++ {
		text := fmt.Sprintf(
			"consensus protocols coordinate replicas across unreliable networks and partitions variant %d", page*100+i)
		lines = append(lines, textLine(text, page, y-float64(i)*14, 10, false))
	}
	return lines
}

// --- Extract: font-size hierarchy ---

func TestExtractFontSizeHierarchy(t *testing.T) {
	page0 := append([]types.Line{
		textLine("Understanding Distributed Consensus", 0, 800, 24, false),
		textLine("System Model", 0, 760, 18, false),
	}, bodyPara(0, 740, 4)...)
	page1 := append([]types.Line{
		textLine("Leader Election", 1, 800, 18, false),
	}, bodyPara(1, 780, 4)...)
	page2 := append([]types.Line{
		textLine("Vote Counting Rules", 2, 800, 14, false),
	}, append(bodyPara(2, 780, 3),
		append([]types.Line{textLine("Ballot Storage", 2, 700, 12, false)},
			bodyPara(2, 680, 3)...)...)...)

	out := Extract(buildDoc(page0, page1, page2), Config{})

	if out.Title != "Understanding Distributed Consensus" {
		t.Errorf("Title = %q, want the largest first-page line", out.Title)
	}

	want := []types.Heading{
		{Level: types.LevelH1, Text: "System Model", Page: 0},
		{Level: types.LevelH1, Text: "Leader Election", Page: 1},
		{Level: types.LevelH2, Text: "Vote Counting Rules", Page: 2},
		{Level: types.LevelH3, Text: "Ballot Storage", Page: 2},
	}
	if len(out.Outline) != len(want) {
		t.Fatalf("got %d headings, want %d: %+v", len(out.Outline), len(want), out.Outline)
	}
	for i, h := range out.Outline {
		if h.Level != want[i].Level || h.Text != want[i].Text || h.Page != want[i].Page {
			t.Errorf("heading %d = {%s %q p%d}, want {%s %q p%d}",
				i, h.Level, h.Text, h.Page, want[i].Level, want[i].Text, want[i].Page)
		}
	}
}

// Levels must be monotonic with font size: a larger heading never gets a
// deeper level than a smaller one.
func TestExtractLevelsMonotonicWithSize(t *testing.T) {
	page0 := append([]types.Line{
		textLine("Regional Climate Assessment Report", 0, 800, 26, false),
		textLine("Coastal Observations", 0, 760, 15, false),
	}, bodyPara(0, 740, 4)...)
	page1 := append([]types.Line{
		textLine("Inland Measurements", 1, 800, 20, false),
	}, bodyPara(1, 780, 4)...)

	out := Extract(buildDoc(page0, page1), Config{})

	sizeOf := map[string]float64{"Coastal Observations": 15, "Inland Measurements": 20}
	levelDepth := map[types.HeadingLevel]int{types.LevelH1: 1, types.LevelH2: 2, types.LevelH3: 3}
	for _, a := range out.Outline {
		for _, b := range out.Outline {
			if sizeOf[a.Text] > sizeOf[b.Text] && levelDepth[a.Level] > levelDepth[b.Level] {
				t.Errorf("%q (size %.0f, %s) deeper than %q (size %.0f, %s)",
					a.Text, sizeOf[a.Text], a.Level, b.Text, sizeOf[b.Text], b.Level)
			}
		}
	}
}

// --- Extract: pattern fallback for size-flat documents ---

func TestExtractPatternFallback(t *testing.T) {
	page0 := append([]types.Line{
		ocrLine("Municipal Water Quality Report", 0, 800),
		ocrLine("1. Introduction", 0, 760),
	}, bodyParaOCR(0, 740, 4)...)
	page1 := append([]types.Line{
		ocrLine("1.1 Sampling Background", 1, 800),
	}, append(bodyParaOCR(1, 780, 3),
		append([]types.Line{ocrLine("1.1.1 Historical Baselines", 1, 700)},
			bodyParaOCR(1, 680, 3)...)...)...)
	page2 := append([]types.Line{
		ocrLine("2. Methods", 2, 800),
	}, bodyParaOCR(2, 780, 4)...)

	out := Extract(buildDoc(page0, page1, page2), Config{})

	if out.Title != "Municipal Water Quality Report" {
		t.Errorf("Title = %q", out.Title)
	}

	wantLevels := map[string]types.HeadingLevel{
		"1. Introduction":            types.LevelH1,
		"1.1 Sampling Background":    types.LevelH2,
		"1.1.1 Historical Baselines": types.LevelH3,
		"2. Methods":                 types.LevelH1,
	}
	if len(out.Outline) != len(wantLevels) {
		t.Fatalf("got %d headings, want %d: %+v", len(out.Outline), len(wantLevels), out.Outline)
	}
	for _, h := range out.Outline {
		if want, ok := wantLevels[h.Text]; !ok {
			t.Errorf("unexpected heading %q", h.Text)
		} else if h.Level != want {
			t.Errorf("heading %q level = %s, want %s", h.Text, h.Level, want)
		}
	}
}

func bodyParaOCR(page int, y float64, n int) []types.Line {
	var lines []types.Line
	for i := 0; i < n; i++ {
		text := fmt.Sprintf(
			"dissolved oxygen readings were collected at each station throughout the season run %d", page*100+i)
		lines = append(lines, ocrLine(text, page, y-float64(i)*14))
	}
	return lines
}

// --- Extract: determinism ---

func TestExtractDeterministic(t *testing.T) {
	page0 := append([]types.Line{
		textLine("Freight Corridor Utilization Study", 0, 800, 22, false),
		textLine("Network Topology", 0, 760, 16, false),
	}, bodyPara(0, 740, 5)...)
	page1 := append([]types.Line{
		textLine("Terminal Throughput", 1, 800, 13, false),
	}, bodyPara(1, 780, 5)...)
	doc := buildDoc(page0, page1)

	first := Extract(doc, Config{})
	for i := 0; i < 5; i++ {
		if got := Extract(doc, Config{}); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs:\n got %+v\nwant %+v", i, got, first)
		}
	}
}

// --- Extract: repeated header/footer suppression ---

func TestExtractSuppressesRepeatedLines(t *testing.T) {
	var pages [][]types.Line
	for p := 0; p < 6; p++ {
		var page []types.Line
		if p == 0 {
			page = append(page, textLine("Logistics Performance Summary", 0, 840, 10, false))
		}
		page = append(page,
			textLine("Quarterly Review Bulletin", p, 820, 10, false),
			textLine(fmt.Sprintf("%d. Findings For Region %d", p+1, p+1), p, 780, 10, false),
		)
		page = append(page, bodyPara(p, 760, 3)...)
		pages = append(pages, page)
	}

	out := Extract(buildDoc(pages...), Config{})

	for _, h := range out.Outline {
		if h.Text == "Quarterly Review Bulletin" {
			t.Errorf("repeated running header extracted as heading")
		}
	}
	if len(out.Outline) != 6 {
		t.Errorf("got %d headings, want 6: %+v", len(out.Outline), out.Outline)
	}
	for _, h := range out.Outline {
		if h.Level != types.LevelH1 {
			t.Errorf("heading %q level = %s, want H1", h.Text, h.Level)
		}
	}
}

// --- Extract: form short-circuit ---

func TestExtractFormShortCircuit(t *testing.T) {
	var lines []types.Line
	for i := 0; i < 10; i++ {
		y := 800 - float64(i)*60
		lines = append(lines,
			textLine("Applicant Name:", 0, y, 10, false),
			textLine("Date Of Birth:", 0, y-15, 10, false),
			textLine("Signature Here:", 0, y-30, 10, false),
		)
	}

	out := Extract(buildDoc(lines), Config{})

	if len(out.Outline) != 0 {
		t.Errorf("form document produced %d headings: %+v", len(out.Outline), out.Outline)
	}
}

// --- Extract: edge cases ---

func TestExtractEmptyDocument(t *testing.T) {
	out := Extract(&types.Document{ID: "empty"}, Config{})
	if out.Title != "" {
		t.Errorf("Title = %q, want empty", out.Title)
	}
	if out.Outline == nil || len(out.Outline) != 0 {
		t.Errorf("Outline = %#v, want empty non-nil slice", out.Outline)
	}
}

func TestExtractDeduplicatesHeadings(t *testing.T) {
	page0 := append([]types.Line{
		textLine("Field Operations Manual Overview", 0, 800, 22, false),
		textLine("Safety Procedures", 0, 760, 16, false),
	}, bodyPara(0, 740, 4)...)
	page1 := append([]types.Line{
		textLine("SAFETY PROCEDURES", 1, 800, 16, false),
	}, bodyPara(1, 780, 4)...)
	page2 := append([]types.Line{
		textLine("Equipment Checklists", 2, 800, 13, false),
	}, bodyPara(2, 780, 4)...)

	out := Extract(buildDoc(page0, page1, page2), Config{})

	count := 0
	for _, h := range out.Outline {
		if h.Text == "Safety Procedures" || h.Text == "SAFETY PROCEDURES" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate heading kept %d times, want 1: %+v", count, out.Outline)
	}
}

func TestExtractTitleNotRepeatedInOutline(t *testing.T) {
	page0 := append([]types.Line{
		textLine("Harbor Dredging Impact Survey", 0, 800, 24, false),
		textLine("Sediment Analysis", 0, 760, 16, false),
	}, bodyPara(0, 740, 4)...)
	page1 := append([]types.Line{
		textLine("Harbor Dredging Impact Survey", 1, 800, 24, false),
	}, bodyPara(1, 780, 4)...)

	out := Extract(buildDoc(page0, page1), Config{})

	for _, h := range out.Outline {
		if h.Text == out.Title {
			t.Errorf("title %q repeated in outline", out.Title)
		}
	}
}

// --- extractTitle ---

func TestExtractTitlePicksLargestFont(t *testing.T) {
	firstPage := []types.Line{
		textLine("prepared by the city engineering office", 0, 820, 10, false),
		textLine("Annual Performance Review", 0, 780, 22, false),
		textLine("published in the spring distribution cycle", 0, 740, 10, false),
	}
	got := extractTitle(firstPage, map[string]bool{})
	if got != "Annual Performance Review" {
		t.Errorf("extractTitle = %q, want %q", got, "Annual Performance Review")
	}
}

func TestExtractTitleSkipsRepeatedAndNoise(t *testing.T) {
	repeated := map[string]bool{"Operations Handbook Draft Series": true}
	firstPage := []types.Line{
		textLine("Operations Handbook Draft Series", 0, 820, 24, false),
		textLine("copyright 2025 all rights reserved", 0, 800, 18, false),
		textLine("Winter Maintenance Planning", 0, 760, 16, false),
	}
	got := extractTitle(firstPage, repeated)
	if got != "Winter Maintenance Planning" {
		t.Errorf("extractTitle = %q, want %q", got, "Winter Maintenance Planning")
	}
}

func TestExtractTitleEmptyWhenNothingQualifies(t *testing.T) {
	firstPage := []types.Line{
		textLine("ok", 0, 820, 24, false),
		textLine("12345", 0, 800, 18, false),
	}
	if got := extractTitle(firstPage, map[string]bool{}); got != "" {
		t.Errorf("extractTitle = %q, want empty", got)
	}
}

// --- sizeRanks ---

func TestSizeRanks(t *testing.T) {
	cands := []candidate{
		{text: "a", size: 18, fontSignal: true},
		{text: "b", size: 14, fontSignal: true},
		{text: "c", size: 12, fontSignal: true},
		{text: "d", size: 30, fontSignal: false}, // pattern-only, ignored
	}
	ranks := sizeRanks(cands)
	want := map[float64]int{18: 1, 14: 2, 12: 3}
	if !reflect.DeepEqual(ranks, want) {
		t.Errorf("sizeRanks = %v, want %v", ranks, want)
	}
}

func TestSizeRanksFlatDocument(t *testing.T) {
	cands := []candidate{
		{text: "a", size: 10, fontSignal: true},
		{text: "b", size: 10, fontSignal: true},
	}
	if ranks := sizeRanks(cands); len(ranks) != 0 {
		t.Errorf("single-size document got ranks %v, want none", ranks)
	}
}
