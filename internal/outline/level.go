// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"regexp"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

var (
	deepNumberRe    = regexp.MustCompile(`^\d+(\.\d+){2,}`)
	subNumberRe     = regexp.MustCompile(`^\d+\.\d+`)
	topNumberRe     = regexp.MustCompile(`^\d+\.?\s`)
	cjkChapterRe    = regexp.MustCompile(`^第\d+章`)
	cjkSectionRe    = regexp.MustCompile(`^第\d+节|^第\d+節`)
	koChapterRe     = regexp.MustCompile(`^\d+장`)
	koSectionRe     = regexp.MustCompile(`^\d+절`)
	hiChapterRe     = regexp.MustCompile(`^अध्याय\s*\d+`)
	hiSectionRe     = regexp.MustCompile(`^खंड\s*\d+|^भाग\s*\d+`)
	cjkEnumRe       = regexp.MustCompile(`[一二三四五六七八九十]、`)
	circledDigitRe  = regexp.MustCompile(`[①②③④⑤⑥⑦⑧⑨⑩]`)
)

// patternLevel derives a heading level from the text itself: numbering
// depth and language-specific chapter/section markers. It is the fallback
// when the document's font sizes are too uniform to rank (typical for
// OCR'd scans). Numbering deeper than three levels clamps to H3.
func patternLevel(text string) (types.HeadingLevel, bool) {
	text = strings.TrimSpace(text)
	script := DetectScript(text)

	switch {
	case deepNumberRe.MatchString(text):
		return types.LevelH3, true
	case subNumberRe.MatchString(text):
		return types.LevelH2, true
	case topNumberRe.MatchString(text):
		return types.LevelH1, true

	case cjkChapterRe.MatchString(text):
		return types.LevelH1, true
	case cjkSectionRe.MatchString(text):
		return types.LevelH2, true

	case koChapterRe.MatchString(text):
		return types.LevelH1, true
	case koSectionRe.MatchString(text):
		return types.LevelH2, true

	case hiChapterRe.MatchString(text):
		return types.LevelH1, true
	case hiSectionRe.MatchString(text):
		return types.LevelH2, true
	}

	for _, re := range appendixRes {
		if re.MatchString(text) {
			return types.LevelH2, true
		}
	}

	if strings.HasSuffix(text, ":") && len(strings.Fields(text)) <= 5 {
		return types.LevelH3, true
	}

	if isCJK(script) {
		if cjkEnumRe.MatchString(text) {
			return types.LevelH2, true
		}
		if circledDigitRe.MatchString(text) {
			return types.LevelH3, true
		}
	}

	return types.LevelH1, false
}

// levelForRank maps a descending font-size rank (1 = largest) to a heading
// level. Ranks beyond the third clamp to H3.
func levelForRank(rank int) types.HeadingLevel {
	switch rank {
	case 1:
		return types.LevelH1
	case 2:
		return types.LevelH2
	default:
		return types.LevelH3
	}
}
