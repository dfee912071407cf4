// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// numberedSectionRes match section numbering conventions at line start.
var numberedSectionRes = []*regexp.Regexp{
	regexp.MustCompile(`^\d+(\.\d+)*\.?\s+`),        // universal numbering
	regexp.MustCompile(`^第\d+章|^第\d+节|^第\d+節`),      // Chinese chapters/sections
	regexp.MustCompile(`^\d+장|^\d+절`),               // Korean chapters/sections
	regexp.MustCompile(`^अध्याय\s*\d+|^खंड\s*\d+`),   // Hindi chapters/sections
	regexp.MustCompile(`(?i)^capítulo\s*\d+|^sección\s*\d+`),  // Spanish
	regexp.MustCompile(`(?i)^chapitre\s*\d+|^section\s*\d+`),  // French
	regexp.MustCompile(`(?i)^kapitel\s*\d+|^abschnitt\s*\d+`), // German
}

// appendixRes match appendix headings in the supported languages.
var appendixRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^appendix\s+[a-z]`),
	regexp.MustCompile(`(?i)^anexo\s+[a-z]`),
	regexp.MustCompile(`(?i)^annexe\s+[a-z]`),
	regexp.MustCompile(`(?i)^anhang\s+[a-z]`),
	regexp.MustCompile(`(?i)^परिशिष्ट\s*[a-z]`),
	regexp.MustCompile(`(?i)^附录\s*[a-z]`),
	regexp.MustCompile(`(?i)^付録\s*[a-z]`),
	regexp.MustCompile(`(?i)^부록\s*[a-z]`),
}

// instructionWords lists form-instruction vocabulary whose presence
// disqualifies an otherwise heading-shaped all-caps line.
var instructionWords = []string{
	// English.
	"required", "please", "visit", "fill", "complete", "enter", "select",
	// Hindi.
	"आवश्यक", "कृपया", "भरें", "पूरा", "दर्ज", "चुनें",
	// Chinese.
	"必需", "请", "填写", "完成", "输入", "选择",
	// Japanese.
	"必要", "してください", "記入", "完了", "入力", "選択",
	// Korean.
	"필수", "제발", "채우다", "완료", "입력", "선택",
	// Spanish.
	"requerido", "por favor", "llenar", "completar", "entrar", "seleccionar",
	// French.
	"requis", "s'il vous plaît", "remplir", "compléter", "entrer", "sélectionner",
	// German.
	"erforderlich", "bitte", "ausfüllen", "vervollständigen", "eingeben", "auswählen",
}

var (
	addressRe       = regexp.MustCompile(`^\d+\s+[A-Z\s]+$|^[A-Z\s]+,\s*[A-Z]{2}`)
	cjkMarkerRe     = regexp.MustCompile(`[一二三四五六七八九十]、|[①②③④⑤⑥⑦⑧⑨⑩]`)
	koreanMarkerRe  = regexp.MustCompile(`[가나다라마바사아자차카타파하]\.`)
	devanagariCueRe = regexp.MustCompile(`[१२३४५६७८९०]|अध्याय|भाग|खंड`)
)

// lengthLimits returns the maximum rune and word counts for a heading in
// the given script. CJK text is denser, so its character limit is tighter
// and its word limit looser.
func lengthLimits(script types.Script) (maxRunes, maxWords int) {
	if isCJK(script) {
		return 50, 20
	}
	return 120, 15
}

// withinHeadingShape checks the basic size constraints a heading candidate
// must satisfy: script-aware length limits and not sitting inside a dense
// short-line region.
func withinHeadingShape(text string, script types.Script, shortNearby int) bool {
	maxRunes, maxWords := lengthLimits(script)
	if len(strings.Fields(text)) > maxWords || len([]rune(text)) > maxRunes {
		return false
	}
	return shortNearby < 4
}

// isPatternCandidate reports whether the line text looks like a heading on
// textual evidence alone: numbering, appendix markers, casing, section
// markers specific to CJK, Korean, and Devanagari text.
func isPatternCandidate(text string, script types.Script, shortNearby int) bool {
	text = strings.TrimSpace(text)
	if !withinHeadingShape(text, script, shortNearby) {
		return false
	}
	words := strings.Fields(text)

	for _, re := range numberedSectionRes {
		if re.MatchString(text) {
			return true
		}
	}
	for _, re := range appendixRes {
		if re.MatchString(text) {
			return true
		}
	}

	// All caps, short, and not an instruction or address.
	if isUpper(text) && len(words) >= 2 && len(words) <= 8 {
		if !containsInstructionWord(text) && !addressRe.MatchString(text) {
			return true
		}
	}

	// Title case, Latin scripts only.
	if script == types.ScriptLatin && isTitleCase(text) &&
		len(words) >= 3 && len(words) <= 10 && !strings.HasSuffix(text, ":") {
		return true
	}

	// Mostly uppercase, Latin scripts only. Spaces keep fully uppercase
	// instruction lines under a ratio of 1.0, so the instruction check
	// applies here too.
	if script == types.ScriptLatin && len(words) <= 10 && !containsInstructionWord(text) {
		if ratio := uppercaseRatio(text); ratio >= 0.6 && ratio < 1.0 {
			return true
		}
	}

	// Colon-ended section label.
	if strings.HasSuffix(text, ":") && len(words) >= 2 && len(words) <= 8 {
		return true
	}

	if isCJK(script) {
		if cjkMarkerRe.MatchString(text) {
			return true
		}
		// Short ideographic lines without a closing period read as headings.
		if len([]rune(text)) <= 30 && !strings.HasSuffix(text, "。") {
			return true
		}
	}

	if script == types.ScriptKorean && koreanMarkerRe.MatchString(text) {
		return true
	}

	if script == types.ScriptDevanagari && devanagariCueRe.MatchString(text) {
		return true
	}

	return false
}

func containsInstructionWord(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range instructionWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// isUpper reports whether text has at least one cased rune and every cased
// rune is uppercase.
func isUpper(text string) bool {
	cased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// isTitleCase reports whether every word beginning with a letter starts
// uppercase with the remainder lowercase.
func isTitleCase(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	sawCased := false
	for _, w := range words {
		runes := []rune(w)
		if !unicode.IsLetter(runes[0]) {
			continue
		}
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		sawCased = true
		for _, r := range runes[1:] {
			if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return sawCased
}

// uppercaseRatio returns the fraction of runes that are uppercase letters.
func uppercaseRatio(text string) float64 {
	if text == "" {
		return 0
	}
	total := 0
	upper := 0
	for _, r := range text {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(total)
}
