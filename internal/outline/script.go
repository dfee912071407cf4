// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"unicode"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// scriptOrder fixes the tie-break order for DetectScript.
var scriptOrder = []types.Script{
	types.ScriptChinese,
	types.ScriptJapanese,
	types.ScriptKorean,
	types.ScriptDevanagari,
	types.ScriptLatin,
	types.ScriptCyrillic,
}

// DetectScript returns the dominant writing system of text, decided by
// counting runes per Unicode range. Text with no script runes at all is
// reported as Latin.
func DetectScript(text string) types.Script {
	counts := make(map[types.Script]int, len(scriptOrder))

	for _, r := range text {
		switch {
		case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
			counts[types.ScriptChinese]++
		case (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF): // Hiragana/Katakana
			counts[types.ScriptJapanese]++
		case r >= 0xAC00 && r <= 0xD7AF: // Hangul
			counts[types.ScriptKorean]++
		case r >= 0x0900 && r <= 0x097F: // Devanagari
			counts[types.ScriptDevanagari]++
		case r >= 0x0400 && r <= 0x04FF: // Cyrillic
			counts[types.ScriptCyrillic]++
		case unicode.IsLetter(r):
			counts[types.ScriptLatin]++
		}
	}

	best := types.ScriptLatin
	bestCount := 0
	for _, s := range scriptOrder {
		if counts[s] > bestCount {
			best = s
			bestCount = counts[s]
		}
	}
	return best
}

// isCJK reports whether the script uses dense ideographic text, which gets
// tighter length limits for headings and titles.
func isCJK(s types.Script) bool {
	return s == types.ScriptChinese || s == types.ScriptJapanese
}
