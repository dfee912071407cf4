package outline

import (
	"strings"
	"testing"

	"github.com/pdiddy/outline-engine/pkg/types"
)

func TestIsPatternCandidate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		script types.Script
		want   bool
	}{
		{"numbered section", "3. Experimental Setup", types.ScriptLatin, true},
		{"sub-numbered section", "3.2 Apparatus", types.ScriptLatin, true},
		{"chinese chapter", "第1章 绪论", types.ScriptChinese, true},
		{"korean chapter", "2장 연구 방법", types.ScriptKorean, true},
		{"hindi chapter", "अध्याय 2 विधि", types.ScriptDevanagari, true},
		{"spanish chapter", "Capítulo 3 Resultados", types.ScriptLatin, true},
		{"french section", "Chapitre 2 Méthodologie", types.ScriptLatin, true},
		{"appendix", "Appendix B Raw Measurements", types.ScriptLatin, true},
		{"all caps", "EXPERIMENTAL RESULTS SUMMARY", types.ScriptLatin, true},
		{"all caps instruction", "PLEASE COMPLETE ALL FIELDS", types.ScriptLatin, false},
		{"title case", "Limitations Of The Study", types.ScriptLatin, true},
		{"colon label", "Safety Requirements:", types.ScriptLatin, true},
		{"cjk enumeration", "一、研究背景", types.ScriptChinese, true},
		{"korean list marker", "가. 개요", types.ScriptKorean, true},
		{"plain sentence", "the committee reviewed the findings and voted to proceed with documented changes before the final deadline passed quietly", types.ScriptLatin, false},
		{"lowercase fragment", "introduction to the topic at hand together", types.ScriptLatin, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPatternCandidate(tt.text, tt.script, 0); got != tt.want {
				t.Errorf("isPatternCandidate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsPatternCandidateDenseShortRegion(t *testing.T) {
	if isPatternCandidate("3. Experimental Setup", types.ScriptLatin, 4) {
		t.Error("candidate inside a dense short-line region must be rejected")
	}
}

func TestIsPatternCandidateLengthLimits(t *testing.T) {
	long := strings.Repeat("word ", 20)
	if isPatternCandidate("1. "+long, types.ScriptLatin, 0) {
		t.Error("overlong line accepted as heading candidate")
	}
	longCJK := "第1章" + strings.Repeat("研究", 30)
	if isPatternCandidate(longCJK, types.ScriptChinese, 0) {
		t.Error("overlong ideographic line accepted as heading candidate")
	}
}

func TestIsUpper(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"RESULTS", true},
		{"RESULTS 2024", true},
		{"Results", false},
		{"1234", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isUpper(tt.text); got != tt.want {
			t.Errorf("isUpper(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsTitleCase(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Limitations Of The Study", true},
		{"Limitations of the study", false},
		{"LIMITATIONS OF STUDY", false},
		{"2024 Annual Review", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := isTitleCase(tt.text); got != tt.want {
			t.Errorf("isTitleCase(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestUppercaseRatio(t *testing.T) {
	if got := uppercaseRatio("ABCD"); got != 1.0 {
		t.Errorf("uppercaseRatio(ABCD) = %f, want 1.0", got)
	}
	if got := uppercaseRatio("ABcd"); got != 0.5 {
		t.Errorf("uppercaseRatio(ABcd) = %f, want 0.5", got)
	}
	if got := uppercaseRatio(""); got != 0 {
		t.Errorf("uppercaseRatio(empty) = %f, want 0", got)
	}
}
