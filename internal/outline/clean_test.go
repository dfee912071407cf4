package outline

import "testing"

func TestCleanHeading(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Introduction", "Introduction"},
		{"surrounding space", "  Results  ", "Results"},
		{"dot leader and page", "Methods ....... 12", "Methods"},
		{"trailing page number", "Discussion 47", "Discussion"},
		{"collapsed spaces", "Data   Collection    Protocol", "Data Collection Protocol"},
		{"trailing period", "Summary.", "Summary"},
		{"trailing ideographic period", "まとめ。", "まとめ"},
		{"fullwidth digits normalized", "第１章", "第1章"},
		{"fullwidth latin normalized", "ＡＢＣ分析", "ABC分析"},
		{"numbered heading keeps number", "2.1 Sampling", "2.1 Sampling"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanHeading(tt.text); got != tt.want {
				t.Errorf("CleanHeading(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
