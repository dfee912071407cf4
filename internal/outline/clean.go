// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	dotLeaderTailRe  = regexp.MustCompile(`[.\-_]{3,}$`)
	trailingPageRe   = regexp.MustCompile(`\s+\d+$`)
	multiSpaceRe     = regexp.MustCompile(`\s{2,}`)
	trailingPeriodRe = regexp.MustCompile(`[.。．]{1,2}$`)
)

// CleanHeading normalizes extracted heading text: dot leaders and trailing
// page numbers (table-of-contents artifacts) are stripped, whitespace is
// collapsed, trailing periods removed, and the result is NFKC-normalized so
// fullwidth and compatibility forms compare equal across scripts.
func CleanHeading(text string) string {
	text = strings.TrimSpace(text)
	// Page number first: "Methods ....... 12" hides its dot leader
	// behind the number.
	text = trailingPageRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(dotLeaderTailRe.ReplaceAllString(text, ""))
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = trailingPeriodRe.ReplaceAllString(text, "")
	text = norm.NFKC.String(text)
	return strings.TrimSpace(text)
}
