// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"regexp"
	"strings"
)

// noisePatterns match boilerplate that must never become a heading:
// copyright and page-number furniture, URLs, dot leaders, dates, and the
// usual front-matter phrases across the supported languages.
var noisePatterns = []*regexp.Regexp{
	// Universal.
	regexp.MustCompile(`copyright|©|®|™`),
	regexp.MustCompile(`page \d+|页\s*\d+|ページ\s*\d+|페이지\s*\d+|página\s*\d+|seite\s*\d+`),
	regexp.MustCompile(`version|संस्करण|版本|バージョン|버전|versión`),
	regexp.MustCompile(`www\.|http|\.com|\.org`),
	regexp.MustCompile(`[.\-_]{4,}`), // dot leaders
	regexp.MustCompile(`^\d{1,2}:\d{2}|^\d{1,2}/\d{1,2}/\d{2,4}`), // times/dates
	regexp.MustCompile(`^[^\p{L}\p{N}\s]*$`),                      // punctuation only
	// English.
	regexp.MustCompile(`all rights reserved|confidential|internal use|draft`),
	regexp.MustCompile(`table of contents|index`),
	// Hindi.
	regexp.MustCompile(`सभी अधिकार सुरक्षित|गोपनीय|आंतरिक उपयोग|मसौदा`),
	regexp.MustCompile(`विषय सूची|अनुक्रमणिका`),
	// Chinese.
	regexp.MustCompile(`版权所有|保密|内部使用|草稿`),
	regexp.MustCompile(`目录|索引`),
	// Japanese.
	regexp.MustCompile(`著作権|機密|内部使用|下書き`),
	regexp.MustCompile(`目次|索引`),
	// Korean.
	regexp.MustCompile(`저작권|기밀|내부 사용|초안`),
	regexp.MustCompile(`목차|색인`),
	// Spanish.
	regexp.MustCompile(`derechos reservados|confidencial|uso interno|borrador`),
	regexp.MustCompile(`índice|tabla de contenidos`),
	// French.
	regexp.MustCompile(`droits réservés|confidentiel|usage interne|brouillon`),
	regexp.MustCompile(`table des matières`),
	// German.
	regexp.MustCompile(`alle rechte vorbehalten|vertraulich|interne verwendung|entwurf`),
	regexp.MustCompile(`inhaltsverzeichnis`),
}

// numbersOnlyRe matches lines made of digits, separators, and parentheses.
var numbersOnlyRe = regexp.MustCompile(`^[\d\s\-_.()]+$`)

// isNoise reports whether a line is boilerplate rather than content.
// Lines repeated across enough pages (running headers and footers) and
// lines embedded in dense short-line regions (forms, addresses) are noise
// regardless of their text.
func isNoise(line string, repeated map[string]bool, shortNearby int) bool {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)

	if repeated[trimmed] {
		return true
	}
	if len(lower) < 2 {
		return true
	}

	for _, re := range noisePatterns {
		if re.MatchString(lower) {
			return true
		}
	}

	if shortNearby >= 4 {
		return true
	}
	if numbersOnlyRe.MatchString(trimmed) {
		return true
	}

	return false
}
