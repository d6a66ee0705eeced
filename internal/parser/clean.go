// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"regexp"
	"strings"
)

// Length caps applied to cleaned text, bounding index size.
const (
	maxFieldLen       = 5000
	maxDescriptionLen = 3000
	maxFallbackIDLen  = 15
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)

	// disallowedChars matches everything outside the characters expected
	// in technical prose: word characters, whitespace, and common
	// punctuation.
	disallowedChars = regexp.MustCompile(`[^\w\s\-.,;:()\[\]]`)
)

// CleanText normalizes extracted text: whitespace runs collapse to a
// single space, characters outside the allow-list become spaces, and the
// result is truncated to max runes. A max of zero applies the default cap.
func CleanText(text string, max int) string {
	if text == "" {
		return ""
	}
	if max <= 0 {
		max = maxFieldLen
	}

	text = disallowedChars.ReplaceAllString(text, " ")
	text = whitespaceRuns.ReplaceAllString(strings.TrimSpace(text), " ")

	if runes := []rune(text); len(runes) > max {
		text = strings.TrimSpace(string(runes[:max]))
	}
	return text
}
