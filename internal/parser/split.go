// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"regexp"
	"sort"
	"strings"
)

// recognizedRoots lists the root element names of known patent document
// variants.
var recognizedRoots = []string{
	"us-patent-application",
	"us-patent-grant",
	"patent-application-publication",
}

// declPatterns anchor one complete document per recognized root: an XML
// declaration, a DOCTYPE marker, then the root element through its closing
// tag. Bodies span newlines. RE2 has no backreferences, so each root type
// gets its own pattern.
var declPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(recognizedRoots))
	for _, root := range recognizedRoots {
		patterns = append(patterns, regexp.MustCompile(
			`(?s)<\?xml version="1\.0"[^>]*\?>\s*<!DOCTYPE[^>]*>\s*<`+
				root+`[^>]*>.*?</`+root+`>`))
	}
	return patterns
}()

const xmlDeclPrefix = `<?xml version="1.0"`

// SplitDocuments segments a raw stream that may hold zero, one, or many
// concatenated XML documents into self-contained parsable units. A
// well-formed single document is returned whole. Otherwise boundaries are
// located by a declaration-anchored scan, falling back to a depth-tracked
// line scan when the scan finds nothing. Units are trimmed and empty units
// dropped. Segmenting does not guarantee each unit parses; callers count
// per-unit parse failures themselves.
func SplitDocuments(content string) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}

	if _, err := ParseTreeString(trimmed); err == nil {
		return []string{trimmed}
	}

	units := splitByDeclaration(content)
	if len(units) == 0 {
		units = splitByLines(content)
	}

	out := units[:0]
	for _, u := range units {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// splitByDeclaration collects every declaration-anchored document match,
// restoring stream order across the per-root patterns.
func splitByDeclaration(content string) []string {
	type match struct {
		start int
		text  string
	}
	var matches []match
	for _, p := range declPatterns {
		for _, loc := range p.FindAllStringIndex(content, -1) {
			matches = append(matches, match{loc[0], content[loc[0]:loc[1]]})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	units := make([]string, 0, len(matches))
	for _, m := range matches {
		units = append(units, m.text)
	}
	return units
}

// splitByLines is the fallback boundary scan: an XML declaration line
// starts a unit, and the unit closes when the signed open/close depth of
// its root element returns to zero. A non-empty trailing unit at
// end-of-input is still emitted.
func splitByLines(content string) []string {
	var (
		units   []string
		current strings.Builder
		started bool
		root    string
		depth   int
	)

	flush := func() {
		if u := strings.TrimSpace(current.String()); u != "" {
			units = append(units, u)
		}
		current.Reset()
		root = ""
		depth = 0
	}

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, xmlDeclPrefix) {
			if started {
				flush()
			}
			current.WriteString(line)
			current.WriteString("\n")
			started = true
			continue
		}

		if !started {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if root == "" {
			for _, r := range recognizedRoots {
				if strings.Contains(stripped, "<"+r) && !strings.Contains(stripped, "</"+r) {
					root = r
					break
				}
			}
			if root == "" {
				continue
			}
		}

		if strings.Contains(stripped, "</"+root+">") {
			depth--
		} else if strings.Contains(stripped, "<"+root) {
			depth++
		}

		if depth == 0 && root != "" {
			flush()
			started = false
		}
	}

	if started {
		flush()
	}
	return units
}
