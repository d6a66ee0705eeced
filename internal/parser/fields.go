// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/pdiddy/patent-engine/pkg/types"
)

// Path candidate tables, one per logical field, ordered by schema
// priority. The first structurally present element wins, whether or not
// its text is empty; new schema variants are added to the tables, not to
// the code.
var (
	titlePaths = []string{
		"invention-title",
		"title-of-invention",
		"invention-title-text",
		"title",
	}
	abstractPaths = []string{
		"abstract",
		"abstract-text",
		"subdoc-abstract",
	}
	claimsPaths = []string{
		"claims",
		"claim",
		"subdoc-claims",
	}
	descriptionPaths = []string{
		"description",
		"detailed-description",
		"subdoc-description",
	}
	idPaths = []string{
		"document-id/doc-number",
		"publication-reference/doc-number",
		"application-reference/doc-number",
		"subdoc-bibliographic-information/document-id/doc-number",
		"patent-number",
		"application-number",
	}
	assigneePaths = []string{
		"assignees/assignee",
		"assignee",
		"subdoc-bibliographic-information/assignee",
	}
	orgNamePaths = []string{
		"orgname",
		"organization-name",
		"assignee-name",
	}
	inventorPaths = []string{
		"inventors/inventor",
		"inventor",
		"subdoc-bibliographic-information/inventor",
	}
	applicationDatePaths = []string{
		"application-reference/date",
		"filing-date",
		"subdoc-bibliographic-information/filing-date",
	}
	publicationDatePaths = []string{
		"publication-reference/date",
		"publication-date",
		"subdoc-bibliographic-information/publication-date",
	}
	ipcPaths = []string{
		"classifications-ipc/main-classification",
		"classification-ipc/main-classification",
		"ipc-classification",
		"classification-ipc",
	}
	nationalClassPaths = []string{
		"classification-us/main-classification",
		"us-classification",
		"classification-national",
	}
)

// nationalClassPrefix tags national classification codes so they remain
// distinguishable from IPC codes downstream.
const nationalClassPrefix = "US"

// ExtractRecord resolves every canonical field of a parsed document tree
// into a PatentRecord candidate. Returns nil when the candidate fails
// validation (title shorter than 5 or abstract shorter than 10 after
// normalization); such candidates are neither stored nor indexed.
func ExtractRecord(doc *Node) *types.PatentRecord {
	rec := &types.PatentRecord{
		ID:          extractID(doc),
		Title:       firstFlexible(doc, titlePaths, "Untitled"),
		Abstract:    firstFlexible(doc, abstractPaths, "No abstract available"),
		Claims:      firstFlexible(doc, claimsPaths, "No claims available"),
		Description: CleanText(flattenFirst(doc, descriptionPaths), maxDescriptionLen),
		Assignee:    extractAssignee(doc),
		Inventors:   extractInventors(doc),
	}

	rec.ApplicationDate = extractDate(doc, applicationDatePaths)
	rec.PublicationDate = extractDate(doc, publicationDatePaths)

	rec.IPCClasses = extractClassifications(doc)
	rec.IPCClass = rec.IPCClasses[0]
	rec.Category = Categorize(rec.IPCClass, rec.Title)

	if !Validate(rec) {
		return nil
	}
	return rec
}

// Validate is the only content-based acceptance gate: a record needs a
// normalized title of at least 5 characters and an abstract of at least 10.
// Every other field is best-effort with defaults.
func Validate(rec *types.PatentRecord) bool {
	return len(rec.Title) >= 5 && len(rec.Abstract) >= 10
}

// firstFlexible cleans the flattened text of the first present candidate
// element. The presence check is structural: an existing element with
// empty text yields an empty field, while a missing element yields the
// fallback sentinel.
func firstFlexible(doc *Node, paths []string, fallback string) string {
	for _, p := range paths {
		if el := doc.Find(p); el != nil {
			return CleanText(el.FlattenText(), 0)
		}
	}
	return fallback
}

// flattenFirst returns the raw flattened text of the first present
// candidate element, or empty.
func flattenFirst(doc *Node, paths []string) string {
	for _, p := range paths {
		if el := doc.Find(p); el != nil {
			return el.FlattenText()
		}
	}
	return ""
}

// extractID tries document reference paths in priority order, taking the
// first non-empty text. With no reference found, the id is derived from a
// hash of the document's flattened text, so identical input always yields
// the same id.
func extractID(doc *Node) string {
	for _, p := range idPaths {
		if el := doc.Find(p); el != nil {
			if id := strings.TrimSpace(el.Text); id != "" {
				return id
			}
		}
	}

	sum := sha256.Sum256([]byte(doc.FlattenText()))
	id := fmt.Sprintf("PATENT_%x", sum)
	return id[:maxFallbackIDLen]
}

// extractAssignee locates the assignee block and prefers an organization
// name, falling back to a composed person name, then to the sentinel.
func extractAssignee(doc *Node) string {
	for _, p := range assigneePaths {
		block := doc.Find(p)
		if block == nil {
			continue
		}

		for _, op := range orgNamePaths {
			if org := block.Find(op); org != nil {
				if name := strings.TrimSpace(org.Text); name != "" {
					return name
				}
			}
		}

		first := block.Find("first-name")
		last := block.Find("last-name")
		if first != nil && last != nil {
			name := strings.TrimSpace(strings.TrimSpace(first.Text) + " " + strings.TrimSpace(last.Text))
			if name != "" {
				return name
			}
		}
	}
	return types.UnknownAssignee
}

// extractInventors scans every inventor occurrence across the whole
// document and accumulates distinct names in first-seen order.
func extractInventors(doc *Node) []string {
	var inventors []string
	seen := make(map[string]struct{})

	for _, p := range inventorPaths {
		for _, inv := range doc.FindAll(p) {
			first := inv.Find("first-name")
			last := inv.Find("last-name")
			if first == nil || last == nil {
				continue
			}
			name := strings.TrimSpace(strings.TrimSpace(first.Text) + " " + strings.TrimSpace(last.Text))
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			inventors = append(inventors, name)
		}
	}

	if len(inventors) == 0 {
		return []string{types.UnknownInventor}
	}
	return inventors
}

// extractDate resolves the first candidate with non-empty text and
// normalizes it; absent dates default to January 1st of the current year.
func extractDate(doc *Node, paths []string) string {
	for _, p := range paths {
		if el := doc.Find(p); el != nil {
			if raw := strings.TrimSpace(el.Text); raw != "" {
				return NormalizeDate(raw)
			}
		}
	}
	return DefaultDate()
}

// extractClassifications collects every IPC code in source order, falling
// back to prefixed national codes, then to the default class.
func extractClassifications(doc *Node) []string {
	var codes []string

	for _, p := range ipcPaths {
		for _, el := range doc.FindAll(p) {
			if code := strings.TrimSpace(el.Text); code != "" {
				codes = append(codes, code)
			}
		}
	}

	if len(codes) == 0 {
		for _, p := range nationalClassPaths {
			for _, el := range doc.FindAll(p) {
				if code := strings.TrimSpace(el.Text); code != "" {
					codes = append(codes, nationalClassPrefix+code)
				}
			}
		}
	}

	if len(codes) == 0 {
		return []string{types.DefaultIPCClass}
	}
	return codes
}
