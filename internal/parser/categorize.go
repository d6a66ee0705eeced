// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"strings"

	"github.com/pdiddy/patent-engine/pkg/types"
)

// categoryRule maps trigger substrings to a specific category. Triggers
// are IPC code prefixes or lower-cased keyword fragments; a trigger fires
// when found in the lower-cased title or inside the classification code.
type categoryRule struct {
	label    string
	triggers []string
}

// specificCategories is evaluated in order; the first rule with any firing
// trigger wins. New schema variants extend this table rather than adding
// branches.
var specificCategories = []categoryRule{
	{"artificial_intelligence", []string{"G06N", "AI", "machine learning", "neural network"}},
	{"telecommunications", []string{"H04", "communication", "wireless", "network"}},
	{"biotechnology", []string{"C12", "A61", "genetic", "biological", "medical"}},
	{"semiconductors", []string{"H01L", "semiconductor", "transistor", "chip"}},
	{"automotive", []string{"B60", "vehicle", "automotive", "car"}},
	{"energy", []string{"H02", "F03", "solar", "battery", "energy"}},
}

// sectionCategories maps the leading IPC section letter to a broad label.
var sectionCategories = map[byte]string{
	'A': "human_necessities",
	'B': "performing_operations",
	'C': "chemistry_metallurgy",
	'D': "textiles_paper",
	'E': "fixed_constructions",
	'F': "mechanical_engineering",
	'G': "physics",
	'H': "electricity",
}

// Categorize derives a category label from a classification code and a
// title. Specific categories take priority over the IPC section fallback;
// the result is deterministic for identical input.
func Categorize(ipcClass, title string) string {
	if ipcClass == "" {
		ipcClass = types.DefaultIPCClass
	}
	titleLower := strings.ToLower(title)

	for _, rule := range specificCategories {
		for _, trigger := range rule.triggers {
			if strings.Contains(titleLower, strings.ToLower(trigger)) ||
				strings.Contains(ipcClass, trigger) {
				return rule.label
			}
		}
	}

	first := byte(strings.ToUpper(ipcClass)[0])
	if label, ok := sectionCategories[first]; ok {
		return label
	}
	return "other"
}
