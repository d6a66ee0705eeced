// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Sentinel values used when a source document carries no usable data for a
// field. Absence is always represented by a sentinel, never by a missing key.
const (
	UnknownAssignee = "Unknown Assignee"
	UnknownInventor = "Unknown Inventor"
	DefaultIPCClass = "G06F"
)

// PatentRecord is the canonical patent entity, the unit of storage and
// retrieval. All fields are always populated; see the sentinel constants.
type PatentRecord struct {
	// ID uniquely identifies the record. Derived from document reference
	// fields when present, otherwise a deterministic content hash.
	ID string `json:"id" yaml:"id"`

	Title       string `json:"title" yaml:"title"`
	Abstract    string `json:"abstract" yaml:"abstract"`
	Description string `json:"description" yaml:"description"`
	Claims      string `json:"claims" yaml:"claims"`

	// Assignee is the owning organization or person name.
	Assignee string `json:"assignee" yaml:"assignee"`

	// Inventors holds distinct inventor names in first-seen order.
	Inventors []string `json:"inventors" yaml:"inventors"`

	// ApplicationDate and PublicationDate are ISO calendar dates
	// (YYYY-MM-DD), never empty.
	ApplicationDate string `json:"application_date" yaml:"application_date"`
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// IPCClasses lists classification codes in source order; IPCClass is
	// the first element or DefaultIPCClass when none were found.
	IPCClasses []string `json:"ipc_classes" yaml:"ipc_classes"`
	IPCClass   string   `json:"ipc_class" yaml:"ipc_class"`

	// Category is the label derived from IPCClass and Title.
	Category string `json:"category" yaml:"category"`
}

// ScoredRecord pairs a record with its relevance score.
type ScoredRecord struct {
	PatentRecord `yaml:",inline"`
	Score        float64 `json:"score" yaml:"score"`
}

// FieldCount is one bucket of a grouped count aggregation.
type FieldCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Aggregations is a point-in-time snapshot of grouped counts over the
// stored record table.
type Aggregations struct {
	// TopAssignees holds the ten most frequent assignees, excluding
	// records with an empty assignee, descending by count.
	TopAssignees []FieldCount `json:"top_assignees" yaml:"top_assignees"`

	// Categories holds the full category distribution, descending by count.
	Categories []FieldCount `json:"categories" yaml:"categories"`

	// IPCClasses holds the ten most frequent classification codes.
	IPCClasses []FieldCount `json:"ipc_classes" yaml:"ipc_classes"`

	// ByYear buckets records by the year prefix of the publication date,
	// descending by year.
	ByYear []FieldCount `json:"by_year" yaml:"by_year"`

	TotalPatents int `json:"total_patents" yaml:"total_patents"`
}
