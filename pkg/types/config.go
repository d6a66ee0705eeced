// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ParserConfig holds settings for the XML parsing stage.
type ParserConfig struct {
	// InputDir is the directory scanned recursively for *.xml files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputFile receives the accepted records as a JSON array.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// MaxFiles caps how many XML files one run processes. Zero means
	// unlimited.
	MaxFiles int `json:"max_files" yaml:"max_files"`

	// MaxDocsPerStream caps how many document units are taken from a
	// single input stream. Zero means unlimited.
	MaxDocsPerStream int `json:"max_docs_per_stream" yaml:"max_docs_per_stream"`

	// MaxRecordsPerFile caps how many accepted records one file may
	// contribute. Zero means unlimited.
	MaxRecordsPerFile int `json:"max_records_per_file" yaml:"max_records_per_file"`
}

// IndexConfig holds settings for the search index store.
type IndexConfig struct {
	// DBPath is the SQLite database file (default "patent_search.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// BusyTimeout bounds how long a call waits on the database lock
	// before failing with a retryable error (default 30s).
	BusyTimeout time.Duration `json:"busy_timeout" yaml:"busy_timeout"`
}

// SearchConfig holds settings for the query stage.
type SearchConfig struct {
	// MaxResults is the default result limit (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// CandidateLimit caps how many rows the index scan retrieves before
	// re-ranking. Zero means use the per-query result limit, which also
	// bounds candidate count and can under-rank when more candidates
	// match than the limit admits.
	CandidateLimit int `json:"candidate_limit" yaml:"candidate_limit"`
}

// ServerConfig holds settings for the HTTP API adapter.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowOrigins lists CORS origins; empty allows all.
	AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Parser ParserConfig `json:"parser" yaml:"parser"`
	Index  IndexConfig  `json:"index" yaml:"index"`
	Search SearchConfig `json:"search" yaml:"search"`
	Server ServerConfig `json:"server" yaml:"server"`
}
