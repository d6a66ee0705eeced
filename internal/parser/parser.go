// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/patent-engine/pkg/types"
)

// BatchSummary holds per-item outcome counts from a parsing run. Bad
// units never abort a batch; they are counted here instead.
type BatchSummary struct {
	// Files is the number of XML files processed.
	Files int

	// Units is the number of document units the splitter produced.
	Units int

	// Accepted is the number of records that passed validation.
	Accepted int

	// Rejected counts candidates discarded by validation.
	Rejected int

	// ParseFailed counts units that did not parse into a tree.
	ParseFailed int
}

// Total returns the number of document units processed.
func (s BatchSummary) Total() int {
	return s.Accepted + s.Rejected + s.ParseFailed
}

func (s *BatchSummary) add(o BatchSummary) {
	s.Files += o.Files
	s.Units += o.Units
	s.Accepted += o.Accepted
	s.Rejected += o.Rejected
	s.ParseFailed += o.ParseFailed
}

// patentContainerPaths locate patent documents nested inside a larger
// wrapper document.
var patentContainerPaths = []string{
	"us-patent-application",
	"patent-application-publication",
	"us-patent-grant",
}

// ParseStream splits the input into document units and extracts a record
// candidate from each. Per-unit failures are recovered locally and
// counted; the stream as a whole never fails. Progress lines go to w.
func ParseStream(r io.Reader, cfg types.ParserConfig, w io.Writer) ([]types.PatentRecord, BatchSummary) {
	var summary BatchSummary

	data, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(w, "failed reading stream: %v\n", err)
		return nil, summary
	}

	units := SplitDocuments(string(data))
	if cfg.MaxDocsPerStream > 0 && len(units) > cfg.MaxDocsPerStream {
		units = units[:cfg.MaxDocsPerStream]
	}
	summary.Units = len(units)
	if len(units) == 0 {
		fmt.Fprintf(w, "no document units found in stream\n")
		return nil, summary
	}

	var records []types.PatentRecord
	for i, unit := range units {
		doc, err := ParseTreeString(unit)
		if err != nil {
			fmt.Fprintf(w, "unit %d: parse error: %v\n", i+1, err)
			summary.ParseFailed++
			continue
		}

		for _, patent := range patentElements(doc) {
			rec := ExtractRecord(patent)
			if rec == nil {
				summary.Rejected++
				continue
			}
			summary.Accepted++
			records = append(records, *rec)
			if cfg.MaxRecordsPerFile > 0 && len(records) >= cfg.MaxRecordsPerFile {
				return records, summary
			}
		}
	}

	return records, summary
}

// patentElements returns the patent documents within a parsed tree: nested
// container matches when present, else the root itself when it is a patent
// document variant.
func patentElements(doc *Node) []*Node {
	var patents []*Node
	for _, p := range patentContainerPaths {
		patents = append(patents, doc.FindAll(p)...)
	}
	if len(patents) > 0 {
		return patents
	}

	if strings.HasSuffix(doc.Name, "patent-application") ||
		strings.HasSuffix(doc.Name, "patent-grant") ||
		strings.Contains(strings.ToLower(doc.Name), "patent") {
		return []*Node{doc}
	}
	return nil
}

// ParseFile parses one XML file through the stream pipeline.
func ParseFile(path string, cfg types.ParserConfig, w io.Writer) ([]types.PatentRecord, BatchSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, BatchSummary{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, summary := ParseStream(f, cfg, w)
	summary.Files = 1
	return records, summary, nil
}

// ParseDir walks cfg.InputDir for *.xml files and parses each. Only an
// unreadable input directory propagates; per-file and per-unit failures
// are absorbed into the summary.
func ParseDir(cfg types.ParserConfig, w io.Writer) ([]types.PatentRecord, BatchSummary, error) {
	var files []string
	err := filepath.WalkDir(cfg.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".xml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, BatchSummary{}, fmt.Errorf("scanning %s: %w", cfg.InputDir, err)
	}

	if cfg.MaxFiles > 0 && len(files) > cfg.MaxFiles {
		files = files[:cfg.MaxFiles]
	}

	var (
		all     []types.PatentRecord
		summary BatchSummary
	)
	for i, path := range files {
		fmt.Fprintf(w, "file %d/%d: %s\n", i+1, len(files), filepath.Base(path))

		records, fileSummary, err := ParseFile(path, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", filepath.Base(path), err)
			fileSummary.Files = 1
			summary.add(fileSummary)
			continue
		}
		all = append(all, records...)
		summary.add(fileSummary)

		fmt.Fprintf(w, "  extracted %d records (total %d)\n", len(records), len(all))
	}

	fmt.Fprintf(w, "\nfiles: %d, units: %d, accepted: %d, rejected: %d, parse-failed: %d\n",
		summary.Files, summary.Units, summary.Accepted, summary.Rejected, summary.ParseFailed)

	return all, summary, nil
}
