// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/patent-engine/pkg/types"
)

func TestParseStream(t *testing.T) {
	input := sampleApplication("201", "Adaptive Brake Controller") + "\n" +
		sampleApplication("202", "Tiny") + "\n" + // title too short, rejected
		sampleApplication("203", "Solar Cell Coating")

	var buf bytes.Buffer
	records, summary := ParseStream(strings.NewReader(input), types.ParserConfig{}, &buf)

	assert.Equal(t, 3, summary.Units)
	assert.Equal(t, 2, summary.Accepted)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 0, summary.ParseFailed)
	assert.Equal(t, summary.Total(), summary.Accepted+summary.Rejected+summary.ParseFailed)

	require.Len(t, records, 2)
	assert.Equal(t, "201", records[0].ID)
	assert.Equal(t, "203", records[1].ID)
}

func TestParseStreamCountsParseFailures(t *testing.T) {
	// The second unit splits cleanly but its inner tags are mismatched,
	// so tree construction fails for it alone.
	input := sampleApplication("301", "Adaptive Brake Controller") + "\n" +
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE us-patent-application SYSTEM "us-patent-application-v44.dtd">
<us-patent-application>
<abstract><p>Mismatched</abstract></p>
</us-patent-application>`

	var buf bytes.Buffer
	records, summary := ParseStream(strings.NewReader(input), types.ParserConfig{}, &buf)

	assert.Equal(t, 1, summary.Accepted)
	assert.Equal(t, 1, summary.ParseFailed)
	assert.Len(t, records, 1)
	assert.Contains(t, buf.String(), "parse error")
}

func TestParseStreamEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	records, summary := ParseStream(strings.NewReader("no documents here"), types.ParserConfig{}, &buf)

	assert.Empty(t, records)
	assert.Equal(t, 0, summary.Units)
	assert.Contains(t, buf.String(), "no document units")
}

func TestParseStreamCaps(t *testing.T) {
	input := sampleApplication("401", "Adaptive Brake Controller") + "\n" +
		sampleApplication("402", "Solar Cell Coating") + "\n" +
		sampleApplication("403", "Gearbox Lubrication System")

	var buf bytes.Buffer
	records, summary := ParseStream(strings.NewReader(input),
		types.ParserConfig{MaxDocsPerStream: 2}, &buf)
	assert.Equal(t, 2, summary.Units)
	assert.Len(t, records, 2)

	records, _ = ParseStream(strings.NewReader(input),
		types.ParserConfig{MaxRecordsPerFile: 1}, &buf)
	assert.Len(t, records, 1)
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeXML(t, dir, "a.xml", sampleApplication("501", "Adaptive Brake Controller"))
	writeXML(t, dir, "b.xml",
		sampleApplication("502", "Solar Cell Coating")+"\n"+sampleApplication("503", "Tiny"))
	writeXML(t, filepath.Join(dir, "nested"), "c.xml", sampleApplication("504", "Gearbox Lubrication System"))

	var buf bytes.Buffer
	records, summary, err := ParseDir(types.ParserConfig{InputDir: dir}, &buf)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Files)
	assert.Equal(t, 3, summary.Accepted)
	assert.Equal(t, 1, summary.Rejected)
	assert.Len(t, records, 3)
}

func TestParseDirMissing(t *testing.T) {
	var buf bytes.Buffer
	_, _, err := ParseDir(types.ParserConfig{InputDir: filepath.Join(t.TempDir(), "absent")}, &buf)
	assert.Error(t, err)
}

func writeXML(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
