// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest loads and writes passenger manifest tables as CSV.
// A table is valid only if it carries the name and ticket columns the
// reconciliation pass keys on; any other columns pass through untouched.
package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/manifest-recon/pkg/types"
)

const (
	// ColName and ColTicket are the required columns. Header matching is
	// case-insensitive; the first matching column binds.
	ColName   = "name"
	ColTicket = "ticket"

	// MatchColumn is the derived column appended to the enriched output.
	MatchColumn = "match_source"
)

// Table is an ordered passenger manifest: a header plus rows in file order.
type Table struct {
	Columns []string
	Rows    [][]string

	nameIdx   int
	ticketIdx int
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Name returns the raw name cell of row i.
func (t *Table) Name(i int) string { return t.Rows[i][t.nameIdx] }

// Ticket returns the raw ticket cell of row i.
func (t *Table) Ticket(i int) string { return t.Rows[i][t.ticketIdx] }

// Load reads a manifest CSV. A missing file, an empty file, or a header
// without name/ticket columns is a configuration error that aborts the
// pass before any output is written.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return t, nil
}

// Read parses a manifest table from r. Split out from Load so tests and
// callers with in-memory data skip the filesystem.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty table: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	t := &Table{Columns: header, nameIdx: -1, ticketIdx: -1}
	for i, col := range header {
		switch {
		case t.nameIdx < 0 && strings.EqualFold(strings.TrimSpace(col), ColName):
			t.nameIdx = i
		case t.ticketIdx < 0 && strings.EqualFold(strings.TrimSpace(col), ColTicket):
			t.ticketIdx = i
		}
	}
	if t.nameIdx < 0 {
		return nil, fmt.Errorf("required column %q not found in header %v", ColName, header)
	}
	if t.ticketIdx < 0 {
		return nil, fmt.Errorf("required column %q not found in header %v", ColTicket, header)
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(t.Rows)+2, err)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// WriteEnriched writes the table plus the derived match column to path.
// Row order and count match the input exactly; unmatched rows get an empty
// cell, not a sentinel string.
func WriteEnriched(path string, t *Table, matches []types.Match) error {
	if len(matches) != t.Len() {
		return fmt.Errorf("match count %d does not cover %d rows", len(matches), t.Len())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(append(append([]string{}, t.Columns...), MatchColumn)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		out := append(append([]string{}, row...), matches[i].Cell())
		if err := w.Write(out); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output %s: %w", path, err)
	}
	return nil
}
