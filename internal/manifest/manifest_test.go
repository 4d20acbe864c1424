// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manifest-recon/pkg/types"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
		check   func(t *testing.T, tbl *Table)
	}{
		{
			name: "binds required columns and keeps extras",
			csv:  "PassengerId,Name,Ticket,Fare\n1,\"Smith, Mr. John\",A/5 21171,7.25\n",
			check: func(t *testing.T, tbl *Table) {
				assert.Equal(t, 1, tbl.Len())
				assert.Equal(t, "Smith, Mr. John", tbl.Name(0))
				assert.Equal(t, "A/5 21171", tbl.Ticket(0))
				assert.Equal(t, []string{"PassengerId", "Name", "Ticket", "Fare"}, tbl.Columns)
			},
		},
		{
			name: "header matching is case-insensitive",
			csv:  "NAME,TICKET\nDoe,123\n",
			check: func(t *testing.T, tbl *Table) {
				assert.Equal(t, "Doe", tbl.Name(0))
				assert.Equal(t, "123", tbl.Ticket(0))
			},
		},
		{
			name: "quoted quote characters survive",
			csv:  "name,ticket\n\"Moran, Mr. James \"\"Jim\"\"\",C 123\n",
			check: func(t *testing.T, tbl *Table) {
				assert.Equal(t, `Moran, Mr. James "Jim"`, tbl.Name(0))
			},
		},
		{
			name: "header only is a valid empty table",
			csv:  "name,ticket\n",
			check: func(t *testing.T, tbl *Table) {
				assert.Equal(t, 0, tbl.Len())
			},
		},
		{
			name:    "missing name column",
			csv:     "passenger,ticket\nDoe,123\n",
			wantErr: `required column "name"`,
		},
		{
			name:    "missing ticket column",
			csv:     "name,fare\nDoe,7.25\n",
			wantErr: `required column "ticket"`,
		},
		{
			name:    "empty input",
			csv:     "",
			wantErr: "no header row",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Read(strings.NewReader(tt.csv))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, tbl)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening manifest")
}

func TestWriteEnriched(t *testing.T) {
	tbl, err := Read(strings.NewReader(
		"PassengerId,Name,Ticket\n1,\"Smith, Mr. John\",A/5 21171\n2,\"Doe, Jane\",113803\n3,\"Roe, Mr. R\",555\n"))
	require.NoError(t, err)

	matches := []types.Match{types.MatchA, types.MatchNone, types.MatchB}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteEnriched(path, tbl, matches))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4, "header plus one line per input row")

	assert.Equal(t, "PassengerId,Name,Ticket,match_source", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",0"), "matched-A row ends in 0: %q", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ","), "unmatched row ends in empty cell: %q", lines[2])
	assert.True(t, strings.HasSuffix(lines[3], ",1"), "matched-B row ends in 1: %q", lines[3])

	// Round-trip: order and count are untouched.
	back, err := Read(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Equal(t, tbl.Len(), back.Len())
	for i := 0; i < tbl.Len(); i++ {
		assert.Equal(t, tbl.Name(i), back.Name(i))
	}
}

func TestWriteEnrichedCountMismatch(t *testing.T) {
	tbl, err := Read(strings.NewReader("name,ticket\nDoe,123\n"))
	require.NoError(t, err)

	err = WriteEnriched(filepath.Join(t.TempDir(), "out.csv"), tbl, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not cover")
}
