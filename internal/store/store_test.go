// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manifest-recon/internal/manifest"
	"github.com/pdiddy/manifest-recon/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(types.StoreConfig{DBPath: filepath.Join(t.TempDir(), "index", "manifest.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testTable(t *testing.T) *manifest.Table {
	t.Helper()
	tbl, err := manifest.Read(strings.NewReader(
		"PassengerId,Name,Ticket\n1,\"Smith, Mr. John\",A/5 21171\n2,\"Doe, Jane\",113803\n3,\"Roe, Mr. R\",555\n"))
	require.NoError(t, err)
	return tbl
}

func TestSaveAndStats(t *testing.T) {
	s := testStore(t)
	tbl := testTable(t)
	matches := []types.Match{types.MatchA, types.MatchNone, types.MatchB}

	require.NoError(t, s.Save(context.Background(), tbl, matches))

	sum, err := s.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, 1, sum.MatchedA)
	assert.Equal(t, 1, sum.MatchedB)
	assert.Equal(t, 1, sum.Unmatched)
	assert.Equal(t, []string{"Doe, Jane"}, sum.UnmatchedNames)
}

func TestUnmatchedPreservesRowOrder(t *testing.T) {
	s := testStore(t)
	tbl := testTable(t)
	matches := []types.Match{types.MatchNone, types.MatchA, types.MatchNone}

	require.NoError(t, s.Save(context.Background(), tbl, matches))

	names, err := s.Unmatched(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Smith, Mr. John", "Roe, Mr. R"}, names)
}

func TestSaveReplacesPriorContents(t *testing.T) {
	s := testStore(t)
	tbl := testTable(t)

	require.NoError(t, s.Save(context.Background(), tbl, []types.Match{types.MatchNone, types.MatchNone, types.MatchNone}))
	require.NoError(t, s.Save(context.Background(), tbl, []types.Match{types.MatchA, types.MatchA, types.MatchA}))

	sum, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, 3, sum.MatchedA)
	assert.Equal(t, 0, sum.Unmatched)
	assert.Empty(t, sum.UnmatchedNames)
}

func TestSaveCountMismatch(t *testing.T) {
	s := testStore(t)
	tbl := testTable(t)

	err := s.Save(context.Background(), tbl, []types.Match{types.MatchA})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not cover")
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New(types.StoreConfig{})
	require.Error(t, err)
}
