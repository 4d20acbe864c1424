// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Match identifies which reference manifest a primary row was reconciled
// against. The zero value is MatchNone.
type Match int

const (
	// MatchNone marks a row absent from both reference manifests.
	MatchNone Match = iota

	// MatchA marks a row found in reference manifest A.
	MatchA

	// MatchB marks a row found in reference manifest B.
	MatchB
)

// Cell returns the CSV encoding of the match: "0" for A, "1" for B, and an
// empty field for an unmatched row.
func (m Match) Cell() string {
	switch m {
	case MatchA:
		return "0"
	case MatchB:
		return "1"
	default:
		return ""
	}
}

// Label returns a short human-readable name for the match.
func (m Match) Label() string {
	switch m {
	case MatchA:
		return "ref-a"
	case MatchB:
		return "ref-b"
	default:
		return "unmatched"
	}
}

// Summary holds per-classification counts and the unmatched names from one
// reconciliation pass. UnmatchedNames preserves primary row order.
type Summary struct {
	Rows           int      `json:"rows" yaml:"rows"`
	MatchedA       int      `json:"matched_a" yaml:"matched_a"`
	MatchedB       int      `json:"matched_b" yaml:"matched_b"`
	Unmatched      int      `json:"unmatched" yaml:"unmatched"`
	UnmatchedNames []string `json:"unmatched_names" yaml:"unmatched_names"`
}
