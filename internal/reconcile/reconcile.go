// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile matches a primary passenger manifest against two
// reference manifests and labels each row with its provenance.
//
// Matching is a conjunctive membership test (normalized name AND
// lower-cased ticket) against reference A first, then B. Rows matching
// neither stay in the output as unmatched and are surfaced for manual
// review; the pass never aborts on them.
package reconcile

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manifest-recon/internal/manifest"
	"github.com/pdiddy/manifest-recon/internal/sample"
	"github.com/pdiddy/manifest-recon/pkg/types"
)

// Outcome holds the per-row classifications, aligned with primary row
// order, plus the pass summary.
type Outcome struct {
	Matches []types.Match
	Summary types.Summary
}

// Run classifies every primary row against the two reference tables.
// Output order matches input order; each row is classified independently,
// with no loop-carried state beyond the two static reference sets.
func Run(primary, refA, refB *manifest.Table) Outcome {
	setA := BuildRefSet(refA)
	setB := BuildRefSet(refB)

	out := Outcome{
		Matches: make([]types.Match, primary.Len()),
		Summary: types.Summary{Rows: primary.Len()},
	}

	for i := 0; i < primary.Len(); i++ {
		m := Classify(primary.Name(i), primary.Ticket(i), setA, setB)
		out.Matches[i] = m
		switch m {
		case types.MatchA:
			out.Summary.MatchedA++
		case types.MatchB:
			out.Summary.MatchedB++
		default:
			out.Summary.Unmatched++
			out.Summary.UnmatchedNames = append(out.Summary.UnmatchedNames, primary.Name(i))
		}
	}

	return out
}

// FormatSummary writes a human-readable pass summary to w: counts per
// classification and the unmatched names for manual follow-up.
func FormatSummary(out Outcome, w io.Writer) {
	s := out.Summary
	fmt.Fprintf(w, "%d rows reconciled: %d from reference A, %d from reference B, %d unmatched\n",
		s.Rows, s.MatchedA, s.MatchedB, s.Unmatched)

	if s.Unmatched == 0 {
		return
	}

	fmt.Fprintln(w, "\nUnmatched names (review manually):")
	for _, name := range s.UnmatchedNames {
		fmt.Fprintf(w, "  %s\n", name)
	}
	if ex := sample.One(nil, s.UnmatchedNames); len(ex) == 1 && s.Unmatched > 1 {
		fmt.Fprintf(w, "\nSpot-check suggestion: %s\n", ex[0])
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
}

// FormatJSON writes the summary as indented JSON to w.
func FormatJSON(out Outcome, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Summary)
}

// Report is the YAML report written next to the enriched output.
type Report struct {
	GeneratedAt time.Time     `yaml:"generated_at"`
	Primary     string        `yaml:"primary"`
	RefA        string        `yaml:"ref_a"`
	RefB        string        `yaml:"ref_b"`
	Summary     types.Summary `yaml:"summary"`
}

// MarshalReport renders the report for cfg and summary as YAML.
func MarshalReport(cfg types.ReconcileConfig, s types.Summary, now time.Time) ([]byte, error) {
	r := Report{
		GeneratedAt: now,
		Primary:     cfg.PrimaryPath,
		RefA:        cfg.RefAPath,
		RefB:        cfg.RefBPath,
		Summary:     s,
	}
	data, err := yaml.Marshal(&r)
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return data, nil
}
