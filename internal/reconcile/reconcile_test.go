package reconcile

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manifest-recon/pkg/types"
)

func TestRunEndToEnd(t *testing.T) {
	primary := table(t, `name,ticket,fare
"Smith, Mr. John",A/5 21171,7.25
"Doe, Jane",113803,53.10
`)
	refA := table(t, "name,ticket\n\"Smith, Mr. John\",A/5 21171\n")
	refB := table(t, "name,ticket\n")

	out := Run(primary, refA, refB)

	if len(out.Matches) != 2 {
		t.Fatalf("len(Matches) = %d, want 2", len(out.Matches))
	}
	if out.Matches[0] != types.MatchA {
		t.Errorf("row 1 = %v, want MatchA", out.Matches[0])
	}
	if out.Matches[1] != types.MatchNone {
		t.Errorf("row 2 = %v, want MatchNone", out.Matches[1])
	}

	want := types.Summary{
		Rows:           2,
		MatchedA:       1,
		Unmatched:      1,
		UnmatchedNames: []string{"Doe, Jane"},
	}
	if out.Summary.MatchedA != want.MatchedA || out.Summary.Unmatched != want.Unmatched ||
		out.Summary.Rows != want.Rows {
		t.Errorf("summary = %+v, want %+v", out.Summary, want)
	}
	if len(out.Summary.UnmatchedNames) != 1 || out.Summary.UnmatchedNames[0] != "Doe, Jane" {
		t.Errorf("unmatched names = %v, want [Doe, Jane]", out.Summary.UnmatchedNames)
	}
}

// Output order and count match the input exactly; downstream consumers
// index by original position.
func TestRunPreservesRowOrder(t *testing.T) {
	primary := table(t, `name,ticket
"Zeta, Ms. A",1
"Alpha, Mr. B",2
"Mid, Mrs. C",3
`)
	refA := table(t, "name,ticket\n\"Mid, Mrs. C\",3\n")
	refB := table(t, "name,ticket\n\"Zeta, Ms. A\",1\n")

	out := Run(primary, refA, refB)

	wantMatches := []types.Match{types.MatchB, types.MatchNone, types.MatchA}
	if len(out.Matches) != primary.Len() {
		t.Fatalf("len(Matches) = %d, want %d", len(out.Matches), primary.Len())
	}
	for i, want := range wantMatches {
		if out.Matches[i] != want {
			t.Errorf("Matches[%d] = %v, want %v", i, out.Matches[i], want)
		}
	}
}

func TestFormatSummaryListsUnmatched(t *testing.T) {
	primary := table(t, "name,ticket\n\"Doe, Jane\",113803\n")
	empty := table(t, "name,ticket\n")

	out := Run(primary, empty, empty)

	var buf bytes.Buffer
	FormatSummary(out, &buf)

	got := buf.String()
	if !strings.Contains(got, "1 unmatched") {
		t.Errorf("summary missing unmatched count:\n%s", got)
	}
	if !strings.Contains(got, "Doe, Jane") {
		t.Errorf("summary missing unmatched name:\n%s", got)
	}
}

func TestFormatJSON(t *testing.T) {
	primary := table(t, "name,ticket\n\"Smith, Mr. John\",A/5 21171\n")
	refA := table(t, "name,ticket\n\"Smith, Mr. John\",A/5 21171\n")
	refB := table(t, "name,ticket\n")

	out := Run(primary, refA, refB)

	var buf bytes.Buffer
	if err := FormatJSON(out, &buf); err != nil {
		t.Fatal(err)
	}

	var got types.Summary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.MatchedA != 1 || got.Rows != 1 {
		t.Errorf("decoded summary = %+v", got)
	}
}

func TestMarshalReport(t *testing.T) {
	cfg := types.ReconcileConfig{
		PrimaryPath: "data/input/primary.csv",
		RefAPath:    "data/input/ref_a.csv",
		RefBPath:    "data/input/ref_b.csv",
	}
	sum := types.Summary{Rows: 3, MatchedA: 1, MatchedB: 1, Unmatched: 1, UnmatchedNames: []string{"Doe, Jane"}}

	data, err := MarshalReport(cfg, sum, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	var got Report
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Primary != cfg.PrimaryPath {
		t.Errorf("primary = %q, want %q", got.Primary, cfg.PrimaryPath)
	}
	if got.Summary.Unmatched != 1 || len(got.Summary.UnmatchedNames) != 1 {
		t.Errorf("summary = %+v", got.Summary)
	}
}
