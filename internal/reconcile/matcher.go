// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"strings"

	"github.com/pdiddy/manifest-recon/internal/manifest"
	"github.com/pdiddy/manifest-recon/pkg/types"
)

// RefSet holds the membership sets for one reference manifest: normalized
// names and lower-cased tickets. Built once per table so the pass stays
// linear; classification is two map lookups, not a pairwise scan.
type RefSet struct {
	names   map[string]struct{}
	tickets map[string]struct{}
}

// BuildRefSet precomputes the membership sets for a reference table.
func BuildRefSet(t *manifest.Table) RefSet {
	s := RefSet{
		names:   make(map[string]struct{}, t.Len()),
		tickets: make(map[string]struct{}, t.Len()),
	}
	for i := 0; i < t.Len(); i++ {
		s.names[NormalizeName(t.Name(i))] = struct{}{}
		s.tickets[strings.ToLower(t.Ticket(i))] = struct{}{}
	}
	return s
}

// Contains reports whether both keys are members: the normalized name in
// the name set AND the lower-cased ticket in the ticket set. The two
// predicates are independent lookups; both must hold.
func (s RefSet) Contains(normName, lowerTicket string) bool {
	if _, ok := s.names[normName]; !ok {
		return false
	}
	_, ok := s.tickets[lowerTicket]
	return ok
}

// Classify matches one primary row against the two reference sets.
// Evaluation order is fixed: A first, then B, first match wins. A row
// satisfying both sets classifies MatchA; that is a policy choice carried
// over from the source datasets, not an error. Homonyms disambiguate only
// through the ticket conjunction; there is no scoring fallback.
func Classify(name, ticket string, a, b RefSet) types.Match {
	normName := NormalizeName(name)
	lowerTicket := strings.ToLower(ticket)

	if a.Contains(normName, lowerTicket) {
		return types.MatchA
	}
	if b.Contains(normName, lowerTicket) {
		return types.MatchB
	}
	return types.MatchNone
}
