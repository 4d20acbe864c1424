// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"strings"
	"unicode"
)

// NormalizeName returns the canonical comparison key for a passenger name.
// It lower-cases the input and drops every double quote, parenthesis, and
// whitespace character anywhere in the string. The two source systems quote
// nicknames and space parenthetical maiden names differently; exact equality
// on raw names under-matches without this.
//
// Pure and idempotent; an empty or degenerate input normalizes to "".
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == '"' || r == '(' || r == ')' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
