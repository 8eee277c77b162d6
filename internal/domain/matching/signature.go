package matching

import (
	"sort"
	"strings"
)

// Signatures identify matches independently of discovery order, so two
// snapshots can be diffed to find what is genuinely new. An exact match
// signature is the unordered posting-ID pair; a cycle signature is the
// sorted set of posting IDs in the loop.

// ExactSignature returns the canonical identifier of a two-way match.
func ExactSignature(a, b Posting) string {
	x, y := a.ID.String(), b.ID.String()
	if y < x {
		x, y = y, x
	}
	return "exact:" + x + "|" + y
}

// Signature returns the canonical identifier of a cycle match.
func (c Cycle) Signature() string {
	ids := make([]string, 0, len(c.Postings))
	for _, p := range c.Postings {
		ids = append(ids, p.ID.String())
	}
	sort.Strings(ids)
	return "cycle:" + strings.Join(ids, "|")
}

// Delta returns the signatures present in current but absent from previous,
// sorted. Passing state in explicitly keeps the comparison pure: the caller
// owns where the previous set came from and where the current one goes.
func Delta(previous, current []string) []string {
	seen := make(map[string]struct{}, len(previous))
	for _, s := range previous {
		seen[s] = struct{}{}
	}
	var fresh []string
	for _, s := range current {
		if _, ok := seen[s]; !ok {
			fresh = append(fresh, s)
		}
	}
	sort.Strings(fresh)
	return fresh
}
