package behavior

import (
	"sort"
	"strings"
)

// Blacklist is a case-insensitive set of disabled behavior names (spec.md
// §3, §4.6). A blacklisted behavior is silently rejected except when its
// param is a reply channel, in which case the engine sends an empty reply
// and still consumes the query (spec.md §4.6, §7).
type Blacklist struct {
	names map[string]bool
}

// NewBlacklist builds a Blacklist from a seed list, typically sourced from
// engine configuration (internal/rlvconfig).
func NewBlacklist(seed []string) *Blacklist {
	bl := &Blacklist{names: make(map[string]bool, len(seed))}
	for _, n := range seed {
		bl.Add(n)
	}
	return bl
}

// Add disables a behavior name.
func (b *Blacklist) Add(name string) {
	b.names[strings.ToLower(strings.TrimSpace(name))] = true
}

// Remove re-enables a behavior name.
func (b *Blacklist) Remove(name string) {
	delete(b.names, strings.ToLower(strings.TrimSpace(name)))
}

// Contains reports whether name (any case) is disabled.
func (b *Blacklist) Contains(name string) bool {
	return b.names[strings.ToLower(strings.TrimSpace(name))]
}

// MatchingSubstring returns the disabled names containing substr
// (case-insensitive), sorted, for @getblacklist:substr.
func (b *Blacklist) MatchingSubstring(substr string) []string {
	substr = strings.ToLower(substr)
	var out []string
	for n := range b.names {
		if substr == "" || strings.Contains(n, substr) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// All returns every disabled name, sorted.
func (b *Blacklist) All() []string {
	return b.MatchingSubstring("")
}
