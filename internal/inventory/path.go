package inventory

import "strings"

// ResolvePath walks a forward-slash path under the shared root, case
// insensitive. Each segment matches either a child's literal name or its
// name with one leading "."/"+"/"~" stripped. Among candidates for a
// segment, the matcher prefers:
//  1. the longest matching name,
//  2. an exact (unstripped) match over a stripped-prefix match,
//  3. first occurrence (stable iteration order) as a final tie break.
//
// (spec.md §3, "path resolution precedence", and the end-to-end scenario in
// spec.md §8.)
func (m *Map) ResolvePath(rootID, path string) (*Folder, bool) {
	cur, ok := m.snap.Folders[rootID]
	if !ok {
		return nil, false
	}
	segments := splitPath(path)
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		next, ok := m.bestChildMatch(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

type pathCandidate struct {
	folder  *Folder
	matched string // the name text that matched (for longest-match comparison)
	exact   bool   // true if matched against the unstripped name
	order   int
}

func (m *Map) bestChildMatch(parent *Folder, seg string) (*Folder, bool) {
	segLower := strings.ToLower(seg)
	var candidates []pathCandidate
	for i, childID := range parent.Children {
		child, ok := m.snap.Folders[childID]
		if !ok {
			continue
		}
		if strings.EqualFold(child.Name, seg) {
			candidates = append(candidates, pathCandidate{child, child.Name, true, i})
			continue
		}
		stripped := StrippedName(child.Name)
		if stripped != child.Name && strings.EqualFold(stripped, segLower) {
			candidates = append(candidates, pathCandidate{child, stripped, false, i})
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if betterCandidate(c, best) {
			best = c
		}
	}
	return best.folder, true
}

// betterCandidate reports whether a should replace b as the current best
// match, applying longest-match, then exact-over-stripped, then
// first-occurrence.
func betterCandidate(a, b pathCandidate) bool {
	if len(a.matched) != len(b.matched) {
		return len(a.matched) > len(b.matched)
	}
	if a.exact != b.exact {
		return a.exact
	}
	return a.order < b.order
}
