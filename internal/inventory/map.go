package inventory

import (
	"sort"
	"strings"

	"rlv/internal/rlvconst"
)

// Map is the denormalized view built once per query from a Snapshot:
// indexes by id, prim id, attachment point, and wearable type, plus path
// resolution over the folder tree (spec.md §3).
type Map struct {
	snap *Snapshot

	byID         map[string][]*Item
	byPrimID     map[string][]*Item
	byAttachPt   map[rlvconst.AttachPoint][]*Item
	byWearable   map[rlvconst.WearableType][]*Item
}

// Build constructs a Map from a fresh Snapshot. Called once per command that
// needs inventory context (spec.md §4.4: "rebuilt from scratch ... on every
// load of a fresh inventory snapshot").
func Build(snap *Snapshot) *Map {
	m := &Map{
		snap:       snap,
		byID:       make(map[string][]*Item),
		byPrimID:   make(map[string][]*Item),
		byAttachPt: make(map[rlvconst.AttachPoint][]*Item),
		byWearable: make(map[rlvconst.WearableType][]*Item),
	}
	all := make([]*Item, 0, len(snap.Items)+len(snap.ExternalItems))
	for _, it := range snap.Items {
		all = append(all, it)
	}
	all = append(all, snap.ExternalItems...)

	for _, it := range all {
		m.byID[it.ID] = append(m.byID[it.ID], it)
		if it.AttachedPrimID != "" {
			m.byPrimID[it.AttachedPrimID] = append(m.byPrimID[it.AttachedPrimID], it)
		}
		if it.IsAttached {
			m.byAttachPt[it.AttachedTo] = append(m.byAttachPt[it.AttachedTo], it)
		}
		if it.IsWorn {
			m.byWearable[it.WornOn] = append(m.byWearable[it.WornOn], it)
		}
	}
	return m
}

func (m *Map) Snapshot() *Snapshot { return m.snap }

func (m *Map) Folder(id string) (*Folder, bool) {
	f, ok := m.snap.Folders[id]
	return f, ok
}

func (m *Map) ItemsByID(id string) []*Item       { return m.byID[id] }
func (m *Map) ItemsByPrimID(id string) []*Item   { return m.byPrimID[id] }
func (m *Map) ItemsByAttachPoint(p rlvconst.AttachPoint) []*Item { return m.byAttachPt[p] }
func (m *Map) ItemsByWearable(w rlvconst.WearableType) []*Item   { return m.byWearable[w] }

// ItemsInFolder returns the items directly contained by folder id (shared
// tree only).
func (m *Map) ItemsInFolder(folderID string) []*Item {
	f, ok := m.snap.Folders[folderID]
	if !ok {
		return nil
	}
	out := make([]*Item, 0, len(f.Items))
	for _, id := range f.Items {
		if it, ok := m.snap.Items[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

// Children returns the child folders of folderID, in no particular order;
// callers that need stable output sort it themselves.
func (m *Map) Children(folderID string) []*Folder {
	f, ok := m.snap.Folders[folderID]
	if !ok {
		return nil
	}
	out := make([]*Folder, 0, len(f.Children))
	for _, id := range f.Children {
		if c, ok := m.snap.Folders[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// WalkDescendants invokes fn for folderID and every descendant folder,
// depth-first, skipping hidden ("."-prefixed) subfolders unless
// includeHiddenChildren is true. It always visits folderID itself even if
// folderID is hidden (a traversal "starting at" a hidden folder still
// descends into it, per spec.md §3).
func (m *Map) WalkDescendants(folderID string, includeHiddenChildren bool, fn func(*Folder)) {
	visited := make(map[string]bool)
	var walk func(id string, isRoot bool)
	walk = func(id string, isRoot bool) {
		if visited[id] {
			return // defensive cycle guard, spec.md §4.4
		}
		visited[id] = true
		f, ok := m.snap.Folders[id]
		if !ok {
			return
		}
		if !isRoot && f.IsHidden() && !includeHiddenChildren {
			return
		}
		fn(f)
		for _, childID := range f.Children {
			walk(childID, false)
		}
	}
	walk(folderID, true)
}

// PathOf renders the "/"-joined path of folderID relative to (and excluding)
// the shared root, the form @getpath and @findfolder replies use. The empty
// string is returned for the root itself or an unknown folder.
func (m *Map) PathOf(folderID string) string {
	var segs []string
	seen := make(map[string]bool)
	for id := folderID; id != "" && id != m.snap.RootID; {
		if seen[id] {
			return ""
		}
		seen[id] = true
		f, ok := m.snap.Folders[id]
		if !ok {
			return ""
		}
		segs = append(segs, f.Name)
		id = f.ParentID
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, "/")
}

// FindFolderByName performs the substring search used by @findfolder(s):
// terms joined with "&&" are each required as a case-insensitive substring
// of the candidate folder's name. Folders whose name starts with "." or "~"
// are excluded. stopAtFirst limits the search to the first match found in
// an unspecified but stable (sorted by id) order.
func (m *Map) FindFolderByName(terms []string, stopAtFirst bool) []*Folder {
	var out []*Folder
	ids := make([]string, 0, len(m.snap.Folders))
	for id := range m.snap.Folders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		f := m.snap.Folders[id]
		if strings.HasPrefix(f.Name, ".") || strings.HasPrefix(f.Name, "~") {
			continue
		}
		lower := strings.ToLower(f.Name)
		match := true
		for _, term := range terms {
			if !strings.Contains(lower, strings.ToLower(term)) {
				match = false
				break
			}
		}
		if match {
			out = append(out, f)
			if stopAtFirst {
				return out
			}
		}
	}
	return out
}
