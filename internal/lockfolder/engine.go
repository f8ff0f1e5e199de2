// Package lockfolder projects attach-this/detach-this(-except) restrictions
// onto the shared folder tree to compute the set of locked folders
// (spec.md §4.4).
package lockfolder

import (
	"strings"

	"rlv/internal/behavior"
	"rlv/internal/inventory"
	"rlv/internal/restriction"
	"rlv/internal/rlvconst"
)

// Record is the per-folder lock state accumulated from every restriction
// targeting that folder, from any issuer (spec.md §3).
type Record struct {
	FolderID           string
	AttachRestrictions []restriction.Restriction
	DetachRestrictions []restriction.Restriction
	AttachExceptions   []restriction.Restriction
	DetachExceptions   []restriction.Restriction
}

// CanAttach reports whether the folder can receive a new attachment: no
// attach_restriction or at least one attach_exception (spec.md §3).
func (r *Record) CanAttach() bool {
	return len(r.AttachRestrictions) == 0 || len(r.AttachExceptions) > 0
}

// CanDetach is CanAttach's symmetric counterpart for detach.
func (r *Record) CanDetach() bool {
	return len(r.DetachRestrictions) == 0 || len(r.DetachExceptions) > 0
}

// IsLocked reports whether any restriction (attach or detach) names this
// folder.
func (r *Record) IsLocked() bool {
	return len(r.AttachRestrictions) > 0 || len(r.DetachRestrictions) > 0
}

// Map is the folder-id -> Record result of a derivation pass.
type Map map[string]*Record

func (m Map) record(folderID string) *Record {
	r, ok := m[folderID]
	if !ok {
		r = &Record{FolderID: folderID}
		m[folderID] = r
	}
	return r
}

// kind classifies one of the eight locking behavior kinds.
type kind struct {
	isDetach bool
	isAll    bool
	isExcept bool
}

var kinds = map[string]kind{
	"detachthis":           {isDetach: true},
	"detachallthis":        {isDetach: true, isAll: true},
	"attachthis":           {},
	"attachallthis":        {isAll: true},
	"detachthis_except":    {isDetach: true, isExcept: true},
	"detachallthis_except": {isDetach: true, isAll: true, isExcept: true},
	"attachthis_except":    {isExcept: true},
	"attachallthis_except": {isAll: true, isExcept: true},
}

// Derive rebuilds the full locked-folder map from scratch from the given
// restriction store and a fresh inventory Map (spec.md §4.4: rebuilt on
// @clear, on removal of a locking restriction, and on every fresh inventory
// load).
func Derive(store *restriction.Store, inv *inventory.Map) Map {
	result := make(Map)
	for behaviorName, k := range kinds {
		for _, r := range store.Snapshot(behavior.Kind(behaviorName), "") {
			applyOne(result, inv, r, k)
		}
	}
	return result
}

// ApplyAdd incrementally extends an existing Map with one newly added
// locking restriction, avoiding a full rebuild on the common case of a
// single @b:opt=n command (spec.md §4.4 "on a single add it is
// incrementally extended").
func ApplyAdd(result Map, inv *inventory.Map, r restriction.Restriction) {
	k, ok := kinds[string(r.Behavior)]
	if !ok {
		return
	}
	applyOne(result, inv, r, k)
}

func applyOne(result Map, inv *inventory.Map, r restriction.Restriction, k kind) {
	folders := startingFolders(inv, r, k)
	for _, f := range folders {
		lockFolder(result, inv, f.ID, r, k)
		if k.isAll {
			inv.WalkDescendants(f.ID, true, func(child *inventory.Folder) {
				if child.ID == f.ID {
					return
				}
				lockFolder(result, inv, child.ID, r, k)
			})
		}
	}
}

func lockFolder(result Map, inv *inventory.Map, folderID string, r restriction.Restriction, k kind) {
	rec := result.record(folderID)
	switch {
	case k.isDetach && k.isExcept:
		rec.DetachExceptions = append(rec.DetachExceptions, r)
	case k.isDetach:
		rec.DetachRestrictions = append(rec.DetachRestrictions, r)
	case k.isExcept:
		rec.AttachExceptions = append(rec.AttachExceptions, r)
	default:
		rec.AttachRestrictions = append(rec.AttachRestrictions, r)
	}
}

// startingFolders resolves a restriction's option to the set of folders it
// directly names, before any *-all* recursion (spec.md §4.4).
func startingFolders(inv *inventory.Map, r restriction.Restriction, k kind) []*inventory.Folder {
	if k.isExcept {
		// "_except forms take a path only."
		return resolvePathArg(inv, r)
	}
	if len(r.Args) == 0 {
		return foldersContainingPrimID(inv, r.IssuerPrimID)
	}
	arg := r.Args[0]
	switch {
	case strings.HasPrefix(arg, "wearable:"):
		return foldersContainingWearable(inv, arg[len("wearable:"):])
	case strings.HasPrefix(arg, "attachpt:"):
		return foldersContainingAttachPoint(inv, arg[len("attachpt:"):])
	case strings.HasPrefix(arg, "path:"):
		return resolvePathArg(inv, r)
	default:
		return nil
	}
}

func resolvePathArg(inv *inventory.Map, r restriction.Restriction) []*inventory.Folder {
	if len(r.Args) == 0 {
		return nil
	}
	path := strings.TrimPrefix(r.Args[0], "path:")
	f, ok := inv.ResolvePath(inv.Snapshot().RootID, path)
	if !ok {
		return nil
	}
	return []*inventory.Folder{f}
}

func uniqueFolders(ids map[string]bool, inv *inventory.Map) []*inventory.Folder {
	var out []*inventory.Folder
	for id := range ids {
		if f, ok := inv.Folder(id); ok {
			out = append(out, f)
		}
	}
	return out
}

func foldersContainingPrimID(inv *inventory.Map, primID string) []*inventory.Folder {
	ids := make(map[string]bool)
	for _, it := range inv.ItemsByPrimID(primID) {
		if it.InShared() {
			ids[it.ParentFolder] = true
		}
	}
	return uniqueFolders(ids, inv)
}

func foldersContainingWearable(inv *inventory.Map, name string) []*inventory.Folder {
	w, ok := rlvconst.LookupWearable(name)
	if !ok {
		return nil
	}
	ids := make(map[string]bool)
	for _, it := range inv.ItemsByWearable(w) {
		if it.InShared() {
			ids[it.ParentFolder] = true
		}
	}
	return uniqueFolders(ids, inv)
}

func foldersContainingAttachPoint(inv *inventory.Map, name string) []*inventory.Folder {
	p, ok := rlvconst.LookupAttachPoint(name)
	if !ok {
		return nil
	}
	ids := make(map[string]bool)
	for _, it := range inv.ItemsByAttachPoint(p) {
		if it.InShared() {
			ids[it.ParentFolder] = true
		}
	}
	return uniqueFolders(ids, inv)
}
