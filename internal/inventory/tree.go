// Package inventory models the shared RLV folder tree, the items it
// contains, and the denormalized lookup map built from a fresh snapshot on
// every query (spec.md §3).
package inventory

import (
	"strings"

	"rlv/internal/rlvconst"
)

// Folder is a node in the shared #RLV tree. Parent is a handle (an id into
// the owning Map's folder index), never an owning pointer — the tree is an
// arena, not a web of back-pointers (spec.md §9).
type Folder struct {
	ID       string
	Name     string
	ParentID string // empty for the root
	Children []string
	Items    []string
}

// IsHidden reports the "." prefix convention: excluded from recursive
// traversals unless the traversal starts here.
func (f *Folder) IsHidden() bool { return strings.HasPrefix(f.Name, ".") }

// ForcesOverAdd reports the "+" prefix convention: on attach, don't replace
// existing attachments at the same point.
func (f *Folder) ForcesOverAdd() bool { return strings.HasPrefix(f.Name, "+") }

// IsAliasRoot reports the "~" prefix convention used by outfit packs.
func (f *Folder) IsAliasRoot() bool { return strings.HasPrefix(f.Name, "~") }

// IsNoStrip reports whether the folder name opts its contents out of mass
// detach (case-insensitive substring "nostrip").
func (f *Folder) IsNoStrip() bool {
	return strings.Contains(strings.ToLower(f.Name), "nostrip")
}

// StrippedName removes a single leading "."/"+"/"~" prefix, used by path
// resolution when matching a folder segment that isn't found verbatim.
func StrippedName(name string) string {
	if name == "" {
		return name
	}
	switch name[0] {
	case '.', '+', '~':
		return name[1:]
	default:
		return name
	}
}

// Item is one placement of an inventory object: either a shared-tree member
// (ParentFolder set) or a worn item living outside #RLV (ExternalFolderID
// set). EntryID uniquely identifies this placement; ID is the real item
// identity and is NOT unique across a Snapshot — links let the same ID
// appear as a different entry in more than one folder (spec.md §3).
type Item struct {
	EntryID          string
	ID               string
	Name             string
	IsLink           bool
	ParentFolder     string // folder id, when in the shared tree
	ExternalFolderID string // opaque host folder id, when worn-but-unshared
	AttachedTo       rlvconst.AttachPoint
	IsAttached       bool
	AttachedPrimID   string
	WornOn           rlvconst.WearableType
	IsWorn           bool
	GestureActive    bool
}

// InShared reports whether the item lives in the #RLV tree.
func (it *Item) InShared() bool { return it.ParentFolder != "" }

// Snapshot is what the host's try_get_inventory_map callback returns
// (spec.md §6): the shared root plus every item worn outside it. Items is
// keyed by EntryID, not ID, so that linked placements of the same real item
// don't collide.
type Snapshot struct {
	RootID        string
	Folders       map[string]*Folder
	Items         map[string]*Item
	ExternalItems []*Item
}

// RootFolder is the conventional name of the shared tree's root.
const RootFolder = "#RLV"
