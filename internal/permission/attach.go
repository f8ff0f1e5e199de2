package permission

import (
	"strings"

	"rlv/internal/inventory"
	"rlv/internal/lockfolder"
	"rlv/internal/rlvconst"
)

// CanWear reports whether item (not yet worn or attached) may be put on,
// per spec.md §4.5's Attach/Detach paragraph. designated is the attachment
// point the item would occupy once attached, as derived from its name/folder
// tags — the item's own AttachedTo is meaningless before it is attached.
// locks is the current folder lock map, used only when item sits in the
// shared tree.
func (e *Evaluator) CanWear(item *inventory.Item, designated rlvconst.AttachPoint, locks lockfolder.Map) bool {
	if item.WornOn != rlvconst.WearableNone && e.layerForbidden("addoutfit", item.WornOn) {
		return false
	}
	if e.pointForbidden("addattach", designated) {
		return false
	}
	return e.placementAllows(item, locks, true)
}

// CanRemove reports whether a currently worn/attached item may be taken
// off, per the same paragraph plus the detach-specific `detach` walk.
func (e *Evaluator) CanRemove(item *inventory.Item, locks lockfolder.Map) bool {
	if item.IsWorn && e.layerForbidden("remoutfit", item.WornOn) {
		return false
	}
	if item.IsAttached && e.pointForbidden("remattach", item.AttachedTo) {
		return false
	}
	if e.detachWalkForbids(item) {
		return false
	}
	return e.placementAllows(item, locks, false)
}

// layerForbidden implements "forbid if wearable-type is restricted by
// addoutfit/remoutfit": an empty-arg restriction forbids every layer, an
// argument forbids the matching layer (spec.md §4.5).
func (e *Evaluator) layerForbidden(kind string, w rlvconst.WearableType) bool {
	for _, r := range e.store.Snapshot(behaviorKindOf(kind), "") {
		if len(r.Args) == 0 {
			return true
		}
		if matchesWearableArg(r.Args[0], w) {
			return true
		}
	}
	return false
}

// pointForbidden is layerForbidden's counterpart for addattach/remattach
// against an attachment point.
func (e *Evaluator) pointForbidden(kind string, p rlvconst.AttachPoint) bool {
	for _, r := range e.store.Snapshot(behaviorKindOf(kind), "") {
		if len(r.Args) == 0 {
			return true
		}
		if matchesAttachArg(r.Args[0], p) {
			return true
		}
	}
	return false
}

// detachWalkForbids implements "for detach, also walk detach restrictions:
// empty-arg restriction forbids detaching that issuer's own item; arg
// restriction forbids detaching items at that point." The issuer's own item
// is the attachment the restriction came from, identified by the item's
// attached prim id.
func (e *Evaluator) detachWalkForbids(item *inventory.Item) bool {
	for _, r := range e.store.Snapshot("detach", "") {
		if len(r.Args) == 0 {
			if item.AttachedPrimID != "" && item.AttachedPrimID == r.IssuerPrimID {
				return true
			}
			continue
		}
		if item.IsAttached && matchesAttachArg(r.Args[0], item.AttachedTo) {
			return true
		}
	}
	return false
}

// placementAllows implements the shared-tree-vs-external half of the
// paragraph: shared items additionally need sharedwear/sharedunwear
// unrestricted and the enclosing folder's lock record to permit the
// operation; external items need unsharedwear/unsharedunwear unrestricted.
func (e *Evaluator) placementAllows(item *inventory.Item, locks lockfolder.Map, wearing bool) bool {
	if item.InShared() {
		kind := "sharedunwear"
		if wearing {
			kind = "sharedwear"
		}
		if e.IsRestricted(behaviorKindOf(kind)) {
			return false
		}
		if rec, ok := locks[item.ParentFolder]; ok {
			if wearing && !rec.CanAttach() {
				return false
			}
			if !wearing && !rec.CanDetach() {
				return false
			}
		}
		return true
	}
	kind := "unsharedunwear"
	if wearing {
		kind = "unsharedwear"
	}
	return !e.IsRestricted(behaviorKindOf(kind))
}

func matchesWearableArg(arg string, w rlvconst.WearableType) bool {
	name := strings.TrimPrefix(arg, "wearable:")
	got, ok := rlvconst.LookupWearable(name)
	return ok && got == w
}

func matchesAttachArg(arg string, p rlvconst.AttachPoint) bool {
	name := strings.TrimPrefix(arg, "attachpt:")
	got, ok := rlvconst.LookupAttachPoint(name)
	return ok && got == p
}
