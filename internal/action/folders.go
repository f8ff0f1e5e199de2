package action

import (
	"context"
	"strings"

	"rlv/internal/hostapi"
	"rlv/internal/inventory"
	"rlv/internal/lockfolder"
	"rlv/internal/rlvconst"
	"rlv/internal/rlvparser"
)

// attachFlags maps each spelling of the attach-a-folder force command onto
// its (replace, recursive) pair. "overorreplace" spellings replace despite
// containing "over", so this is a table, not a substring test.
var attachFlags = map[string]struct{ replace, recursive bool }{
	"attach":                 {replace: true},
	"addoutfit":              {replace: true},
	"attachoverorreplace":    {replace: true},
	"attachall":              {replace: true, recursive: true},
	"addoutfitall":           {replace: true, recursive: true},
	"attachalloverorreplace": {replace: true, recursive: true},
	"attachover":             {},
	"attachallover":          {recursive: true},
}

// attachFolder implements "Attach a folder" (spec.md §4.7): attach[:path],
// attachall, attachover, attachallover and their addoutfit*/*overorreplace
// aliases all reduce to (replace, recursive) flags over the same handler.
func (x *Executor) attachFolder(ctx context.Context, cmd rlvparser.Command, inv *inventory.Map, locks lockfolder.Map) error {
	flags, ok := attachFlags[string(cmd.Behavior)]
	if !ok {
		return nil
	}
	recursive, replace := flags.recursive, flags.replace

	folder := resolveFolderFromPathArg(inv, cmd)
	if folder == nil {
		return nil
	}
	if strings.HasPrefix(folder.Name, "+") {
		replace = false
	}

	items := collectFolderItems(inv, folder, recursive)
	var toAttach []*inventory.Item
	for _, it := range items {
		if it.IsWorn || it.IsAttached {
			continue
		}
		if !x.Eval.CanWear(it, designatedPoint(inv, it), locks) {
			continue
		}
		toAttach = append(toAttach, it)
	}
	return x.dispatchAttach(ctx, dedupeByID(toAttach), inv, replace)
}

// attachThis implements the attachthis/attachallthis family: starting
// folders come from an option that may name an attachment point, a wearable
// type, a prim uuid, or (empty) the issuing prim's own folders.
func (x *Executor) attachThis(ctx context.Context, cmd rlvparser.Command, issuerPrimID string, inv *inventory.Map, locks lockfolder.Map) error {
	recursive := strings.Contains(string(cmd.Behavior), "all")
	starts := startingFolders(inv, cmd, issuerPrimID)

	var toAttach []*inventory.Item
	for _, f := range starts {
		for _, it := range collectFolderItems(inv, f, recursive) {
			if it.IsWorn || it.IsAttached {
				continue
			}
			if !x.Eval.CanWear(it, designatedPoint(inv, it), locks) {
				continue
			}
			toAttach = append(toAttach, it)
		}
	}
	return x.dispatchAttach(ctx, dedupeByID(toAttach), inv, true)
}

// detachByScope implements remattach/detach/detachall/remoutfit: collect
// candidates from every worn/attached item (not scoped to a folder), narrow
// to the option's attachment point or wearable layer when one is given, and
// filter by detachability. remattach/detach/detachall all scope the same way
// regardless of "all" in the name — that modifier only distinguishes the
// *this-folder families (spec.md §4.7).
func (x *Executor) detachByScope(ctx context.Context, cmd rlvparser.Command, inv *inventory.Map, locks lockfolder.Map, isRemOutfit bool) error {
	var wantPoint *rlvconst.AttachPoint
	var wantLayer *rlvconst.WearableType
	if cmd.Option != "" {
		if isRemOutfit {
			w, ok := rlvconst.LookupWearable(cmd.Option)
			if !ok {
				return nil
			}
			wantLayer = &w
		} else {
			p, ok := rlvconst.LookupAttachPoint(cmd.Option)
			if !ok {
				return nil
			}
			wantPoint = &p
		}
	}

	keep := func(it *inventory.Item) bool {
		if isRemOutfit {
			return it.IsWorn && (wantLayer == nil || it.WornOn == *wantLayer)
		}
		return it.IsAttached && (wantPoint == nil || it.AttachedTo == *wantPoint)
	}

	var candidates []*inventory.Item
	for _, it := range inv.Snapshot().Items {
		if keep(it) {
			candidates = append(candidates, it)
		}
	}
	for _, it := range inv.Snapshot().ExternalItems {
		if keep(it) {
			candidates = append(candidates, it)
		}
	}

	return x.dispatchDetach(ctx, x.filterDetachable(candidates, inv, locks, false), inv, isRemOutfit)
}

// detachThis implements detachthis/detachallthis.
func (x *Executor) detachThis(ctx context.Context, cmd rlvparser.Command, issuerPrimID string, inv *inventory.Map, locks lockfolder.Map) error {
	recursive := strings.Contains(string(cmd.Behavior), "all")
	starts := startingFolders(inv, cmd, issuerPrimID)

	var candidates []*inventory.Item
	for _, f := range starts {
		candidates = append(candidates, collectFolderItems(inv, f, recursive)...)
	}
	return x.dispatchDetach(ctx, x.filterDetachable(candidates, inv, locks, false), inv, false)
}

// detachMe implements @detachme=force: detach every item attached from
// issuerPrimID, bypassing the nostrip exemption (spec.md §4.7).
func (x *Executor) detachMe(ctx context.Context, issuerPrimID string, inv *inventory.Map, locks lockfolder.Map) error {
	var candidates []*inventory.Item
	for _, it := range inv.ItemsByPrimID(issuerPrimID) {
		candidates = append(candidates, it)
	}
	return x.dispatchDetach(ctx, x.filterDetachable(candidates, inv, locks, true), inv, false)
}

func (x *Executor) filterDetachable(candidates []*inventory.Item, inv *inventory.Map, locks lockfolder.Map, isDetachMe bool) []*inventory.Item {
	var out []*inventory.Item
	for _, it := range candidates {
		var folder *inventory.Folder
		if it.InShared() {
			folder, _ = inv.Folder(it.ParentFolder)
		}
		canDetach := x.Eval.CanRemove(it, locks)
		if isDetachable(it, folder, isDetachMe, canDetach) {
			out = append(out, it)
		}
	}
	return dedupeByID(out)
}

func (x *Executor) dispatchAttach(ctx context.Context, items []*inventory.Item, inv *inventory.Map, replace bool) error {
	if len(items) == 0 {
		return nil
	}
	requests := make([]hostapi.AttachRequest, 0, len(items))
	for _, it := range items {
		requests = append(requests, hostapi.AttachRequest{
			ItemID:  it.ID,
			Point:   designatedPoint(inv, it).String(),
			Replace: replace,
		})
	}
	return x.Action.Attach(ctx, requests)
}

// designatedPoint derives the attachment point an unworn item would occupy:
// the last (tag) in the item name, else the enclosing folder's (tag), else
// Default (spec.md §4.7).
func designatedPoint(inv *inventory.Map, it *inventory.Item) rlvconst.AttachPoint {
	var folder *inventory.Folder
	if it.InShared() {
		folder, _ = inv.Folder(it.ParentFolder)
	}
	return resolveAttachPoint(it, folder)
}

func (x *Executor) dispatchDetach(ctx context.Context, items []*inventory.Item, inv *inventory.Map, isRemOutfit bool) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if isRemOutfit {
		return x.Action.RemOutfit(ctx, ids)
	}
	return x.Action.Detach(ctx, ids)
}

// collectFolderItems gathers folder's direct items and, if recursive, every
// descendant's items, skipping hidden subfolders during the descent (but
// not the starting folder itself), per spec.md §4.7.
func collectFolderItems(inv *inventory.Map, folder *inventory.Folder, recursive bool) []*inventory.Item {
	var out []*inventory.Item
	out = append(out, inv.ItemsInFolder(folder.ID)...)
	if recursive {
		inv.WalkDescendants(folder.ID, false, func(f *inventory.Folder) {
			if f.ID == folder.ID {
				return
			}
			out = append(out, inv.ItemsInFolder(f.ID)...)
		})
	}
	return out
}

// resolveFolderFromPathArg resolves the path option used by the
// attach-a-folder handler (spec.md §4.7: "attach[:path]"). An empty path
// resolves to the shared root itself.
func resolveFolderFromPathArg(inv *inventory.Map, cmd rlvparser.Command) *inventory.Folder {
	root := inv.Snapshot().RootID
	if cmd.Option == "" {
		f, ok := inv.Folder(root)
		if !ok {
			return nil
		}
		return f
	}
	f, ok := inv.ResolvePath(root, cmd.Option)
	if !ok {
		return nil
	}
	return f
}

// startingFolders resolves the attachthis/detachthis family's option: empty
// (issuer's own folders, hidden included), an attachment-point name, a
// wearable-type name, or a prim uuid (spec.md §4.7's "attachthis family").
// Unlike the add/remove grammar, a =force option carries no
// "wearable:"/"attachpt:" tag — internal/action classifies the raw string
// itself, falling back to treating it as a prim uuid.
func startingFolders(inv *inventory.Map, cmd rlvparser.Command, issuerPrimID string) []*inventory.Folder {
	arg := cmd.Option
	if arg == "" {
		return foldersContainingPrimID(inv, issuerPrimID)
	}
	if w, ok := rlvconst.LookupWearable(arg); ok {
		return foldersContainingWearable(inv, w)
	}
	if p, ok := rlvconst.LookupAttachPoint(arg); ok {
		return foldersContainingAttachPoint(inv, p)
	}
	return foldersContainingPrimID(inv, arg)
}

func foldersContainingPrimID(inv *inventory.Map, primID string) []*inventory.Folder {
	ids := make(map[string]bool)
	for _, it := range inv.ItemsByPrimID(primID) {
		if it.InShared() {
			ids[it.ParentFolder] = true
		}
	}
	return foldersFromIDs(inv, ids)
}

func foldersContainingWearable(inv *inventory.Map, w rlvconst.WearableType) []*inventory.Folder {
	ids := make(map[string]bool)
	for _, it := range inv.ItemsByWearable(w) {
		if it.InShared() {
			ids[it.ParentFolder] = true
		}
	}
	return foldersFromIDs(inv, ids)
}

func foldersContainingAttachPoint(inv *inventory.Map, p rlvconst.AttachPoint) []*inventory.Folder {
	ids := make(map[string]bool)
	for _, it := range inv.ItemsByAttachPoint(p) {
		if it.InShared() {
			ids[it.ParentFolder] = true
		}
	}
	return foldersFromIDs(inv, ids)
}

func foldersFromIDs(inv *inventory.Map, ids map[string]bool) []*inventory.Folder {
	var out []*inventory.Folder
	for id := range ids {
		if f, ok := inv.Folder(id); ok {
			out = append(out, f)
		}
	}
	return out
}
