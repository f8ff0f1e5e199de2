// Package getrequest answers @get*/@find* query segments (spec.md §4.6):
// each computes a reply string from restriction-store/inventory state and
// hands it to the host's reply callback on the requested channel.
// Grounded on the teacher's internal/evaluator dispatch-by-kind shape, one
// function per behavior kind rather than one big switch body.
package getrequest

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"rlv/internal/behavior"
	"rlv/internal/hostapi"
	"rlv/internal/inventory"
	"rlv/internal/permission"
	"rlv/internal/restriction"
	"rlv/internal/rlvconst"
)

// Handler answers get-request segments against a store/blacklist/inventory
// snapshot plus pass-through host queries for things the engine doesn't
// track itself (camera, group, env, debug, sit id).
type Handler struct {
	Store     *restriction.Store
	Eval      *permission.Evaluator
	Blacklist *behavior.Blacklist
	Query     hostapi.Query
}

// Handle computes the reply for one OpGet command and sends it to the
// requested channel via the host's Action.SendReply. senderID is the
// issuing object's uuid, used by getstatus's issuer filter. inv may be nil
// if no inventory query has succeeded yet; inventory-dependent getters then
// reply with the empty string.
func (h *Handler) Handle(ctx context.Context, action hostapi.Action, originalBehavior string, option string, channel int, senderID string, inv *inventory.Map) error {
	if h.Blacklist != nil && h.Blacklist.Contains(originalBehavior) {
		return action.SendReply(ctx, channel, "")
	}
	reply := h.reply(ctx, originalBehavior, option, senderID, inv)
	return action.SendReply(ctx, channel, reply)
}

func (h *Handler) reply(ctx context.Context, name string, option string, senderID string, inv *inventory.Map) string {
	switch name {
	case "version", "versionnew":
		return rlvconst.VersionString
	case "versionnum":
		return rlvconst.VersionNum
	case "versionnumbl":
		return rlvconst.VersionNum + "," + strings.Join(h.blacklistNames(), ",")
	case "getblacklist":
		return h.getBlacklist(option)
	case "getstatus":
		return h.getStatus(option, senderID, true)
	case "getstatusall":
		return h.getStatus(option, senderID, false)
	case "getsitid":
		return h.getSitID(ctx)
	case "getgroup":
		return h.passthroughGroup(ctx)
	case "getcam_avdistmin", "getcam_avdistmax", "getcam_fovmin", "getcam_fovmax", "getcam_zoommin", "getcam_fov":
		return h.getCamScalar(ctx, name)
	case "getoutfit":
		if inv == nil {
			return ""
		}
		return GetOutfitFromInventory(option, inv)
	case "getattach":
		if inv == nil {
			return ""
		}
		return GetAttachFromInventory(option, inv)
	case "getinv":
		return h.getInv(option, inv)
	case "getinvworn":
		return h.getInvWorn(option, inv)
	case "findfolder":
		return h.findFolder(option, inv, true)
	case "findfolders":
		return h.findFolder(option, inv, false)
	case "getpath":
		return h.getPath(option, senderID, inv, true)
	case "getpathnew":
		return h.getPath(option, senderID, inv, false)
	default:
		if strings.HasPrefix(name, "getenv_") {
			return h.passthroughEnv(ctx, strings.TrimPrefix(name, "getenv_"))
		}
		if strings.HasPrefix(name, "getdebug_") {
			return h.passthroughDebug(ctx, strings.TrimPrefix(name, "getdebug_"))
		}
		return ""
	}
}

func (h *Handler) blacklistNames() []string {
	if h.Blacklist == nil {
		return nil
	}
	return h.Blacklist.All()
}

func (h *Handler) getBlacklist(substr string) string {
	if h.Blacklist == nil {
		return ""
	}
	return strings.Join(h.Blacklist.MatchingSubstring(substr), ",")
}

// getStatus implements "getstatus[:substr[;sep]]" (spec.md §4.6): substr
// and sep are both optional and split on the first ';' in option.
func (h *Handler) getStatus(option string, senderID string, filterByIssuer bool) string {
	substr, sep := splitOptionSep(option, "/")
	var list []restriction.Restriction
	if filterByIssuer {
		list = h.Store.SnapshotMatching(substr, senderID)
	} else {
		list = h.Store.SnapshotMatching(substr, "")
	}
	if len(list) == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range list {
		b.WriteString(sep)
		b.WriteString(string(r.Behavior))
		if args := r.ArgString(); args != "" {
			b.WriteString(":")
			b.WriteString(args)
		}
	}
	return b.String()
}

func (h *Handler) getSitID(ctx context.Context) string {
	if h.Query == nil {
		return rlvconst.NullKey
	}
	uuid, ok, err := h.Query.TryGetSitID(ctx)
	if err != nil || !ok {
		return rlvconst.NullKey
	}
	return uuid
}

func (h *Handler) passthroughGroup(ctx context.Context) string {
	if h.Query == nil {
		return ""
	}
	name, ok, err := h.Query.TryGetActiveGroupName(ctx)
	if err != nil || !ok {
		return ""
	}
	return name
}

func (h *Handler) passthroughEnv(ctx context.Context, name string) string {
	if h.Query == nil {
		return ""
	}
	val, ok, err := h.Query.TryGetEnv(ctx, name)
	if err != nil || !ok {
		return ""
	}
	return val
}

func (h *Handler) passthroughDebug(ctx context.Context, name string) string {
	if h.Query == nil {
		return ""
	}
	val, ok, err := h.Query.TryGetDebug(ctx, name)
	if err != nil || !ok {
		return ""
	}
	return val
}

func (h *Handler) getCamScalar(ctx context.Context, name string) string {
	if h.Query == nil {
		return ""
	}
	cam, ok, err := h.Query.TryGetCameraSettings(ctx)
	if err != nil || !ok {
		return ""
	}
	var f float64
	switch name {
	case "getcam_avdistmin":
		f = cam.AvDistMin
	case "getcam_avdistmax":
		f = cam.AvDistMax
	case "getcam_fovmin":
		f = cam.FovMin
	case "getcam_fovmax":
		f = cam.FovMax
	case "getcam_zoommin":
		f = cam.ZoomMin
	case "getcam_fov":
		f = cam.CurrentFov
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// GetOutfitFromInventory implements the 16-digit bitmap (or single-digit,
// with a layer argument) of spec.md §3/§4.6.
func GetOutfitFromInventory(option string, inv *inventory.Map) string {
	check := func(w rlvconst.WearableType) bool {
		return len(inv.ItemsByWearable(w)) > 0
	}
	if option != "" {
		w, ok := rlvconst.LookupWearable(option)
		if !ok {
			return "0"
		}
		if check(w) {
			return "1"
		}
		return "0"
	}
	var b strings.Builder
	for _, w := range rlvconst.WearableOrder() {
		if check(w) {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
	}
	return b.String()
}

// GetAttachFromInventory implements "getattach[:pt]": a bitmap indexed by
// attachment-point enum value, or a single 0/1 with a point argument.
func GetAttachFromInventory(option string, inv *inventory.Map) string {
	if option != "" {
		p, ok := rlvconst.LookupAttachPoint(option)
		if !ok {
			return "0"
		}
		if len(inv.ItemsByAttachPoint(p)) > 0 {
			return "1"
		}
		return "0"
	}
	var b strings.Builder
	for _, p := range rlvconst.AllAttachPoints() {
		if len(inv.ItemsByAttachPoint(p)) > 0 {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
	}
	return b.String()
}

func (h *Handler) getInv(option string, inv *inventory.Map) string {
	if inv == nil {
		return ""
	}
	folderID := inv.Snapshot().RootID
	if option != "" {
		f, ok := inv.ResolvePath(folderID, option)
		if !ok {
			return ""
		}
		folderID = f.ID
	}
	var names []string
	for _, child := range inv.Children(folderID) {
		if child.IsHidden() {
			continue
		}
		names = append(names, child.Name)
	}
	return strings.Join(names, ",")
}

// wornState classifies a folder's worn coverage, over its direct items or,
// with recursive, its descendants' items too: 0 empty, 1 none worn, 2 some, 3 all (spec.md §4.6).
func wornState(inv *inventory.Map, folderID string, recursive bool) int {
	items := collectItems(inv, folderID, recursive)
	if len(items) == 0 {
		return 0
	}
	wornCount := 0
	for _, it := range items {
		if it.IsWorn || it.IsAttached {
			wornCount++
		}
	}
	switch {
	case wornCount == 0:
		return 1
	case wornCount == len(items):
		return 3
	default:
		return 2
	}
}

func collectItems(inv *inventory.Map, folderID string, recursive bool) []*inventory.Item {
	var out []*inventory.Item
	out = append(out, inv.ItemsInFolder(folderID)...)
	if recursive {
		inv.WalkDescendants(folderID, false, func(f *inventory.Folder) {
			if f.ID == folderID {
				return
			}
			out = append(out, inv.ItemsInFolder(f.ID)...)
		})
	}
	return out
}

func (h *Handler) getInvWorn(option string, inv *inventory.Map) string {
	if inv == nil {
		return ""
	}
	folderID := inv.Snapshot().RootID
	if option != "" {
		f, ok := inv.ResolvePath(folderID, option)
		if !ok {
			return ""
		}
		folderID = f.ID
	}

	tokens := []string{"|" + strconv.Itoa(wornState(inv, folderID, false)) + strconv.Itoa(wornState(inv, folderID, true))}
	for _, child := range inv.Children(folderID) {
		if child.IsHidden() {
			continue
		}
		d := wornState(inv, child.ID, false)
		r := wornState(inv, child.ID, true)
		tokens = append(tokens, child.Name+"|"+strconv.Itoa(d)+strconv.Itoa(r))
	}
	return strings.Join(tokens, ",")
}

// findFolder implements findfolder/findfolders (spec.md §4.6): search terms
// split on "&&", each an AND-ed substring requirement; an optional ";sep"
// suffix overrides the separator joining multiple results.
func (h *Handler) findFolder(option string, inv *inventory.Map, stopAtFirst bool) string {
	if inv == nil {
		return ""
	}
	terms, sep := splitOptionSep(option, ",")
	termList := strings.Split(terms, "&&")
	folders := inv.FindFolderByName(termList, stopAtFirst)
	var paths []string
	for _, f := range folders {
		paths = append(paths, inv.PathOf(f.ID))
	}
	return strings.Join(paths, sep)
}

// getPath implements getpath/getpathnew (spec.md §4.6).
func (h *Handler) getPath(option string, senderID string, inv *inventory.Map, firstOnly bool) string {
	if inv == nil {
		return ""
	}
	selector, _ := splitOptionSep(option, "")

	var folders []*inventory.Folder
	switch {
	case selector == "":
		folders = foldersContainingPrim(inv, senderID)
	case isUUID(selector):
		folders = foldersContainingPrim(inv, selector)
	default:
		if w, ok := rlvconst.LookupWearable(selector); ok {
			for _, it := range inv.ItemsByWearable(w) {
				if it.InShared() {
					if f, ok := inv.Folder(it.ParentFolder); ok {
						folders = append(folders, f)
					}
				}
			}
		} else if p, ok := rlvconst.LookupAttachPoint(selector); ok {
			for _, it := range inv.ItemsByAttachPoint(p) {
				if it.InShared() {
					if f, ok := inv.Folder(it.ParentFolder); ok {
						folders = append(folders, f)
					}
				}
			}
		}
	}

	if len(folders) == 0 {
		return ""
	}
	if firstOnly {
		return inv.PathOf(folders[0].ID)
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	var paths []string
	for _, f := range folders {
		paths = append(paths, inv.PathOf(f.ID))
	}
	return strings.Join(paths, ",")
}

func foldersContainingPrim(inv *inventory.Map, primID string) []*inventory.Folder {
	var out []*inventory.Folder
	for _, it := range inv.ItemsByPrimID(primID) {
		if it.InShared() {
			if f, ok := inv.Folder(it.ParentFolder); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

// splitOptionSep splits an option on its first ';' into (value, separator),
// defaulting the separator when absent.
func splitOptionSep(option string, defaultSep string) (string, string) {
	if i := strings.IndexByte(option, ';'); i >= 0 {
		return option[:i], option[i+1:]
	}
	return option, defaultSep
}

func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range s {
		if i == 8 || i == 13 || i == 18 || i == 23 {
			if c != '-' {
				return false
			}
			continue
		}
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
