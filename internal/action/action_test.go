package action

import (
	"context"
	"testing"

	"rlv/internal/hostapi"
	"rlv/internal/inventory"
	"rlv/internal/permission"
	"rlv/internal/restriction"
	"rlv/internal/rlvconst"
	"rlv/internal/rlvparser"
)

type fakeAction struct {
	hostapi.Action
	rotations  []float64
	sat        []string
	unsatCount int
	detached   [][]string
	attached   [][]hostapi.AttachRequest
}

func (f *fakeAction) SetRot(ctx context.Context, radians float64) error {
	f.rotations = append(f.rotations, radians)
	return nil
}

func (f *fakeAction) Sit(ctx context.Context, uuid string) error {
	f.sat = append(f.sat, uuid)
	return nil
}

func (f *fakeAction) Unsit(ctx context.Context) error {
	f.unsatCount++
	return nil
}

func (f *fakeAction) Detach(ctx context.Context, itemIDs []string) error {
	f.detached = append(f.detached, itemIDs)
	return nil
}

func (f *fakeAction) Attach(ctx context.Context, requests []hostapi.AttachRequest) error {
	f.attached = append(f.attached, requests)
	return nil
}

func TestExecuteSetRotAlwaysAllowed(t *testing.T) {
	store := restriction.New()
	fa := &fakeAction{}
	x := &Executor{Eval: permission.New(store), Action: fa}
	cmd, ok := rlvparser.ParseSegment("setrot:1.5=force")
	if !ok {
		t.Fatalf("parse failed")
	}
	if err := x.Execute(context.Background(), cmd, "issuer", nil, nil); err != nil {
		t.Fatal(err)
	}
	if len(fa.rotations) != 1 || fa.rotations[0] != 1.5 {
		t.Fatalf("got %v", fa.rotations)
	}
}

func TestExecuteSitDeniedWhileRestricted(t *testing.T) {
	store := restriction.New()
	store.Add(restriction.Restriction{Behavior: "sit", IssuerPrimID: "i1"})
	fa := &fakeAction{}
	x := &Executor{Eval: permission.New(store), Action: fa}
	cmd, ok := rlvparser.ParseSegment("sit:11111111-1111-1111-1111-111111111111=force")
	if !ok {
		t.Fatalf("parse failed")
	}
	if err := x.Execute(context.Background(), cmd, "i1", nil, nil); err != nil {
		t.Fatal(err)
	}
	if len(fa.sat) != 0 {
		t.Fatalf("sit should have been suppressed, got %v", fa.sat)
	}
}

func TestExecuteUnsitDeniedWhileUnsitRestricted(t *testing.T) {
	store := restriction.New()
	store.Add(restriction.Restriction{Behavior: "unsit", IssuerPrimID: "i1"})
	fa := &fakeAction{}
	x := &Executor{Eval: permission.New(store), Action: fa}
	cmd, ok := rlvparser.ParseSegment("unsit=force")
	if !ok {
		t.Fatalf("parse failed")
	}
	if err := x.Execute(context.Background(), cmd, "i1", nil, nil); err != nil {
		t.Fatal(err)
	}
	if fa.unsatCount != 0 {
		t.Fatalf("unsit should have been suppressed")
	}
}

func TestIsDetachableHonorsNostripUnlessDetachMe(t *testing.T) {
	item := &inventory.Item{ID: "i1", Name: "Cuffs (nostrip)", IsAttached: true}
	if isDetachable(item, nil, false, true) {
		t.Fatalf("nostrip item should not be detachable via a regular scope")
	}
	if !isDetachable(item, nil, true, true) {
		t.Fatalf("nostrip item should be detachable under @detachme")
	}
}

func buildWornSnapshot() *inventory.Map {
	folders := map[string]*inventory.Folder{
		"root":    {ID: "root", Name: inventory.RootFolder, Children: []string{"outfits"}},
		"outfits": {ID: "outfits", Name: "Outfits", ParentID: "root", Items: []string{"hat-1", "cuff-1"}},
	}
	items := map[string]*inventory.Item{
		"hat-1": {
			EntryID: "hat-1", ID: "hat-1", Name: "Hat (spine)", ParentFolder: "outfits",
			IsAttached: true, AttachedTo: rlvconst.AttachSpine, AttachedPrimID: "hat-prim",
		},
		"cuff-1": {
			EntryID: "cuff-1", ID: "cuff-1", Name: "Cuff (chest)", ParentFolder: "outfits",
			IsAttached: true, AttachedTo: rlvconst.AttachChest, AttachedPrimID: "cuff-prim",
		},
	}
	return inventory.Build(&inventory.Snapshot{RootID: "root", Folders: folders, Items: items})
}

func TestDetachScopedToAttachPoint(t *testing.T) {
	inv := buildWornSnapshot()
	store := restriction.New()
	fa := &fakeAction{}
	x := &Executor{Eval: permission.New(store), Action: fa}

	cmd, ok := rlvparser.ParseSegment("remattach:spine=force")
	if !ok {
		t.Fatalf("parse failed")
	}
	if err := x.Execute(context.Background(), cmd, "issuer", inv, nil); err != nil {
		t.Fatal(err)
	}
	if len(fa.detached) != 1 || len(fa.detached[0]) != 1 || fa.detached[0][0] != "hat-1" {
		t.Fatalf("only the spine item should detach, got %v", fa.detached)
	}
}

func TestDetachUnscopedTakesAllAttached(t *testing.T) {
	inv := buildWornSnapshot()
	store := restriction.New()
	fa := &fakeAction{}
	x := &Executor{Eval: permission.New(store), Action: fa}

	cmd, ok := rlvparser.ParseSegment("detachall=force")
	if !ok {
		t.Fatalf("parse failed")
	}
	if err := x.Execute(context.Background(), cmd, "issuer", inv, nil); err != nil {
		t.Fatal(err)
	}
	if len(fa.detached) != 1 || len(fa.detached[0]) != 2 {
		t.Fatalf("both attached items should detach, got %v", fa.detached)
	}
}

func buildUnwornSnapshot() *inventory.Map {
	folders := map[string]*inventory.Folder{
		"root":    {ID: "root", Name: inventory.RootFolder, Children: []string{"outfits"}},
		"outfits": {ID: "outfits", Name: "Outfits", ParentID: "root", Items: []string{"shirt-1", "hat-1"}},
	}
	items := map[string]*inventory.Item{
		"shirt-1": {EntryID: "shirt-1", ID: "shirt-1", Name: "Happy Shirt", ParentFolder: "outfits", WornOn: rlvconst.WearableShirt},
		"hat-1":   {EntryID: "hat-1", ID: "hat-1", Name: "Hat (spine)", ParentFolder: "outfits"},
	}
	return inventory.Build(&inventory.Snapshot{RootID: "root", Folders: folders, Items: items})
}

func attachedIDs(fa *fakeAction) []string {
	var ids []string
	for _, batch := range fa.attached {
		for _, req := range batch {
			ids = append(ids, req.ItemID)
		}
	}
	return ids
}

func TestAttachFolderBlockedByBlanketAddAttach(t *testing.T) {
	inv := buildUnwornSnapshot()
	store := restriction.New()
	store.Add(restriction.Restriction{Behavior: "addattach", IssuerPrimID: "warden"})
	fa := &fakeAction{}
	x := &Executor{Eval: permission.New(store), Action: fa}

	cmd, ok := rlvparser.ParseSegment("attach:Outfits=force")
	if !ok {
		t.Fatalf("parse failed")
	}
	if err := x.Execute(context.Background(), cmd, "issuer", inv, nil); err != nil {
		t.Fatal(err)
	}
	if got := attachedIDs(fa); len(got) != 0 {
		t.Fatalf("blanket addattach should block every attach, got %v", got)
	}
}

func TestAttachFolderBlockedByLayerScopedAddOutfit(t *testing.T) {
	inv := buildUnwornSnapshot()
	store := restriction.New()
	store.Add(restriction.Restriction{Behavior: "addoutfit", IssuerPrimID: "warden", Args: []string{"wearable:shirt"}})
	fa := &fakeAction{}
	x := &Executor{Eval: permission.New(store), Action: fa}

	cmd, ok := rlvparser.ParseSegment("attach:Outfits=force")
	if !ok {
		t.Fatalf("parse failed")
	}
	if err := x.Execute(context.Background(), cmd, "issuer", inv, nil); err != nil {
		t.Fatal(err)
	}
	got := attachedIDs(fa)
	if len(got) != 1 || got[0] != "hat-1" {
		t.Fatalf("only the hat should attach with the shirt layer restricted, got %v", got)
	}
}

func TestAttachFolderBlockedByDesignatedPointAddAttach(t *testing.T) {
	inv := buildUnwornSnapshot()
	store := restriction.New()
	store.Add(restriction.Restriction{Behavior: "addattach", IssuerPrimID: "warden", Args: []string{"attachpt:spine"}})
	fa := &fakeAction{}
	x := &Executor{Eval: permission.New(store), Action: fa}

	cmd, ok := rlvparser.ParseSegment("attach:Outfits=force")
	if !ok {
		t.Fatalf("parse failed")
	}
	if err := x.Execute(context.Background(), cmd, "issuer", inv, nil); err != nil {
		t.Fatal(err)
	}
	got := attachedIDs(fa)
	if len(got) != 1 || got[0] != "shirt-1" {
		t.Fatalf("the spine-tagged hat should be blocked by its designated point, got %v", got)
	}
}

func TestDetachRestrictionProtectsIssuersOwnAttachment(t *testing.T) {
	inv := buildWornSnapshot()
	store := restriction.New()
	// @detach=n issued by the hat itself: the hat's attachment may not be
	// removed, the cuff still may.
	store.Add(restriction.Restriction{Behavior: "detach", IssuerPrimID: "hat-prim"})
	fa := &fakeAction{}
	x := &Executor{Eval: permission.New(store), Action: fa}

	cmd, ok := rlvparser.ParseSegment("detachall=force")
	if !ok {
		t.Fatalf("parse failed")
	}
	if err := x.Execute(context.Background(), cmd, "issuer", inv, nil); err != nil {
		t.Fatal(err)
	}
	if len(fa.detached) != 1 || len(fa.detached[0]) != 1 || fa.detached[0][0] != "cuff-1" {
		t.Fatalf("only the cuff should detach while the hat protects itself, got %v", fa.detached)
	}
}

func TestAttachFlagsOverOrReplaceStillReplaces(t *testing.T) {
	for name, want := range map[string]bool{
		"attach":                 true,
		"attachoverorreplace":    true,
		"attachalloverorreplace": true,
		"attachover":             false,
		"attachallover":          false,
	} {
		if got := attachFlags[name].replace; got != want {
			t.Errorf("%s: replace = %v, want %v", name, got, want)
		}
	}
}

func TestDedupeByID(t *testing.T) {
	a := &inventory.Item{ID: "a"}
	b := &inventory.Item{ID: "a"}
	c := &inventory.Item{ID: "b"}
	got := dedupeByID([]*inventory.Item{a, b, c})
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
}
