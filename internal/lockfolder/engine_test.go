package lockfolder

import (
	"testing"

	"rlv/internal/inventory"
	"rlv/internal/restriction"
	"rlv/internal/rlvconst"
)

func buildTestSnapshot() *inventory.Snapshot {
	folders := map[string]*inventory.Folder{
		"root":       {ID: "root", Name: inventory.RootFolder, Children: []string{"clothing", "accessories"}},
		"clothing":   {ID: "clothing", Name: "Clothing", ParentID: "root", Children: []string{"hats"}, Items: []string{"business-pants", "happy-shirt", "retro-pants"}},
		"hats":       {ID: "hats", Name: "Hats", ParentID: "clothing", Children: []string{"subhats"}, Items: []string{"fancy-hat", "party-hat"}},
		"subhats":    {ID: "subhats", Name: "Sub Hats", ParentID: "hats"},
		"accessories": {ID: "accessories", Name: "Accessories", ParentID: "root", Items: []string{"ring"}},
	}
	items := map[string]*inventory.Item{
		"business-pants": {EntryID: "business-pants", ID: "business-pants", Name: "Business Pants", ParentFolder: "clothing"},
		"happy-shirt":    {EntryID: "happy-shirt", ID: "happy-shirt", Name: "Happy Shirt", ParentFolder: "clothing"},
		"retro-pants": {
			EntryID: "retro-pants", ID: "retro-pants", Name: "Retro Pants", ParentFolder: "clothing",
			IsWorn: true, WornOn: rlvconst.WearablePants,
		},
		"fancy-hat": {EntryID: "fancy-hat", ID: "fancy-hat", Name: "Fancy Hat", ParentFolder: "hats"},
		"party-hat": {
			EntryID: "party-hat", ID: "party-hat", Name: "Party Hat", ParentFolder: "hats",
			IsAttached: true, AttachedTo: rlvconst.AttachSpine, AttachedPrimID: "party-hat-prim",
		},
		"ring": {EntryID: "ring", ID: "ring", Name: "Ring", ParentFolder: "accessories"},
	}
	return &inventory.Snapshot{RootID: "root", Folders: folders, Items: items}
}

func TestDeriveAttachAllThisByPrimID(t *testing.T) {
	inv := inventory.Build(buildTestSnapshot())
	store := restriction.New()
	store.Add(restriction.Restriction{Behavior: "attachallthis", IssuerPrimID: "party-hat-prim"})

	locks := Derive(store, inv)

	if _, ok := locks["hats"]; !ok {
		t.Fatalf("want Hats locked")
	}
	if _, ok := locks["subhats"]; !ok {
		t.Fatalf("want Sub Hats locked")
	}
	if _, ok := locks["clothing"]; ok {
		t.Fatalf("Clothing should not be locked")
	}
	if locks["hats"].CanAttach() {
		t.Fatalf("Hats should deny attach")
	}
	if !locks["subhats"].CanDetach() {
		t.Fatalf("only attach is restricted, detach should still be allowed")
	}
}

func TestDeriveAttachAllThisByWearableType(t *testing.T) {
	inv := inventory.Build(buildTestSnapshot())
	store := restriction.New()
	store.Add(restriction.Restriction{
		Behavior: "attachallthis", IssuerPrimID: "x",
		Args: []string{"wearable:" + rlvconst.WearablePants.String()},
	})

	locks := Derive(store, inv)

	for _, id := range []string{"clothing", "hats", "subhats"} {
		if _, ok := locks[id]; !ok {
			t.Fatalf("want folder %q locked", id)
		}
	}
	if locks["accessories"] != nil {
		t.Fatalf("Accessories should be unaffected")
	}
}

func TestLockRecordExceptionFlipsCanDetach(t *testing.T) {
	inv := inventory.Build(buildTestSnapshot())
	store := restriction.New()
	store.Add(restriction.Restriction{Behavior: "detachthis", IssuerPrimID: "obj-1", Args: []string{"path:Clothing"}})

	locks := Derive(store, inv)
	rec := locks["clothing"]
	if rec == nil || rec.CanDetach() {
		t.Fatalf("Clothing should deny detach with no exception")
	}

	store.Add(restriction.Restriction{Behavior: "detachthis_except", IssuerPrimID: "obj-1", Args: []string{"path:Clothing"}})
	locks = Derive(store, inv)
	rec = locks["clothing"]
	if rec == nil || !rec.CanDetach() {
		t.Fatalf("Clothing should allow detach once an exception is added")
	}
}
