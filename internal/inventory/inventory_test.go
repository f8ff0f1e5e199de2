package inventory

import (
	"testing"

	"rlv/internal/rlvconst"
)

func buildSnapshot() *Snapshot {
	folders := map[string]*Folder{
		"root":     {ID: "root", Name: RootFolder, Children: []string{"clothing", ".hidden"}},
		"clothing": {ID: "clothing", Name: "Clothing", ParentID: "root", Children: []string{"+shoes"}, Items: []string{"shirt-1"}},
		"+shoes":   {ID: "+shoes", Name: "+Shoes", ParentID: "clothing", Items: []string{"shoe-1"}},
		".hidden":  {ID: ".hidden", Name: ".Hidden", ParentID: "root", Items: []string{"secret-1"}},
	}
	items := map[string]*Item{
		"shirt-1":  {EntryID: "shirt-1", ID: "shirt-1", Name: "Happy Shirt", ParentFolder: "clothing", IsWorn: true, WornOn: rlvconst.WearableShirt},
		"shoe-1":   {EntryID: "shoe-1", ID: "shoe-1", Name: "Boots (right foot)", ParentFolder: "+shoes", IsAttached: true, AttachedTo: rlvconst.AttachRightFoot, AttachedPrimID: "prim-1"},
		"secret-1": {EntryID: "secret-1", ID: "secret-1", Name: "Secret Item", ParentFolder: ".hidden"},
	}
	return &Snapshot{RootID: "root", Folders: folders, Items: items}
}

func TestBuildIndexesByAttachPointAndWearable(t *testing.T) {
	m := Build(buildSnapshot())
	if got := m.ItemsByWearable(rlvconst.WearableShirt); len(got) != 1 || got[0].ID != "shirt-1" {
		t.Fatalf("got %+v", got)
	}
	if got := m.ItemsByAttachPoint(rlvconst.AttachRightFoot); len(got) != 1 || got[0].ID != "shoe-1" {
		t.Fatalf("got %+v", got)
	}
	if got := m.ItemsByPrimID("prim-1"); len(got) != 1 || got[0].ID != "shoe-1" {
		t.Fatalf("got %+v", got)
	}
}

func TestWalkDescendantsSkipsHiddenByDefault(t *testing.T) {
	m := Build(buildSnapshot())
	var visited []string
	m.WalkDescendants("root", false, func(f *Folder) { visited = append(visited, f.ID) })
	for _, id := range visited {
		if id == ".hidden" {
			t.Fatalf("hidden folder should be skipped: %v", visited)
		}
	}
	if len(visited) != 3 { // root, clothing, +shoes
		t.Fatalf("got %v", visited)
	}
}

func TestWalkDescendantsStartingAtHiddenFolderStillDescends(t *testing.T) {
	m := Build(buildSnapshot())
	var visited []string
	m.WalkDescendants(".hidden", false, func(f *Folder) { visited = append(visited, f.ID) })
	if len(visited) != 1 || visited[0] != ".hidden" {
		t.Fatalf("expected to visit the hidden root itself, got %v", visited)
	}
}

func TestResolvePathStripsPrefixes(t *testing.T) {
	m := Build(buildSnapshot())
	f, ok := m.ResolvePath("root", "Clothing/Shoes")
	if !ok || f.ID != "+shoes" {
		t.Fatalf("got %v, %v", f, ok)
	}
}

func TestResolvePathPrefersExactOverStrippedMatch(t *testing.T) {
	folders := map[string]*Folder{
		"root":        {ID: "root", Name: RootFolder, Children: []string{"exact", "plusvariant"}},
		"exact":       {ID: "exact", Name: "Hats", ParentID: "root"},
		"plusvariant": {ID: "plusvariant", Name: "+Hats", ParentID: "root"},
	}
	m := Build(&Snapshot{RootID: "root", Folders: folders})
	f, ok := m.ResolvePath("root", "Hats")
	if !ok || f.ID != "exact" {
		t.Fatalf("expected exact match to win, got %v, %v", f, ok)
	}
}

func TestFindFolderByNameExcludesDotAndTildePrefixedFolders(t *testing.T) {
	m := Build(buildSnapshot())
	got := m.FindFolderByName([]string{"hidden"}, false)
	if len(got) != 0 {
		t.Fatalf("expected hidden folder to be excluded from findfolder, got %v", got)
	}
	got = m.FindFolderByName([]string{"cloth"}, false)
	if len(got) != 1 || got[0].ID != "clothing" {
		t.Fatalf("got %v", got)
	}

	snap := buildSnapshot()
	snap.Folders["root"].Children = append(snap.Folders["root"].Children, "~outfit")
	snap.Folders["~outfit"] = &Folder{ID: "~outfit", Name: "~Outfit", ParentID: "root"}
	got = Build(snap).FindFolderByName([]string{"outfit"}, false)
	if len(got) != 0 {
		t.Fatalf("expected tilde-prefixed folder to be excluded from findfolder, got %v", got)
	}
}

func TestItemInSharedTree(t *testing.T) {
	m := Build(buildSnapshot())
	shirt := m.ItemsByID("shirt-1")[0]
	if !shirt.InShared() {
		t.Errorf("shirt should be InShared")
	}
}
