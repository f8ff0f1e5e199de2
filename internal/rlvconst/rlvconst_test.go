package rlvconst

import "testing"

func TestLookupWearableCaseInsensitive(t *testing.T) {
	w, ok := LookupWearable("  ShIrT ")
	if !ok || w != WearableShirt {
		t.Fatalf("got %v, %v", w, ok)
	}
	if _, ok := LookupWearable("nonsense"); ok {
		t.Fatalf("expected nonsense to be unresolvable")
	}
}

func TestWearableAlwaysNonDetachable(t *testing.T) {
	for _, w := range []WearableType{WearableSkin, WearableShape, WearableEyes, WearableHair} {
		if !w.AlwaysNonDetachable() {
			t.Errorf("%v should be always non-detachable", w)
		}
	}
	if WearableShirt.AlwaysNonDetachable() {
		t.Errorf("shirt should be detachable")
	}
}

func TestLookupAttachPointNormalizesSpacingAndUnderscores(t *testing.T) {
	p, ok := LookupAttachPoint("Left_Shoulder")
	if !ok || p != AttachLeftShoulder {
		t.Fatalf("got %v, %v", p, ok)
	}
	p2, ok := LookupAttachPoint("  left   shoulder ")
	if !ok || p2 != AttachLeftShoulder {
		t.Fatalf("got %v, %v", p2, ok)
	}
}

func TestAttachPointIsHud(t *testing.T) {
	if !AttachHudCenter.IsHud() {
		t.Errorf("hud center should be a hud point")
	}
	if AttachChest.IsHud() {
		t.Errorf("chest should not be a hud point")
	}
}

func TestExtractAttachPointTakesLastTag(t *testing.T) {
	p, ok := ExtractAttachPoint("Cool Jacket (chest) (spine)")
	if !ok || p != AttachSpine {
		t.Fatalf("got %v, %v", p, ok)
	}
	if _, ok := ExtractAttachPoint("No tags here"); ok {
		t.Fatalf("expected no match")
	}
}

func TestAllAttachPointsCoversEnum(t *testing.T) {
	all := AllAttachPoints()
	if len(all) != len(attachNames) {
		t.Fatalf("got %d points, want %d", len(all), len(attachNames))
	}
}

func TestPassesChatFilter(t *testing.T) {
	cases := []struct {
		msg  string
		want bool
	}{
		{"/waves hello", true},
		{"no leading slash", false},
		{"/has (parens)", false},
		{"/me waves", true},
	}
	for _, c := range cases {
		if got := PassesChatFilter(c.msg); got != c.want {
			t.Errorf("PassesChatFilter(%q) = %v, want %v", c.msg, got, c.want)
		}
	}
}

func TestIsEmote(t *testing.T) {
	if !IsEmote("/me waves") {
		t.Errorf("expected emote")
	}
	if IsEmote("/waves") {
		t.Errorf("did not expect emote")
	}
}
