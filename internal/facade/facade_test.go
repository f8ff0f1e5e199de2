package facade

import (
	"context"
	"testing"

	"rlv/internal/behavior"
	"rlv/internal/hostapi"
	"rlv/internal/inventory"
	"rlv/internal/restriction"
	"rlv/internal/rlvconst"
)

// fakeHost implements both capability sets over a fixed snapshot, recording
// every reply so tests can assert on get-request and notify traffic.
type fakeHost struct {
	hostapi.Query
	hostapi.Action

	snap    *inventory.Snapshot
	replies []reply
	exists  map[string]bool
}

type reply struct {
	channel int
	text    string
}

func newFakeHost() *fakeHost {
	folders := map[string]*inventory.Folder{
		"root":     {ID: "root", Name: inventory.RootFolder, Children: []string{"clothing"}},
		"clothing": {ID: "clothing", Name: "Clothing", ParentID: "root", Items: []string{"shirt-1"}},
	}
	items := map[string]*inventory.Item{
		"shirt-1": {EntryID: "shirt-1", ID: "shirt-1", Name: "Happy Shirt", ParentFolder: "clothing", IsWorn: true, WornOn: rlvconst.WearableShirt},
	}
	return &fakeHost{snap: &inventory.Snapshot{RootID: "root", Folders: folders, Items: items}}
}

func (h *fakeHost) TryGetInventoryMap(ctx context.Context) (*inventory.Snapshot, bool, error) {
	return h.snap, true, nil
}

func (h *fakeHost) ObjectExists(ctx context.Context, uuid string) (bool, error) {
	if h.exists == nil {
		return true, nil
	}
	return h.exists[uuid], nil
}

func (h *fakeHost) IsSitting(ctx context.Context) (bool, error) { return false, nil }

func (h *fakeHost) SendReply(ctx context.Context, channel int, text string) error {
	h.replies = append(h.replies, reply{channel, text})
	return nil
}

func newTestEngine(blacklist []string) (*Engine, *fakeHost) {
	host := newFakeHost()
	store := restriction.New()
	return New(store, behavior.NewBlacklist(blacklist), host, host, nil), host
}

func TestProcessMessageAndsSegmentResults(t *testing.T) {
	e, _ := newTestEngine(nil)
	ctx := context.Background()

	ok, err := e.ProcessMessage(ctx, "@fly=n,sittp:2.5=n", "obj-1", "Obj")
	if err != nil || !ok {
		t.Fatalf("got (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = e.ProcessMessage(ctx, "@fly=n,bogus", "obj-1", "Obj")
	if err != nil || ok {
		t.Fatalf("a failed segment must turn the overall result false, got (%v, %v)", ok, err)
	}
	if ok, _ := e.ProcessMessage(ctx, "not a command", "obj-1", "Obj"); ok {
		t.Fatalf("non-@ message should report false")
	}
}

func TestProcessMessageClearIsIssuerLocal(t *testing.T) {
	e, _ := newTestEngine(nil)
	ctx := context.Background()

	e.ProcessMessage(ctx, "@fly=n", "obj-1", "One")
	e.ProcessMessage(ctx, "@fly=n", "obj-2", "Two")
	e.ProcessMessage(ctx, "@clear", "obj-1", "One")

	if e.Eval.IsRestricted("fly") != true {
		t.Fatalf("obj-2's fly restriction must survive obj-1's clear")
	}
	if got := e.Store.Snapshot("fly", "obj-1"); len(got) != 0 {
		t.Fatalf("obj-1's restrictions should be gone, got %d", len(got))
	}
}

func TestBlacklistedRestrictionRejectedButQuerySilenced(t *testing.T) {
	e, host := newTestEngine([]string{"fly"})
	ctx := context.Background()

	if ok, _ := e.ProcessMessage(ctx, "@fly=n", "obj-1", "Obj"); ok {
		t.Fatalf("blacklisted restriction should be rejected")
	}
	if e.Eval.IsRestricted("fly") {
		t.Fatalf("blacklisted restriction must not reach the store")
	}

	if ok, err := e.ProcessMessage(ctx, "@fly=4711", "obj-1", "Obj"); !ok || err != nil {
		t.Fatalf("blacklisted query is consumed, got (%v, %v)", ok, err)
	}
	if len(host.replies) != 1 || host.replies[0].channel != 4711 || host.replies[0].text != "" {
		t.Fatalf("blacklisted query should send an empty reply, got %v", host.replies)
	}
}

func TestNotifyFanOutOnRestrictionChange(t *testing.T) {
	e, host := newTestEngine(nil)
	ctx := context.Background()

	e.ProcessMessage(ctx, "@notify:1234=add", "listener", "Listener")
	e.ProcessMessage(ctx, "@fly=n", "obj-1", "Obj")
	e.ProcessMessage(ctx, "@fly=y", "obj-1", "Obj")

	var got []string
	for _, r := range host.replies {
		if r.channel == 1234 {
			got = append(got, r.text)
		}
	}
	if len(got) != 2 || got[0] != "/fly=n" || got[1] != "/fly=y" {
		t.Fatalf("got notifications %v, want [/fly=n /fly=y]", got)
	}
}

func TestNotifyFilterSubstring(t *testing.T) {
	e, host := newTestEngine(nil)
	ctx := context.Background()

	e.ProcessMessage(ctx, "@notify:99;fly=add", "listener", "Listener")
	e.ProcessMessage(ctx, "@sendchat=n", "obj-1", "Obj")
	e.ProcessMessage(ctx, "@fly=n", "obj-1", "Obj")

	var got []string
	for _, r := range host.replies {
		if r.channel == 99 {
			got = append(got, r.text)
		}
	}
	if len(got) != 1 || got[0] != "/fly=n" {
		t.Fatalf("filter should pass only /fly=n, got %v", got)
	}
}

func TestSweepVanishedIssuers(t *testing.T) {
	e, host := newTestEngine(nil)
	ctx := context.Background()

	e.ProcessMessage(ctx, "@fly=n", "gone", "Gone")
	e.ProcessMessage(ctx, "@jump=n", "alive", "Alive")
	host.exists = map[string]bool{"alive": true}

	if err := e.SweepVanishedIssuers(ctx); err != nil {
		t.Fatal(err)
	}
	if e.Eval.IsRestricted("fly") {
		t.Fatalf("vanished issuer's restrictions should be dropped")
	}
	if !e.Eval.IsRestricted("jump") {
		t.Fatalf("live issuer's restrictions should survive the sweep")
	}
}

func TestGetVersionEndToEnd(t *testing.T) {
	e, host := newTestEngine(nil)
	ctx := context.Background()

	if ok, err := e.ProcessMessage(ctx, "@version=2222", "obj-1", "Obj"); !ok || err != nil {
		t.Fatalf("got (%v, %v)", ok, err)
	}
	if len(host.replies) != 1 || host.replies[0].text != rlvconst.VersionString {
		t.Fatalf("got %v", host.replies)
	}
}
