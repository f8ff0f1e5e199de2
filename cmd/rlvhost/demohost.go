package main

import (
	"context"
	"fmt"

	"rlv/internal/hostapi"
	"rlv/internal/inventory"
	"rlv/internal/rlvconst"
)

// demoHost is a toy implementation of hostapi.Query and hostapi.Action over
// a fixed in-memory inventory, for exercising the engine from the command
// line. A real integration replaces this with calls into the embedding
// viewer.
type demoHost struct {
	sitting bool
	sitID   string
	group   string
	snap    *inventory.Snapshot
}

func newDemoHost() *demoHost {
	folders := map[string]*inventory.Folder{
		"root":     {ID: "root", Name: inventory.RootFolder, Children: []string{"clothing"}},
		"clothing": {ID: "clothing", Name: "Clothing", ParentID: "root", Items: []string{"shirt-1"}},
	}
	items := map[string]*inventory.Item{
		"shirt-1": {
			EntryID: "shirt-1", ID: "shirt-1", Name: "Happy Shirt", ParentFolder: "clothing",
			IsWorn: true, WornOn: rlvconst.WearableShirt,
		},
	}
	return &demoHost{
		group: "Demo Group",
		snap:  &inventory.Snapshot{RootID: "root", Folders: folders, Items: items},
	}
}

func (h *demoHost) ObjectExists(ctx context.Context, uuid string) (bool, error) { return true, nil }
func (h *demoHost) IsSitting(ctx context.Context) (bool, error)                 { return h.sitting, nil }

func (h *demoHost) TryGetEnv(ctx context.Context, name string) (string, bool, error) {
	return "", false, nil
}

func (h *demoHost) TryGetDebug(ctx context.Context, name string) (string, bool, error) {
	return "", false, nil
}

func (h *demoHost) TryGetSitID(ctx context.Context) (string, bool, error) {
	if !h.sitting {
		return "", false, nil
	}
	return h.sitID, true, nil
}

func (h *demoHost) TryGetCameraSettings(ctx context.Context) (hostapi.CameraSettings, bool, error) {
	return hostapi.CameraSettings{AvDistMin: 0.5, AvDistMax: 10, FovMin: 0.35, FovMax: 1.57, ZoomMin: 0.5, CurrentFov: 1.05}, true, nil
}

func (h *demoHost) TryGetActiveGroupName(ctx context.Context) (string, bool, error) {
	return h.group, true, nil
}

func (h *demoHost) TryGetInventoryMap(ctx context.Context) (*inventory.Snapshot, bool, error) {
	return h.snap, true, nil
}

func (h *demoHost) SendReply(ctx context.Context, channel int, text string) error {
	fmt.Printf("[reply %d] %s\n", channel, text)
	return nil
}

func (h *demoHost) SendInstantMessage(ctx context.Context, target string, text string) error {
	fmt.Printf("[im -> %s] %s\n", target, text)
	return nil
}

func (h *demoHost) SetRot(ctx context.Context, radians float64) error {
	fmt.Printf("[action] set_rot(%v)\n", radians)
	return nil
}

func (h *demoHost) AdjustHeight(ctx context.Context, distance, factor, delta float64) error {
	fmt.Printf("[action] adjust_height(%v, %v, %v)\n", distance, factor, delta)
	return nil
}

func (h *demoHost) SetCamFov(ctx context.Context, radians float64) error {
	fmt.Printf("[action] set_cam_fov(%v)\n", radians)
	return nil
}

func (h *demoHost) TpTo(ctx context.Context, x, y, z float64, region string, lookAtRadians *float64) error {
	fmt.Printf("[action] tp_to(%v, %v, %v, region=%q)\n", x, y, z, region)
	return nil
}

func (h *demoHost) Sit(ctx context.Context, uuid string) error {
	h.sitting = true
	h.sitID = uuid
	fmt.Printf("[action] sit(%s)\n", uuid)
	return nil
}

func (h *demoHost) Unsit(ctx context.Context) error {
	h.sitting = false
	h.sitID = ""
	fmt.Println("[action] unsit()")
	return nil
}

func (h *demoHost) SitGround(ctx context.Context) error {
	h.sitting = true
	h.sitID = ""
	fmt.Println("[action] sit_ground()")
	return nil
}

func (h *demoHost) RemOutfit(ctx context.Context, itemIDs []string) error {
	fmt.Printf("[action] rem_outfit(%v)\n", itemIDs)
	return nil
}

func (h *demoHost) Attach(ctx context.Context, requests []hostapi.AttachRequest) error {
	fmt.Printf("[action] attach(%v)\n", requests)
	return nil
}

func (h *demoHost) Detach(ctx context.Context, itemIDs []string) error {
	fmt.Printf("[action] detach(%v)\n", itemIDs)
	return nil
}

func (h *demoHost) SetGroup(ctx context.Context, idOrName string, role string) error {
	fmt.Printf("[action] set_group(%s, %s)\n", idOrName, role)
	return nil
}

func (h *demoHost) SetEnv(ctx context.Context, name, value string) error {
	fmt.Printf("[action] set_env(%s, %s)\n", name, value)
	return nil
}

func (h *demoHost) SetDebug(ctx context.Context, name, value string) error {
	fmt.Printf("[action] set_debug(%s, %s)\n", name, value)
	return nil
}
