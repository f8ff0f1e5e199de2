// Package hostapi is the capability boundary between the engine and the
// embedding viewer (spec.md §6): every side effect the engine needs — world
// queries, forced actions, outbound chat — crosses through one of these two
// interfaces, never directly. Grounded on the teacher's actor-model
// capability-set shape (internal/kernel's Query/Action split between
// read-only and mutating calls to the outside world).
package hostapi

import (
	"context"

	"rlv/internal/inventory"
)

// CameraSettings is the scalar snapshot returned by
// try_get_camera_settings.
type CameraSettings struct {
	AvDistMin  float64
	AvDistMax  float64
	FovMin     float64
	FovMax     float64
	ZoomMin    float64
	CurrentFov float64
}

// AttachRequest is one item-to-attachment-point assignment passed to the
// host's Attach callback (spec.md §4.7).
type AttachRequest struct {
	ItemID      string
	Point       string // resolved attachment-point name
	Replace     bool
	ForceDetach bool // force-detach whatever currently occupies Point first
}

// Query is the read-only half of the host capability set: every call may
// suspend (it's a round trip into viewer state) but never mutates engine
// state directly — callers re-acquire whatever lock they need after it
// returns (spec.md §5).
type Query interface {
	ObjectExists(ctx context.Context, uuid string) (bool, error)
	IsSitting(ctx context.Context) (bool, error)
	TryGetEnv(ctx context.Context, name string) (value string, ok bool, err error)
	TryGetDebug(ctx context.Context, name string) (value string, ok bool, err error)
	TryGetSitID(ctx context.Context) (uuid string, ok bool, err error)
	TryGetCameraSettings(ctx context.Context) (CameraSettings, bool, error)
	TryGetActiveGroupName(ctx context.Context) (string, bool, error)
	TryGetInventoryMap(ctx context.Context) (*inventory.Snapshot, bool, error)
}

// Action is the mutating half of the host capability set.
type Action interface {
	SendReply(ctx context.Context, channel int, text string) error
	SendInstantMessage(ctx context.Context, target string, text string) error

	SetRot(ctx context.Context, radians float64) error
	AdjustHeight(ctx context.Context, distance, factor, delta float64) error
	SetCamFov(ctx context.Context, radians float64) error
	TpTo(ctx context.Context, x, y, z float64, region string, lookAtRadians *float64) error

	Sit(ctx context.Context, uuid string) error
	Unsit(ctx context.Context) error
	SitGround(ctx context.Context) error

	RemOutfit(ctx context.Context, itemIDs []string) error
	Attach(ctx context.Context, requests []AttachRequest) error
	Detach(ctx context.Context, itemIDs []string) error

	SetGroup(ctx context.Context, idOrName string, role string) error
	SetEnv(ctx context.Context, name, value string) error
	SetDebug(ctx context.Context, name, value string) error
}
