// Package action is the forced-action executor: it turns a parsed =force
// command into a checked, de-duplicated batch of calls against the host's
// hostapi.Action capability set (spec.md §4.7). Grounded on the teacher's
// internal/kernel actor dispatch, which resolves a message to a handler and
// only then touches outside state.
package action

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rlv/internal/hostapi"
	"rlv/internal/inventory"
	"rlv/internal/lockfolder"
	"rlv/internal/permission"
	"rlv/internal/rlvconst"
	"rlv/internal/rlvparser"
)

// Executor dispatches =force commands against an inventory map, a
// lock-folder map, the permission evaluator, and the host Action callbacks.
// Query may be nil; commands that need world state (is the avatar sitting?)
// then skip the checks that depend on it.
type Executor struct {
	Eval   *permission.Evaluator
	Action hostapi.Action
	Query  hostapi.Query
}

// Execute runs one parsed force command. inv/locks may be nil for commands
// that don't touch inventory (setrot, tpto, sit, ...); those that do
// (attach/detach families) silently no-op without an inventory snapshot.
func (x *Executor) Execute(ctx context.Context, cmd rlvparser.Command, issuerPrimID string, inv *inventory.Map, locks lockfolder.Map) error {
	switch cmd.Behavior {
	case "setrot":
		return x.setRot(ctx, cmd)
	case "adjustheight":
		return x.adjustHeight(ctx, cmd)
	case "setcam_fov":
		return x.setCamFov(ctx, cmd)
	case "tpto":
		return x.tpTo(ctx, cmd)
	case "sit":
		return x.sit(ctx, cmd)
	case "unsit":
		return x.unsit(ctx)
	case "sitground":
		return x.sitGround(ctx)
	case "setgroup":
		return x.setGroup(ctx, cmd)
	default:
		if strings.HasPrefix(string(cmd.Behavior), "setdebug") {
			return x.setDebug(ctx, cmd)
		}
		if strings.HasPrefix(string(cmd.Behavior), "setenv") {
			return x.setEnv(ctx, cmd)
		}
	}

	if inv == nil {
		return nil
	}

	switch cmd.Behavior {
	case "attach", "attachall", "attachover", "attachallover",
		"attachoverorreplace", "attachalloverorreplace",
		"addoutfit", "addoutfitall":
		return x.attachFolder(ctx, cmd, inv, locks)
	case "attachthis", "attachallthis":
		return x.attachThis(ctx, cmd, issuerPrimID, inv, locks)
	case "remattach", "detach", "detachall", "remoutfit":
		return x.detachByScope(ctx, cmd, inv, locks, cmd.Behavior == "remoutfit")
	case "detachthis", "detachallthis":
		return x.detachThis(ctx, cmd, issuerPrimID, inv, locks)
	case "detachme":
		return x.detachMe(ctx, issuerPrimID, inv, locks)
	}
	return nil
}

func (x *Executor) setRot(ctx context.Context, cmd rlvparser.Command) error {
	rad, err := floatArg(cmd, 0)
	if err != nil {
		return err
	}
	return x.Action.SetRot(ctx, rad)
}

func (x *Executor) adjustHeight(ctx context.Context, cmd rlvparser.Command) error {
	var distance, factor, delta float64
	if v, err := floatArg(cmd, 0); err == nil {
		distance = v
	}
	if v, err := floatArg(cmd, 1); err == nil {
		factor = v
	} else {
		factor = 1.0
	}
	if v, err := floatArg(cmd, 2); err == nil {
		delta = v
	}
	return x.Action.AdjustHeight(ctx, distance, factor, delta)
}

func (x *Executor) setCamFov(ctx context.Context, cmd rlvparser.Command) error {
	if x.Eval.CameraLocked() {
		return nil
	}
	rad, err := floatArg(cmd, 0)
	if err != nil {
		return err
	}
	return x.Action.SetCamFov(ctx, rad)
}

func (x *Executor) tpTo(ctx context.Context, cmd rlvparser.Command) error {
	if !x.Eval.CanTpLoc() || !x.Eval.CanUnsit() {
		return nil
	}
	parts := optionParts(cmd.Option)
	if len(parts) < 3 {
		return fmt.Errorf("action: tpto requires x/y/z")
	}
	x1, err := parseFloatArg(parts[0])
	if err != nil {
		return err
	}
	y, err := parseFloatArg(parts[1])
	if err != nil {
		return err
	}
	z, err := parseFloatArg(parts[2])
	if err != nil {
		return err
	}
	var region string
	if len(parts) > 3 {
		region = parts[3]
	}
	var lookAt *float64
	if len(parts) > 4 {
		if f, err := parseFloatArg(parts[4]); err == nil {
			lookAt = &f
		}
	}
	return x.Action.TpTo(ctx, x1, y, z, region, lookAt)
}

func (x *Executor) sit(ctx context.Context, cmd rlvparser.Command) error {
	if !x.Eval.CanSit() {
		return nil
	}
	// Re-seating implies first standing up (spec.md §4.7).
	if x.sitting(ctx) && (!x.Eval.CanUnsit() || !x.Eval.CanStandTp()) {
		return nil
	}
	if cmd.Option == "" {
		return fmt.Errorf("action: sit requires a target uuid")
	}
	return x.Action.Sit(ctx, cmd.Option)
}

func (x *Executor) sitting(ctx context.Context) bool {
	if x.Query == nil {
		return false
	}
	sitting, err := x.Query.IsSitting(ctx)
	return err == nil && sitting
}

func (x *Executor) unsit(ctx context.Context) error {
	if !x.Eval.CanUnsit() {
		return nil
	}
	return x.Action.Unsit(ctx)
}

func (x *Executor) sitGround(ctx context.Context) error {
	if !x.Eval.CanSit() {
		return nil
	}
	if x.sitting(ctx) && (!x.Eval.CanUnsit() || !x.Eval.CanStandTp()) {
		return nil
	}
	return x.Action.SitGround(ctx)
}

func (x *Executor) setGroup(ctx context.Context, cmd rlvparser.Command) error {
	parts := optionParts(cmd.Option)
	if len(parts) == 0 {
		return fmt.Errorf("action: setgroup requires an id or name")
	}
	role := ""
	if len(parts) > 1 {
		role = parts[1]
	}
	return x.Action.SetGroup(ctx, parts[0], role)
}

func (x *Executor) setDebug(ctx context.Context, cmd rlvparser.Command) error {
	name := strings.TrimPrefix(string(cmd.Behavior), "setdebug_")
	return x.Action.SetDebug(ctx, name, cmd.Option)
}

func (x *Executor) setEnv(ctx context.Context, cmd rlvparser.Command) error {
	name := strings.TrimPrefix(string(cmd.Behavior), "setenv_")
	return x.Action.SetEnv(ctx, name, cmd.Option)
}

// optionParts splits a force command's composite "/"-separated option
// string. A =force command's grammar is bypassed at parse time (spec.md
// §4.1), so internal/action is responsible for splitting its own option
// (spec.md §4.7).
func optionParts(option string) []string {
	if option == "" {
		return nil
	}
	return strings.Split(option, "/")
}

func floatArg(cmd rlvparser.Command, i int) (float64, error) {
	parts := optionParts(cmd.Option)
	if i >= len(parts) {
		return 0, fmt.Errorf("action: %s missing argument %d", cmd.Behavior, i)
	}
	return parseFloatArg(parts[i])
}

func parseFloatArg(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// resolveAttachPoint implements "attachment point is the last (tag) in the
// item name, else the folder's (tag), else Default" (spec.md §4.7).
func resolveAttachPoint(item *inventory.Item, folder *inventory.Folder) rlvconst.AttachPoint {
	if p, ok := rlvconst.ExtractAttachPoint(item.Name); ok {
		return p
	}
	if folder != nil {
		if p, ok := rlvconst.ExtractAttachPoint(folder.Name); ok {
			return p
		}
	}
	return rlvconst.AttachPointDefault
}

// isDetachable implements spec.md §4.7's detachability rule.
func isDetachable(item *inventory.Item, folder *inventory.Folder, isDetachMe bool, canDetach bool) bool {
	if !item.IsWorn && !item.IsAttached && !item.GestureActive {
		return false
	}
	if !isDetachMe {
		if strings.Contains(strings.ToLower(item.Name), "nostrip") && !item.IsLink {
			return false
		}
		if folder != nil && folder.IsNoStrip() && !item.IsLink {
			return false
		}
	}
	if item.IsWorn && item.WornOn.AlwaysNonDetachable() {
		return false
	}
	return canDetach
}

func dedupeByID(items []*inventory.Item) []*inventory.Item {
	seen := make(map[string]bool)
	var out []*inventory.Item
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}
