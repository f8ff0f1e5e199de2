package permission

import (
	"strconv"

	"rlv/internal/restriction"
)

// CameraSnapshot is the aggregated result of every live @setcam_* / @camdraw*
// restriction (spec.md §3, §4.5).
type CameraSnapshot struct {
	Locked bool // at least one @setcam_unlock restriction is active

	MinDistance     *float64
	MaxDistance     *float64
	MinZoom         *float64
	MaxZoom         *float64
	MinFov          *float64
	MaxFov          *float64
	MinDrawDistance *float64
	MaxDrawDistance *float64

	TextureUUID *string // most recent @setcam_textures argument, if any

	DrawColor    [3]float64 // averaged per channel, each clamped to [0,1]
	HasDrawColor bool
}

// CameraState aggregates every currently-restricted camera dimension into
// one snapshot. Per-dimension floats take the tightest (most restrictive)
// bound across all issuers; @camdrawmin/@camdrawmax floor at 0.40 (enforced
// already at parse time, spec.md §4.1) and are then min/max-aggregated like
// every other camera distance.
func (e *Evaluator) CameraState() CameraSnapshot {
	var snap CameraSnapshot

	// Every restriction must be honored at once, so lower bounds aggregate
	// to the largest min and upper bounds to the smallest max.
	snap.MinDistance = maxOf(e.store.Snapshot("setcam_avdistmin", ""))
	snap.MaxDistance = minOf(e.store.Snapshot("setcam_avdistmax", ""))
	snap.MinZoom = maxOf(e.store.Snapshot("setcam_zoommin", ""))
	snap.MaxZoom = minOf(e.store.Snapshot("setcam_zoommax", ""))
	snap.MinFov = maxOf(e.store.Snapshot("setcam_fovmin", ""))
	snap.MaxFov = minOf(e.store.Snapshot("setcam_fovmax", ""))
	snap.MinDrawDistance = maxOf(e.store.Snapshot("camdrawmin", ""))
	snap.MaxDrawDistance = minOf(e.store.Snapshot("camdrawmax", ""))

	if texRestrictions := e.store.Snapshot("setcam_textures", ""); len(texRestrictions) > 0 {
		last := texRestrictions[len(texRestrictions)-1]
		if len(last.Args) > 0 {
			uuid := last.Args[0]
			snap.TextureUUID = &uuid
		}
	}

	if colors := e.store.Snapshot("setcam_drawcolor", ""); len(colors) > 0 {
		var sum [3]float64
		n := 0
		for _, r := range colors {
			if len(r.Args) != 3 {
				continue
			}
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(r.Args[i], 64)
				if err != nil {
					continue
				}
				sum[i] += f
			}
			n++
		}
		if n > 0 {
			snap.HasDrawColor = true
			for i := 0; i < 3; i++ {
				snap.DrawColor[i] = clamp01(sum[i] / float64(n))
			}
		}
	}

	// The locked bit is the presence of @setcam_unlock restrictions, not an
	// inference from the numeric limits (spec.md §3).
	snap.Locked = e.IsRestricted("setcam_unlock")

	return snap
}

func minOf(list []restriction.Restriction) *float64 {
	return extremeOf(list, func(a, b float64) bool { return a < b })
}

func maxOf(list []restriction.Restriction) *float64 {
	return extremeOf(list, func(a, b float64) bool { return a > b })
}

// extremeOf picks the value among list's arguments for which better(v, best)
// holds, skipping restrictions with no parseable float argument.
func extremeOf(list []restriction.Restriction, better func(a, b float64) bool) *float64 {
	var best float64
	found := false
	for _, r := range list {
		if len(r.Args) == 0 {
			continue
		}
		f, err := strconv.ParseFloat(r.Args[0], 64)
		if err != nil {
			continue
		}
		if !found || better(f, best) {
			best = f
			found = true
		}
	}
	if !found {
		return nil
	}
	return &best
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
