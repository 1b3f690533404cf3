package level

import (
	"context"

	"boxwalk/server/logging"
)

const (
	// EventNavmeshBuilt is emitted when a navmesh build or rebuild completes.
	EventNavmeshBuilt logging.EventType = "level.navmesh_built"
	// EventLevelReset is emitted when the level geometry is replaced at runtime.
	EventLevelReset logging.EventType = "level.reset"
)

// NavmeshBuiltPayload captures the shape of a completed navmesh build.
type NavmeshBuiltPayload struct {
	Footprints int     `json:"footprints"`
	Regions    int     `json:"regions"`
	Padding    float64 `json:"padding"`
}

// LevelResetPayload captures the size of a replacement object set.
type LevelResetPayload struct {
	Objects int `json:"objects"`
}

// NavmeshBuilt publishes a navmesh build event.
func NavmeshBuilt(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload NavmeshBuiltPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventNavmeshBuilt,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLevel,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// LevelReset publishes a level reset event.
func LevelReset(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload LevelResetPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventLevelReset,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLevel,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
