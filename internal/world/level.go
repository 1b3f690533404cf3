package world

import (
	"context"
	"fmt"
	"sync/atomic"

	"boxwalk/server/internal/nav"
	"boxwalk/server/logging"
	levellog "boxwalk/server/logging/level"
)

// Deps bundles runtime dependencies required to construct a Level.
type Deps struct {
	Publisher logging.Publisher
}

// Level owns the static object list and the navmesh derived from it. The
// mesh pointer is swapped atomically on rebuild so containment queries from
// the simulation loop never observe a half-built mesh.
type Level struct {
	config  Config
	objects []Object

	publisher logging.Publisher
	mesh      atomic.Pointer[nav.Mesh]
}

// NewLevel builds a level from normalized configuration and the given object
// set. The navmesh is built once here; malformed footprints fail the load.
func NewLevel(cfg Config, objects []Object, deps Deps) (*Level, error) {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}

	level := &Level{
		config:    cfg.normalized(),
		publisher: publisher,
	}
	if err := level.Rebuild(objects); err != nil {
		return nil, err
	}
	return level, nil
}

// Config returns the normalized configuration captured at construction time.
func (l *Level) Config() Config {
	if l == nil {
		return Config{}
	}
	return l.config
}

// Objects returns a copy of the current object list.
func (l *Level) Objects() []Object {
	if l == nil || len(l.objects) == 0 {
		return nil
	}
	return append([]Object(nil), l.objects...)
}

// Navmesh returns the current immutable navmesh.
func (l *Level) Navmesh() *nav.Mesh {
	if l == nil {
		return nil
	}
	return l.mesh.Load()
}

// Rebuild derives a fresh navmesh from the replacement object set and swaps
// it in. On error the previous mesh and object list stay active.
func (l *Level) Rebuild(objects []Object) error {
	footprints := ClippingFootprints(objects)
	mesh, err := nav.NewMesh(footprints, l.config.Padding)
	if err != nil {
		return fmt.Errorf("build navmesh: %w", err)
	}

	l.objects = append([]Object(nil), objects...)
	l.mesh.Store(mesh)

	levellog.NavmeshBuilt(context.Background(), l.publisher, 0, logging.EntityRef{Kind: logging.EntityKindLevel}, levellog.NavmeshBuiltPayload{
		Footprints: len(footprints),
		Regions:    len(mesh.Regions()),
		Padding:    mesh.Padding(),
	}, nil)

	return nil
}
