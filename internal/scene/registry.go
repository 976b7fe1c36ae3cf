package scene

import (
	"math/rand"

	"github.com/scriptorium/scriptorium/internal/model"
)

// jitterRange bounds the random X/Z offset that keeps co-located
// manuscripts from stacking on one point.
const jitterRange = 2.5

// Registry maps manuscript IDs to their scene objects and keeps that
// mapping in sync with the latest snapshot. It is confined to the UI
// update loop: only Reconcile mutates it, and a render frame always sees
// either the pre- or post-reconcile state.
type Registry struct {
	objects map[string]*Object
	rng     *rand.Rand
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		objects: make(map[string]*Object),
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

// newRegistryWithSeed is used by tests that need deterministic jitter.
func newRegistryWithSeed(seed int64) *Registry {
	r := NewRegistry()
	r.rng = rand.New(rand.NewSource(seed))
	return r
}

// Reconcile updates the object set to match the given manuscripts.
// Removal first: every tracked ID absent from the new map is dropped.
// Then every present entry is created or updated in place — label from
// the title (or truncated ID), color by status/stage precedence, Y from
// the stage anchor, X/Z re-jittered every cycle. Position and color are
// overwritten unconditionally; the pass never aborts partway, so after
// it returns the registry's key set equals the snapshot's key set.
func (r *Registry) Reconcile(manuscripts map[string]model.ManuscriptState) {
	for id := range r.objects {
		if _, ok := manuscripts[id]; !ok {
			delete(r.objects, id)
		}
	}

	for id, state := range manuscripts {
		obj, ok := r.objects[id]
		if !ok {
			obj = &Object{ID: id}
			r.objects[id] = obj
		}

		obj.Label = state.DisplayTitle(id)
		obj.Color = targetColor(state)
		obj.Pos = Vec3{
			X: r.jitter(),
			Y: AnchorY(state.Stage),
			Z: r.jitter(),
		}
	}
}

func (r *Registry) jitter() float64 {
	return (r.rng.Float64()*2 - 1) * jitterRange
}

// Len returns the number of tracked objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Get returns the object for an ID, or nil if untracked.
func (r *Registry) Get(id string) *Object {
	return r.objects[id]
}

// Objects returns the tracked objects in unspecified order. The slice is
// fresh but the pointed-to objects are the live ones; callers must treat
// them as read-only.
func (r *Registry) Objects() []*Object {
	out := make([]*Object, 0, len(r.objects))
	for _, obj := range r.objects {
		out = append(out, obj)
	}
	return out
}
