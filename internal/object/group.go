package object

import "github.com/tomz197/invaders/internal/physics"

// Group is an ordered collection of entities. Iteration order is insertion
// order, which keeps collision resolution deterministic.
// The zero value is an empty group ready to use.
type Group[T Entity] struct {
	items []T
}

// Add appends an entity to the group.
func (g *Group[T]) Add(item T) {
	g.items = append(g.items, item)
}

// Len returns the number of entities, including ones marked but not yet compacted.
func (g *Group[T]) Len() int {
	return len(g.items)
}

// Items returns the entities in order. The slice is owned by the group.
func (g *Group[T]) Items() []T {
	return g.items
}

// Clear removes every entity.
func (g *Group[T]) Clear() {
	clear(g.items)
	g.items = g.items[:0]
}

// Update advances every entity and drops the ones that asked to be removed.
func (g *Group[T]) Update(ctx UpdateContext) {
	for _, item := range g.items {
		if item.Update(ctx) {
			item.MarkDestroyed()
		}
	}
	g.Compact()
}

// Compact removes destroyed entities in place, preserving order.
func (g *Group[T]) Compact() {
	kept := g.items[:0]
	for _, item := range g.items {
		if !item.IsDestroyed() {
			kept = append(kept, item)
		}
	}
	clear(g.items[len(kept):])
	g.items = kept
}

// Draw paints every live entity in order.
func (g *Group[T]) Draw(ctx DrawContext) {
	for _, item := range g.items {
		if !item.IsDestroyed() {
			item.Draw(ctx)
		}
	}
}

// CollideAny returns the first live entity whose bounds intersect r.
func (g *Group[T]) CollideAny(r physics.Rect) (T, bool) {
	for _, item := range g.items {
		if !item.IsDestroyed() && item.Bounds().Intersects(r) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
