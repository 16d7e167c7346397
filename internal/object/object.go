// Package object defines the game entities and the ordered groups that hold them.
package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Settings *config.Settings
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface  draw.Surface
	Settings *config.Settings
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object one frame. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw paints the object on ctx.Surface.
	Draw(ctx DrawContext)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on the next compaction.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Entity is an object with a collision box that can live in a Group.
type Entity interface {
	Object
	Destructible
	Bounds() physics.Rect
}

// destroyable is embedded by entities to share the removal flag.
type destroyable struct {
	destroyed bool
}

// MarkDestroyed marks the entity for removal.
func (d *destroyable) MarkDestroyed() {
	d.destroyed = true
}

// IsDestroyed returns true if the entity is marked for removal.
func (d *destroyable) IsDestroyed() bool {
	return d.destroyed
}
