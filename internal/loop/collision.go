package loop

import "github.com/tomz197/invaders/internal/physics"

// resolveProjectileHits removes every projectile that hit an enemy together
// with the first enemy it hit, scoring each destroyed enemy. A cleared fleet
// starts the next level. Returns the number of destroyed enemies.
func (g *Game) resolveProjectileHits() int {
	destroyed := 0
	for _, p := range g.Projectiles.Items() {
		if p.IsDestroyed() {
			continue
		}
		if e, ok := g.Enemies.CollideAny(p.Bounds()); ok {
			e.MarkDestroyed()
			p.MarkDestroyed()
			destroyed++
		}
	}

	// Projectiles overlapping an enemy another projectile already destroyed
	// are spent too; they score nothing.
	if destroyed > 0 {
		for _, p := range g.Projectiles.Items() {
			if !p.IsDestroyed() && g.overlapsDestroyedEnemy(p.Bounds()) {
				p.MarkDestroyed()
			}
		}
	}
	g.Projectiles.Compact()
	g.Enemies.Compact()

	if destroyed > 0 {
		g.addScore(g.Settings.EnemyPoints * destroyed)
	}

	if g.Enemies.Len() == 0 {
		g.Projectiles.Clear()
		g.Settings.IncreaseSpeed()
		g.CreateFleet()
		g.Stats.Level++
		g.logger.Debug("level up", "level", g.Stats.Level, "enemy_speed", g.Settings.EnemySpeed)
	}
	return destroyed
}

func (g *Game) overlapsDestroyedEnemy(r physics.Rect) bool {
	for _, e := range g.Enemies.Items() {
		if e.IsDestroyed() && e.Bounds().Intersects(r) {
			return true
		}
	}
	return false
}

// checkFleetEdges reverses the fleet once if any enemy would leave the screen.
func (g *Game) checkFleetEdges() {
	s := g.Settings
	for _, e := range g.Enemies.Items() {
		if e.AtEdge(s.ScreenWidth, s.EnemySpeed, s.FleetDirection) {
			g.changeFleetDirection()
			return
		}
	}
}

// changeFleetDirection drops the whole fleet and flips its direction.
func (g *Game) changeFleetDirection() {
	for _, e := range g.Enemies.Items() {
		e.Drop(g.Settings.FleetDropSpeed)
	}
	g.Settings.FleetDirection *= -1
}

// checkShipCollision reports whether any enemy touches the ship.
func (g *Game) checkShipCollision() bool {
	_, hit := g.Enemies.CollideAny(g.Ship.Bounds())
	return hit
}

// checkFloorBreach reports whether any enemy reached the bottom of the screen.
func (g *Game) checkFloorBreach() bool {
	for _, e := range g.Enemies.Items() {
		if e.Bounds().Bottom() >= g.Settings.ScreenHeight {
			return true
		}
	}
	return false
}
