package object

import (
	"math"
	"testing"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
)

// recordingSurface captures draw calls for assertions.
type recordingSurface struct {
	rects int
	polys int
	texts []string
}

func (r *recordingSurface) Bounds() (float64, float64)                { return config.ViewWidth, config.ViewHeight }
func (r *recordingSurface) Fill(draw.Color)                           {}
func (r *recordingSurface) FillRect(_, _, _, _ float64, _ draw.Color) { r.rects++ }
func (r *recordingSurface) FillPolygon(_ []draw.Point, _ draw.Color)  { r.polys++ }
func (r *recordingSurface) SetPointerVisible(bool)                    {}
func (r *recordingSurface) ToLogical(col, row int) (float64, float64) {
	return float64(col), float64(row)
}
func (r *recordingSurface) Present() error { return nil }
func (r *recordingSurface) DrawText(_, _ float64, text string, _ draw.Align, _, _ draw.Color) {
	r.texts = append(r.texts, text)
}

func TestShip_NewShipCentered(t *testing.T) {
	s := config.Default()
	ship := NewShip(s)

	if got := ship.Bounds().CenterX(); got != s.ScreenWidth/2 {
		t.Errorf("expected ship centered at %v, got %v", s.ScreenWidth/2, got)
	}
	if got := ship.Bounds().Bottom(); got != s.ScreenHeight {
		t.Errorf("expected ship bottom at %v, got %v", s.ScreenHeight, got)
	}
	if ship.MovingLeft || ship.MovingRight {
		t.Error("new ship should have no movement intent")
	}
}

func TestShip_UpdateClampsToScreen(t *testing.T) {
	s := config.Default()
	ctx := UpdateContext{Settings: s}
	ship := NewShip(s)

	ship.MovingRight = true
	for range 1000 {
		ship.Update(ctx)
	}
	if ship.Bounds().Right() != s.ScreenWidth {
		t.Errorf("expected ship at right edge, got right=%v", ship.Bounds().Right())
	}

	ship.MovingRight = false
	ship.MovingLeft = true
	for range 1000 {
		ship.Update(ctx)
	}
	if ship.X != 0 {
		t.Errorf("expected ship at left edge, got x=%v", ship.X)
	}
}

func TestShip_BothIntentsCancel(t *testing.T) {
	s := config.Default()
	ship := NewShip(s)
	x := ship.X

	ship.MovingLeft = true
	ship.MovingRight = true
	ship.Update(UpdateContext{Settings: s})

	if math.Abs(ship.X-x) > 1e-9 {
		t.Errorf("expected ship to stay at %v, got %v", x, ship.X)
	}
}

func TestProjectile_SpawnsAtShipTop(t *testing.T) {
	s := config.Default()
	ship := NewShip(s)
	p := NewProjectile(ship, s.BulletWidth, s.BulletHeight, s.BulletSpeed)

	if p.Bounds().CenterX() != ship.Bounds().CenterX() {
		t.Errorf("expected projectile centered on ship, got %v vs %v", p.Bounds().CenterX(), ship.Bounds().CenterX())
	}
	if p.Y != ship.Y {
		t.Errorf("expected projectile top at ship top %v, got %v", ship.Y, p.Y)
	}
}

func TestProjectile_RemovedWhenBottomLeavesScreen(t *testing.T) {
	ctx := UpdateContext{Settings: config.Default()}
	p := &Projectile{Y: 2, W: 1, H: 3, Speed: 1}

	if p.Update(ctx) {
		t.Fatal("projectile with bottom at 4 should stay")
	}
	if p.Update(ctx) {
		t.Fatal("projectile with bottom at 3 should stay")
	}
	p.Y = -2
	if !p.Update(ctx) {
		t.Error("projectile with bottom at 0 should be removed")
	}
}

func TestEnemy_UpdateFollowsFleetDirection(t *testing.T) {
	s := config.Default()
	e := NewEnemy(10, 10, 6, 4)

	e.Update(UpdateContext{Settings: s})
	if e.X != 10+s.EnemySpeed {
		t.Errorf("expected x=%v, got %v", 10+s.EnemySpeed, e.X)
	}

	s.FleetDirection = -1
	e.Update(UpdateContext{Settings: s})
	if math.Abs(e.X-10) > 1e-9 {
		t.Errorf("expected x back at 10, got %v", e.X)
	}
}

func TestEnemy_AtEdge(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		direction int
		want      bool
	}{
		{"right edge moving right", 113.9, 1, true},
		{"clear of right edge", 113, 1, false},
		{"right edge moving left", 113.9, -1, false},
		{"left edge moving left", 0.1, -1, true},
		{"clear of left edge", 1, -1, false},
		{"left edge moving right", 0.1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnemy(tt.x, 0, 6, 4)
			if got := e.AtEdge(120, 0.5, tt.direction); got != tt.want {
				t.Errorf("AtEdge = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestButton_ContainsAndDraw(t *testing.T) {
	s := config.Default()
	b := NewButton("Play", 60, 40, 24, 8, s.ButtonColor, s.ButtonTextColor)

	if !b.Contains(60, 40) {
		t.Error("center should be on the button")
	}
	if b.Contains(72, 40) {
		t.Error("right edge should be off the button")
	}
	if b.Contains(60, 30) {
		t.Error("point above should be off the button")
	}

	surface := &recordingSurface{}
	b.Draw(DrawContext{Surface: surface, Settings: s})
	if surface.rects != 1 || len(surface.texts) != 1 || surface.texts[0] != "Play" {
		t.Errorf("expected one rect and label, got rects=%d texts=%v", surface.rects, surface.texts)
	}
}

func TestEntities_Draw(t *testing.T) {
	s := config.Default()
	surface := &recordingSurface{}
	ctx := DrawContext{Surface: surface, Settings: s}

	NewShip(s).Draw(ctx)
	if surface.polys != 1 {
		t.Errorf("expected ship hull polygon, got %d", surface.polys)
	}

	var g Group[*Enemy]
	g.Add(NewEnemy(0, 0, 6, 4))
	dead := NewEnemy(10, 0, 6, 4)
	dead.MarkDestroyed()
	g.Add(dead)

	before := surface.rects
	g.Draw(ctx)
	if surface.rects-before != 5 {
		t.Errorf("expected only the live enemy drawn (5 rects), got %d", surface.rects-before)
	}
}
