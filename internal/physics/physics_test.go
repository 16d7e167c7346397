package physics

import "testing"

func TestRect_Edges(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	if r.Left() != 10 || r.Right() != 40 || r.Top() != 20 || r.Bottom() != 60 {
		t.Errorf("unexpected edges: l=%v r=%v t=%v b=%v", r.Left(), r.Right(), r.Top(), r.Bottom())
	}
	if r.CenterX() != 25 || r.CenterY() != 40 {
		t.Errorf("expected center (25,40), got (%v,%v)", r.CenterX(), r.CenterY())
	}
}

func TestRect_Intersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"contained", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"touching right edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"touching bottom edge", Rect{X: 0, Y: 10, W: 5, H: 5}, false},
		{"disjoint", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
		{"zero width", Rect{X: 5, Y: 5, W: 0, H: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("a.Intersects(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(a); got != tt.want {
				t.Errorf("b.Intersects(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}

	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if !r.Contains(29.9, 19.9) {
		t.Error("point just inside bottom-right should be inside")
	}
	if r.Contains(30, 15) {
		t.Error("right edge should be outside")
	}
	if r.Contains(15, 20) {
		t.Error("bottom edge should be outside")
	}
}

func TestCentered(t *testing.T) {
	r := Centered(60, 40, 24, 8)
	if r.X != 48 || r.Y != 36 || r.W != 24 || r.H != 8 {
		t.Errorf("unexpected rect %+v", r)
	}
}
