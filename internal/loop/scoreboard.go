package loop

import (
	"strconv"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/object"
)

const startHint = "click Play or press Enter, q quits"

// Scoreboard layout in logical units.
const (
	scoreMargin  = 2
	scoreRow     = 2
	levelRow     = 6
	shipIconGap  = 2
	shipIconRow  = 1
	shipIconLeft = 2
)

// drawScoreboard shows score, high score, level and remaining ships.
func (g *Game) drawScoreboard(ctx object.DrawContext) {
	s := g.Settings
	surface := ctx.Surface

	surface.DrawText(s.ScreenWidth-scoreMargin, scoreRow,
		formatScore(g.Stats.Score), draw.AlignRight, s.TextColor, s.BgColor)
	surface.DrawText(s.ScreenWidth/2, scoreRow,
		"High "+formatScore(g.Stats.HighScore), draw.AlignCenter, s.TextColor, s.BgColor)
	surface.DrawText(s.ScreenWidth-scoreMargin, levelRow,
		"Level "+strconv.Itoa(g.Stats.Level), draw.AlignRight, s.TextColor, s.BgColor)

	for i := range g.Stats.ShipsLeft {
		icon := object.Ship{
			X: shipIconLeft + float64(i)*(s.ShipWidth+shipIconGap),
			Y: shipIconRow,
			W: s.ShipWidth,
			H: s.ShipHeight,
		}
		icon.Draw(ctx)
	}
}

// formatScore rounds to the nearest ten and adds thousands separators.
func formatScore(score int) string {
	if score < 0 {
		score = 0
	}
	rounded := (score + 5) / 10 * 10
	digits := strconv.Itoa(rounded)

	n := len(digits)
	if n <= 3 {
		return digits
	}
	out := make([]byte, 0, n+(n-1)/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return string(out)
}
