package object

import (
	"math"

	"github.com/tomz197/invaders/internal/draw"
)

// FleetSize returns the number of columns and rows that fit on the screen.
// Columns leave one enemy width of margin per side at a pitch of two widths.
// Rows start three enemy heights from the top and stop before the ship band.
// Counts never go below zero.
func FleetSize(screenWidth, screenHeight, enemyWidth, enemyHeight, shipHeight float64) (columns, rows int) {
	if enemyWidth <= 0 || enemyHeight <= 0 {
		return 0, 0
	}
	columns = int(math.Floor((screenWidth - 2*enemyWidth) / (2 * enemyWidth)))
	rows = int(math.Floor((screenHeight - 3*enemyHeight - shipHeight) / (3 * enemyHeight)))
	return max(columns, 0), max(rows, 0)
}

// LayoutFleet returns the top-left corner of every enemy in the fleet, row by row.
func LayoutFleet(screenWidth, screenHeight, enemyWidth, enemyHeight, shipHeight float64) []draw.Point {
	columns, rows := FleetSize(screenWidth, screenHeight, enemyWidth, enemyHeight, shipHeight)
	if columns == 0 || rows == 0 {
		return nil
	}

	points := make([]draw.Point, 0, columns*rows)
	for r := range rows {
		for c := range columns {
			points = append(points, draw.Point{
				X: enemyWidth + 2*enemyWidth*float64(c),
				Y: 3*enemyHeight + 2*enemyHeight*float64(r),
			})
		}
	}
	return points
}
