package core

import "math"

// reflectAxis folds pos back into [0, limit] at the walls and flips vel once
// per wall crossed. Touching a wall exactly is not a crossing.
func reflectAxis(pos, vel, limit float64) (float64, float64) {
	if pos >= 0 && pos <= limit {
		return pos, vel
	}
	if limit <= 0 {
		return 0, -vel
	}

	var crossings int
	if pos > limit {
		crossings = int(math.Ceil(pos/limit)) - 1
	} else {
		crossings = int(math.Ceil(-pos / limit))
	}

	period := 2 * limit
	folded := math.Mod(pos, period)
	if folded < 0 {
		folded += period
	}
	if folded > limit {
		folded = period - folded
	}

	if crossings%2 == 1 {
		vel = -vel
	}
	return folded, vel
}

// advance integrates e over elapsedMS and reflects it inside the arena.
// Both axes are handled independently and may reflect in the same step.
func (e *Entity) advance(elapsedMS, timeScale, arenaW, arenaH float64) {
	e.X += e.VX * elapsedMS * timeScale
	e.Y += e.VY * elapsedMS * timeScale
	e.X, e.VX = reflectAxis(e.X, e.VX, arenaW-e.Size)
	e.Y, e.VY = reflectAxis(e.Y, e.VY, arenaH-e.Size)
}
