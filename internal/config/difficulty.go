package config

// SpeedCurve derives entity speed from the score. The curve is a step
// function: every PointsPerLevel points add Increment to the base speed.
type SpeedCurve struct {
	cfg SpeedConfig
}

// NewSpeedCurve creates a speed curve from configuration.
func NewSpeedCurve(cfg SpeedConfig) SpeedCurve {
	if cfg.PointsPerLevel <= 0 {
		cfg.PointsPerLevel = 1 // Prevent division by zero
	}
	return SpeedCurve{cfg: cfg}
}

// Level returns the number of completed levels for a score.
func (c SpeedCurve) Level(score int) int {
	if score <= 0 {
		return 0
	}
	return score / c.cfg.PointsPerLevel
}

// Speed returns the velocity magnitude assigned to entities spawned at this score.
func (c SpeedCurve) Speed(score int) float64 {
	return c.cfg.Base + float64(c.Level(score))*c.cfg.Increment
}
