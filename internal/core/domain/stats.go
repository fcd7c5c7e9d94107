package domain

import "time"

// ReferralPoints is awarded to the referrer each time a referred registration
// completes.
const ReferralPoints = 100

// levelThresholds maps cumulative points to player levels. Levels only ever
// increase; there is no decay.
var levelThresholds = []int64{0, 500, 1500, 4000, 10000}

// PlayerStats is the gamification record attached to a user, keyed by RUN.
// ReferralCode is globally unique and handed out at registration.
type PlayerStats struct {
	RUN          string    `json:"run"`
	ReferralCode string    `json:"codigoReferido"`
	Points       int64     `json:"puntos"`
	Level        int       `json:"nivel"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LevelForPoints returns the 1-based level reached with the given points.
func LevelForPoints(points int64) int {
	level := 1
	for i, threshold := range levelThresholds {
		if points >= threshold {
			level = i + 1
		}
	}
	return level
}
