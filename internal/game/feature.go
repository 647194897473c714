package game

import "math"

// Situational features, each normalized to [0,1]. Evaluators and the
// weapon brains score off these instead of raw world state.

const (
	// minItemRange/maxItemRange bound the distance band that matters
	// for item proximity scoring. Anything closer than min counts as
	// "right here", anything past max as "far".
	minItemRange = 50.0
	maxItemRange = 500.0
)

// HealthRatio is current health over max, 0 for a zero-max agent.
func HealthRatio(a *Agent) float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return clamp01(a.Health / a.MaxHealth)
}

// DistanceToItemScore rates how far the nearest active health pack is:
// 0.1 at point blank rising to 1 at maxItemRange and beyond. With no
// pack on the map it returns 1, so "nothing to fetch" reads the same
// as "too far to matter".
func DistanceToItemScore(a *Agent) float64 {
	pack := a.world.ClosestReachableHealthPack(a)
	if pack == nil {
		return 1
	}
	d := math.Hypot(pack.X-a.X, pack.Y-a.Y)
	d = clamp(d, minItemRange, maxItemRange)
	return d / maxItemRange
}
