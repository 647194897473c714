package game

// HealthPack is a collectible heal sitting at a fixed spot. When
// collected it deactivates and respawns in place after a delay.
type HealthPack struct {
	ID     int
	X, Y   float64
	Active bool

	// respawnAt is the sim time the pack reappears; meaningful only
	// while inactive.
	respawnAt float64
}

// Deactivate takes the pack off the map until now+delay.
func (h *HealthPack) Deactivate(now, delay float64) {
	h.Active = false
	h.respawnAt = now + delay
}

// Update respawns the pack once its timer expires.
func (h *HealthPack) Update(now float64) {
	if !h.Active && now >= h.respawnAt {
		h.Active = true
	}
}
