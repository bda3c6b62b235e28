// Package combat holds damage bookkeeping and the projectile state machines
// shared by enemies and the player.
package combat

// DefaultInvincibleMs is the window after a hit during which further hits are ignored.
const DefaultInvincibleMs = 3000

// Clock reports the current time in milliseconds. The arena passes its
// simulated clock so replays stay deterministic.
type Clock func() int64

// Tracker counts lives and enforces the invincibility window.
type Tracker struct {
	lives        int
	invincibleMs int64
	lastHit      int64
	hitOnce      bool
	clock        Clock
}

// NewTracker returns a tracker with the given lives. A negative
// invincibility window falls back to DefaultInvincibleMs.
func NewTracker(lives int, invincibleMs int64, clock Clock) *Tracker {
	if invincibleMs < 0 {
		invincibleMs = DefaultInvincibleMs
	}
	return &Tracker{
		lives:        lives,
		invincibleMs: invincibleMs,
		clock:        clock,
	}
}

// Lives returns the remaining life count.
func (t *Tracker) Lives() int {
	return t.lives
}

// TakeDamage removes amount lives unless the tracker is still inside the
// invincibility window of a previous hit. Ignored hits have no side effect.
// It reports whether the hit was applied.
func (t *Tracker) TakeDamage(amount int) bool {
	if amount <= 0 {
		return false
	}
	now := t.clock()
	if t.hitOnce && now-t.lastHit < t.invincibleMs {
		return false
	}
	t.lives -= amount
	t.lastHit = now
	t.hitOnce = true
	return true
}

// DealDamage applies amount to target's tracker.
func (t *Tracker) DealDamage(target *Tracker, amount int) bool {
	return target.TakeDamage(amount)
}

// IsDead reports whether no lives remain.
func (t *Tracker) IsDead() bool {
	return t.lives <= 0
}

// Invincible reports whether a hit right now would be ignored.
func (t *Tracker) Invincible() bool {
	return t.hitOnce && t.clock()-t.lastHit < t.invincibleMs
}

// Reset restores lives and clears the invincibility window.
func (t *Tracker) Reset(lives int) {
	t.lives = lives
	t.lastHit = 0
	t.hitOnce = false
}
