package combat

import "github.com/vovakirdan/rocket-arcade/internal/core"

// Muzzle is a one-shot flash drawn at a launcher's muzzle point.
type Muzzle struct {
	parent Launcher
	frames []rune
	frame  int
	timer  float64
	dead   bool
}

// NewMuzzle attaches a flash to l.
func NewMuzzle(l Launcher, frames []rune) *Muzzle {
	return &Muzzle{parent: l, frames: frames, dead: len(frames) == 0}
}

// Update plays the flash once.
func (m *Muzzle) Update(dtMs float64) {
	if m.dead {
		return
	}
	m.frame, m.timer = AdvanceFrames(len(m.frames), m.frame, m.timer, AnimStepMs, dtMs, false)
	if m.frame >= len(m.frames) {
		m.dead = true
	}
}

// Dead reports whether the flash has finished.
func (m *Muzzle) Dead() bool { return m.dead }

// Pos returns where the flash is drawn this tick.
func (m *Muzzle) Pos() core.Vec2 { return MuzzlePoint(m.parent) }

// Glyph returns the current frame.
func (m *Muzzle) Glyph() rune {
	if len(m.frames) == 0 {
		return ' '
	}
	return m.frames[min(m.frame, len(m.frames)-1)]
}
