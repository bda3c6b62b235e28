package arena

import (
	"fmt"
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/combat"
	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// Heading glyphs, counter-clockwise from east in 45° steps.
var headingGlyphs = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// Glyph colors by entity.
var kindColors = map[EnemyKind]core.Color{
	KindDrifter: core.ColorBrightRed,
	KindWeaver:  core.ColorBrightMagenta,
	KindOrbiter: core.ColorBrightYellow,
}

const (
	PlayerColor = core.ColorBrightCyan
	LaserColor  = core.ColorBrightGreen
	BulletColor = core.ColorOrange
	HomingColor = core.ColorRed
	MuzzleColor = core.ColorBrightWhite
	BorderColor = core.ColorGray
)

// healthBarWidth is the cell width of an enemy health bar.
const healthBarWidth = 3

// headingGlyph returns the arrow closest to a facing angle.
func headingGlyph(facing float64) rune {
	i := int(math.Round(facing / (math.Pi / 4)))
	return headingGlyphs[((i%8)+8)%8]
}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(0, 1, dst.Width(), dst.Height()-1, BorderColor)

	v := g.viewport(dst)
	for _, m := range g.muzzles {
		if !m.Dead() {
			v.put(dst, m.Pos(), m.Glyph(), MuzzleColor)
		}
	}
	for _, b := range g.bullets {
		if b.Dead() {
			continue
		}
		c := BulletColor
		if b.Homing() {
			c = HomingColor
		}
		v.put(dst, b.Body().Pos, b.Glyph(), c)
	}
	for _, l := range g.lasers {
		if !l.Dead() && l.State() != combat.StateIdle {
			v.put(dst, l.Body().Pos, l.Glyph(), LaserColor)
		}
	}
	for _, e := range g.enemies {
		if !e.removed {
			g.renderHealthBar(dst, v, e)
		}
	}
	for _, e := range g.enemies {
		if !e.removed {
			v.put(dst, e.Body().Pos, headingGlyph(e.Facing()), kindColors[e.kind])
		}
	}

	// Blink while invincible
	if !g.player.hp.Invincible() || (g.tickCount/4)%2 == 0 {
		v.put(dst, g.player.body.Pos, headingGlyph(g.player.facing), PlayerColor)
	}

	g.renderOverlay(dst)
}

// renderHUD draws the score, lives, and wave indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	// Score on left
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))

	// Lives in center
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", g.player.hp.Lives()))

	// Wave and elapsed time on right
	waveText := fmt.Sprintf("Wave %d  %ds", g.wave, g.clockMs/1000)
	dst.DrawText(dst.Width()-len(waveText)-1, 0, waveText)
}

// healthBarFill is how many of width cells a bar at cur of full lives fills.
func healthBarFill(cur, full, width int) int {
	if full <= 0 || cur <= 0 {
		return 0
	}
	return int(math.Ceil(float64(min(cur, full)*width) / float64(full)))
}

// renderHealthBar draws a bar above a damaged enemy, or below it on the top
// row. Enemies that die in one hit never show one.
func (g *Game) renderHealthBar(dst *core.Screen, v viewport, e *enemy) {
	full, cur := g.cfg.Enemy.Lives, e.hp.Lives()
	if full <= 1 || cur >= full {
		return
	}

	x, y := v.cell(e.Body().Pos)
	if y > v.y0 {
		y--
	} else {
		y++
	}
	x0 := core.Clamp(x-healthBarWidth/2, v.x0, v.x0+v.w-healthBarWidth)

	fill := healthBarFill(cur, full, healthBarWidth)
	for i := range healthBarWidth {
		r, c := '·', core.ColorGray
		if i < fill {
			r, c = '▬', core.ColorRed
		}
		dst.SetColored(x0+i, y, r, c)
	}
}

// viewport maps world coordinates into the bordered playfield.
type viewport struct {
	x0, y0           int
	w, h             int
	scaleX, scaleY   float64
	originX, originY float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	w, h := dst.Width()-2, dst.Height()-3
	return viewport{
		x0:      1,
		y0:      2,
		w:       w,
		h:       h,
		scaleX:  float64(w) / math.Max(1, g.world.W),
		scaleY:  float64(h) / math.Max(1, g.world.H),
		originX: g.world.X,
		originY: g.world.Y,
	}
}

// cell returns the screen cell for p, clamped to the playfield.
func (v viewport) cell(p core.Vec2) (int, int) {
	x := int((p.X - v.originX) * v.scaleX)
	y := int((p.Y - v.originY) * v.scaleY)
	return v.x0 + core.Clamp(x, 0, v.w-1), v.y0 + core.Clamp(y, 0, v.h-1)
}

func (v viewport) put(dst *core.Screen, p core.Vec2, r rune, c core.Color) {
	x, y := v.cell(p)
	dst.SetColored(x, y, r, c)
}

// renderOverlay draws pause and game over messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.gameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
