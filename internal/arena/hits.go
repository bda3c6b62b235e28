package arena

import (
	"cmp"
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

var (
	tagEnemy      = resolv.NewTag("enemy")
	tagShip       = resolv.NewTag("ship")
	tagProjectile = resolv.NewTag("projectile")
)

// hitSpace is the projectile narrow phase for one tick. Live enemies and the
// ship are rectangles in a resolv space; laser and bullet boxes are tested
// against them. The space is padded by one cell so boxes on the world edge
// still land in a cell.
type hitSpace struct {
	space   *resolv.Space
	origin  core.Vec2 // world point at the space's (0, 0)
	enemies map[resolv.IShape]*enemy
}

func (g *Game) newHitSpace() *hitSpace {
	cell := max(1, int(math.Ceil(g.cfg.World.CellSize)))
	pad := float64(cell)

	h := &hitSpace{
		space: resolv.NewSpace(
			int(math.Ceil(g.world.W+2*pad)),
			int(math.Ceil(g.world.H+2*pad)),
			cell, cell,
		),
		origin:  core.V(g.world.X-pad, g.world.Y-pad),
		enemies: make(map[resolv.IShape]*enemy, len(g.enemies)),
	}

	for _, e := range g.enemies {
		if e.removed {
			continue
		}
		sh := h.rect(e.Bounds())
		sh.Tags().Set(tagEnemy)
		h.space.Add(sh)
		h.enemies[sh] = e
	}

	ship := h.rect(g.player.body.Bounds())
	ship.Tags().Set(tagShip)
	h.space.Add(ship)
	return h
}

func (h *hitSpace) rect(r core.Rect) *resolv.ConvexPolygon {
	return resolv.NewRectangleFromTopLeft(r.X-h.origin.X, r.Y-h.origin.Y, r.W, r.H)
}

// enemiesAt returns the live enemies overlapping r, lowest id first.
func (h *hitSpace) enemiesAt(r core.Rect) []*enemy {
	sh := h.rect(r)
	sh.Tags().Set(tagProjectile)
	h.space.Add(sh)
	defer h.space.Remove(sh)

	var found []*enemy
	sh.IntersectionTest(resolv.IntersectionTestSettings{
		TestAgainst: sh.SelectTouchingCells(0).FilterShapes().ByTags(tagEnemy),
		OnIntersect: func(set resolv.IntersectionSet) bool {
			if e := h.enemies[set.OtherShape]; e != nil && !e.removed {
				found = append(found, e)
			}
			return true
		},
	})

	slices.SortFunc(found, func(a, b *enemy) int { return cmp.Compare(a.id, b.id) })
	return slices.Compact(found)
}

// hitsShip reports whether r overlaps the ship.
func (h *hitSpace) hitsShip(r core.Rect) bool {
	sh := h.rect(r)
	sh.Tags().Set(tagProjectile)
	h.space.Add(sh)
	defer h.space.Remove(sh)

	hit := false
	sh.IntersectionTest(resolv.IntersectionTestSettings{
		TestAgainst: sh.SelectTouchingCells(0).FilterShapes().ByTags(tagShip),
		OnIntersect: func(set resolv.IntersectionSet) bool {
			hit = true
			return false
		},
	})
	return hit
}
