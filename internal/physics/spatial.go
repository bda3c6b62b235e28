package physics

import (
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// DefaultCellSize is the grid cell edge length in pixels.
const DefaultCellSize = 64

// Bounded is anything with a world-space bounding box.
type Bounded interface {
	Bounds() core.Rect
}

type cellKey struct {
	X, Y int
}

// SpatialHash is a uniform-grid broad-phase index over bounding boxes.
// An item is registered in every cell its box overlaps. Items move
// continuously, so the grid is rebuilt each tick instead of updated.
//
// Query order is deterministic: cells are visited column-major from the
// query's top-left and each cell lists items in insertion order.
type SpatialHash[T interface {
	comparable
	Bounded
}] struct {
	cellSize float64
	grid     map[cellKey][]T
	items    []T
	tracked  map[T]struct{}
}

// NewSpatialHash creates an index with the given cell size.
// Non-positive sizes fall back to DefaultCellSize.
func NewSpatialHash[T interface {
	comparable
	Bounded
}](cellSize float64) *SpatialHash[T] {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialHash[T]{
		cellSize: cellSize,
		grid:     make(map[cellKey][]T),
		tracked:  make(map[T]struct{}),
	}
}

// CellSize returns the grid cell edge length.
func (h *SpatialHash[T]) CellSize() float64 {
	return h.cellSize
}

// Len returns the number of tracked items.
func (h *SpatialHash[T]) Len() int {
	return len(h.items)
}

// Insert tracks an item and registers it in every cell its bounds overlap.
// Inserting an already tracked item only re-registers its cells.
func (h *SpatialHash[T]) Insert(item T) {
	if _, ok := h.tracked[item]; !ok {
		h.tracked[item] = struct{}{}
		h.items = append(h.items, item)
	}
	h.register(item)
}

func (h *SpatialHash[T]) register(item T) {
	x1, y1, x2, y2 := h.cellRange(item.Bounds())
	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			k := cellKey{x, y}
			h.grid[k] = append(h.grid[k], item)
		}
	}
}

// Rebuild clears the grid and reinserts every tracked item at its current bounds.
func (h *SpatialHash[T]) Rebuild() {
	clear(h.grid)
	for _, item := range h.items {
		h.register(item)
	}
}

// Reset forgets every tracked item.
func (h *SpatialHash[T]) Reset() {
	clear(h.grid)
	clear(h.tracked)
	h.items = h.items[:0]
}

// Query returns the union of items registered in every cell r overlaps.
// The result is a broad-phase superset; callers still run a narrow-phase test.
func (h *SpatialHash[T]) Query(r core.Rect) []T {
	x1, y1, x2, y2 := h.cellRange(r)

	var out []T
	seen := make(map[T]struct{})
	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			for _, item := range h.grid[cellKey{x, y}] {
				if _, dup := seen[item]; dup {
					continue
				}
				seen[item] = struct{}{}
				out = append(out, item)
			}
		}
	}
	return out
}

// cellRange returns the inclusive cell span of a box. The far corner's cell
// is included so the box's right and bottom edges are always covered.
func (h *SpatialHash[T]) cellRange(r core.Rect) (x1, y1, x2, y2 int) {
	x1 = int(math.Floor(r.X / h.cellSize))
	y1 = int(math.Floor(r.Y / h.cellSize))
	x2 = int(math.Floor(r.Right() / h.cellSize))
	y2 = int(math.Floor(r.Bottom() / h.cellSize))
	return x1, y1, x2, y2
}
