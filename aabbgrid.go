package sparsegrid

import "iter"

// AABBGrid indexes identifiers by every cell their axis-aligned bounding
// box overlaps, for entities with spatial extent rather than a single
// point. The reverse index records the full set of occupied cells per
// identifier, so removal clears membership everywhere and query
// deduplication stays a set operation.
type AABBGrid[E comparable] struct {
	cellSize float64
	inv      float64
	cells    map[Cell][]E
	entries  map[E][]Cell
}

// NewAABBGrid creates an empty grid with the given cell size.
// Panics if cellSize is not positive and finite.
func NewAABBGrid[E comparable](cellSize float64) *AABBGrid[E] {
	checkCellSize(cellSize)
	return &AABBGrid[E]{
		cellSize: cellSize,
		inv:      1 / cellSize,
		cells:    make(map[Cell][]E),
		entries:  make(map[E][]Cell),
	}
}

// CellSize returns the fixed cell size.
func (g *AABBGrid[E]) CellSize() float64 { return g.cellSize }

// Insert records e in every cell overlapped by b, replacing any previous
// extent e had. Re-inserting the same box leaves membership identical to a
// single insertion.
func (g *AABBGrid[E]) Insert(b AABB, e E) {
	lo, hi := cellRange(b, g.inv)
	if old, ok := g.entries[e]; ok {
		g.dropFromCells(old, e)
	}
	occupied := make([]Cell, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			c := Cell{X: cx, Y: cy}
			occupied = append(occupied, c)
			g.cells[c] = append(g.cells[c], e)
		}
	}
	g.entries[e] = occupied
}

// Remove deletes e from every cell it occupies and reports whether it was
// present. Removing an absent identifier is a no-op.
func (g *AABBGrid[E]) Remove(e E) bool {
	occupied, ok := g.entries[e]
	if !ok {
		return false
	}
	g.dropFromCells(occupied, e)
	delete(g.entries, e)
	return true
}

func (g *AABBGrid[E]) dropFromCells(occupied []Cell, e E) {
	for _, c := range occupied {
		dropFromBucket(g.cells, c, e)
	}
}

// At yields every identifier whose extent touches the cell containing p.
// The sequence is finite and restartable; order is unspecified.
func (g *AABBGrid[E]) At(p Vec2) iter.Seq[E] {
	c := cellAt(p, g.inv)
	return func(yield func(E) bool) {
		for _, e := range g.cells[c] {
			if !yield(e) {
				return
			}
		}
	}
}

// Query returns every identifier in the cells overlapped by b, with
// duplicates collapsed: an identifier spanning several scanned cells
// appears once. Order is unspecified.
func (g *AABBGrid[E]) Query(b AABB) []E {
	return g.AppendQuery(nil, b)
}

// AppendQuery appends Query results to dst and returns the extended slice,
// avoiding per-call allocation. Results are deduplicated against each
// other but not against prior contents of dst.
func (g *AABBGrid[E]) AppendQuery(dst []E, b AABB) []E {
	lo, hi := cellRange(b, g.inv)
	return appendUnique(dst, g.cells, lo, hi)
}

// Scan yields identifiers in every cell overlapped by b, cell by cell.
// An identifier is yielded once per occupied cell in the range, so it may
// repeat; use Query for a deduplicated result.
func (g *AABBGrid[E]) Scan(b AABB) iter.Seq[E] {
	lo, hi := cellRange(b, g.inv)
	return scanCells(g.cells, lo, hi)
}

// Len returns the number of identifiers currently in the grid.
func (g *AABBGrid[E]) Len() int { return len(g.entries) }

// CellCount returns the number of occupied cells.
func (g *AABBGrid[E]) CellCount() int { return len(g.cells) }

// Clear removes every identifier from the grid.
func (g *AABBGrid[E]) Clear() {
	clear(g.cells)
	clear(g.entries)
}
