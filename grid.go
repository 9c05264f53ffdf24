// Package sparsegrid provides 2D spatial hashing for broad-phase proximity
// queries. The plane is partitioned into fixed-size square cells and
// identifiers are indexed by the cell(s) their position or extent touches,
// so "who is near this point/region" costs a handful of cell lookups
// instead of a scan over every identifier.
//
// None of the grids are internally synchronized; callers that mutate from
// multiple goroutines must supply their own locking or a single-writer
// discipline.
package sparsegrid

import (
	"iter"
	"math"
)

// Cell identifies one square region of the plane by integer coordinates.
type Cell struct {
	X int
	Y int
}

// cellAt maps a world position to its cell. Floor semantics: a point
// exactly on a cell boundary belongs to the cell on its positive side,
// and negative coordinates map to negative cells.
func cellAt(p Vec2, inv float64) Cell {
	cx := math.Floor(p.X * inv)
	cy := math.Floor(p.Y * inv)
	if math.IsNaN(cx) || math.IsInf(cx, 0) || math.IsNaN(cy) || math.IsInf(cy, 0) {
		panic("sparsegrid: non-finite coordinate")
	}
	return Cell{X: int(cx), Y: int(cy)}
}

// cellRange returns the inclusive range of cells overlapped by b.
func cellRange(b AABB, inv float64) (lo, hi Cell) {
	if b.inverted() {
		panic("sparsegrid: inverted AABB")
	}
	return cellAt(b.Min, inv), cellAt(b.Max, inv)
}

func checkCellSize(cellSize float64) {
	if !(cellSize > 0) || math.IsInf(cellSize, 1) {
		panic("sparsegrid: cell size must be positive and finite")
	}
}

// dropFromBucket removes e from the bucket at c using swap-remove,
// deleting the cell entry entirely if the bucket becomes empty.
func dropFromBucket[E comparable](cells map[Cell][]E, c Cell, e E) {
	bucket := cells[c]
	for i := range bucket {
		if bucket[i] == e {
			last := len(bucket) - 1
			bucket[i] = bucket[last]
			var zero E
			bucket[last] = zero
			bucket = bucket[:last]
			break
		}
	}
	if len(bucket) == 0 {
		delete(cells, c)
	} else {
		cells[c] = bucket
	}
}

// appendUnique appends the union of the buckets in the [lo, hi] cell range
// to dst, collapsing duplicates within the appended portion. The single-cell
// case skips the dedup bookkeeping since one bucket never repeats a member.
func appendUnique[E comparable](dst []E, cells map[Cell][]E, lo, hi Cell) []E {
	if lo == hi {
		return append(dst, cells[lo]...)
	}
	seen := make(map[E]struct{})
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			for _, e := range cells[Cell{X: cx, Y: cy}] {
				if _, dup := seen[e]; dup {
					continue
				}
				seen[e] = struct{}{}
				dst = append(dst, e)
			}
		}
	}
	return dst
}

// scanCells yields every bucket member in the [lo, hi] cell range, cell by
// cell, without deduplication.
func scanCells[E comparable](cells map[Cell][]E, lo, hi Cell) iter.Seq[E] {
	return func(yield func(E) bool) {
		for cy := lo.Y; cy <= hi.Y; cy++ {
			for cx := lo.X; cx <= hi.X; cx++ {
				for _, e := range cells[Cell{X: cx, Y: cy}] {
					if !yield(e) {
						return
					}
				}
			}
		}
	}
}

// PointGrid indexes identifiers by the single cell containing their
// position. It keeps a reverse index from identifier to cell, so moving or
// removing an identifier never requires the caller to remember where it
// was inserted.
type PointGrid[E comparable] struct {
	cellSize float64
	inv      float64
	cells    map[Cell][]E
	where    map[E]Cell
}

// NewPointGrid creates an empty grid with the given cell size.
// Panics if cellSize is not positive and finite.
func NewPointGrid[E comparable](cellSize float64) *PointGrid[E] {
	checkCellSize(cellSize)
	return &PointGrid[E]{
		cellSize: cellSize,
		inv:      1 / cellSize,
		cells:    make(map[Cell][]E),
		where:    make(map[E]Cell),
	}
}

// CellSize returns the fixed cell size.
func (g *PointGrid[E]) CellSize() float64 { return g.cellSize }

// Insert places e at p. If e is already in the grid it is moved: removed
// from its old cell first, then recorded in the cell containing p.
// Inserting the same position twice is a no-op.
func (g *PointGrid[E]) Insert(p Vec2, e E) {
	c := cellAt(p, g.inv)
	if old, ok := g.where[e]; ok {
		if old == c {
			return
		}
		dropFromBucket(g.cells, old, e)
	}
	g.cells[c] = append(g.cells[c], e)
	g.where[e] = c
}

// Remove deletes e from the grid and reports whether it was present.
// Removing an absent identifier is a no-op.
func (g *PointGrid[E]) Remove(e E) bool {
	c, ok := g.where[e]
	if !ok {
		return false
	}
	dropFromBucket(g.cells, c, e)
	delete(g.where, e)
	return true
}

// At yields every identifier in the cell containing p. The sequence is
// finite and restartable; order is unspecified. Neighboring cells are not
// examined: a boundary point belongs to exactly one cell, the same one
// Insert assigns.
func (g *PointGrid[E]) At(p Vec2) iter.Seq[E] {
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
// duplicates collapsed. Order is unspecified. Cost is proportional to the
// number of cells the box overlaps, not to the total identifier count.
func (g *PointGrid[E]) Query(b AABB) []E {
	return g.AppendQuery(nil, b)
}

// AppendQuery appends Query results to dst and returns the extended slice,
// avoiding per-call allocation. Results are deduplicated against each
// other but not against prior contents of dst.
func (g *PointGrid[E]) AppendQuery(dst []E, b AABB) []E {
	lo, hi := cellRange(b, g.inv)
	return appendUnique(dst, g.cells, lo, hi)
}

// Scan yields identifiers in every cell overlapped by b, cell by cell.
// Point membership is single-cell, so no identifier repeats.
func (g *PointGrid[E]) Scan(b AABB) iter.Seq[E] {
	lo, hi := cellRange(b, g.inv)
	return scanCells(g.cells, lo, hi)
}

// Len returns the number of identifiers currently in the grid.
func (g *PointGrid[E]) Len() int { return len(g.where) }

// CellCount returns the number of occupied cells. Emptied cells are pruned
// eagerly on removal, so this never counts leftover empty entries.
func (g *PointGrid[E]) CellCount() int { return len(g.cells) }

// Clear removes every identifier from the grid.
func (g *PointGrid[E]) Clear() {
	clear(g.cells)
	clear(g.where)
}
