package sparsegrid

// BoundedGrid is a dense, fixed-extent broad-phase grid meant to be
// cleared and rebuilt every simulation tick. Unlike the sparse grids it
// has no reverse index and no removal: the host drops the whole tick's
// state with Clear and reinserts. Positions outside the bounds clamp to
// the edge cells, so no insert is ever lost.
type BoundedGrid[E any] struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]E
}

// NewBoundedGrid creates a grid covering width x height world units with
// the given cell size. Panics if any argument is not positive and finite.
func NewBoundedGrid[E any](width, height, cellSize float64) *BoundedGrid[E] {
	checkCellSize(cellSize)
	if !(width > 0) || !(height > 0) {
		panic("sparsegrid: bounds must be positive")
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	return &BoundedGrid[E]{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]E, cols*rows),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *BoundedGrid[E]) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *BoundedGrid[E]) cellIdx(x, y float64) int {
	cx := int(x / g.cellSize)
	cy := int(y / g.cellSize)
	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cy*g.cols + cx
}

// clampedRange converts b to an inclusive cell index range clamped to the
// grid bounds.
func (g *BoundedGrid[E]) clampedRange(b AABB) (minCX, maxCX, minCY, maxCY int) {
	if b.inverted() {
		panic("sparsegrid: inverted AABB")
	}
	minCX = int(b.Min.X / g.cellSize)
	maxCX = int(b.Max.X / g.cellSize)
	minCY = int(b.Min.Y / g.cellSize)
	maxCY = int(b.Max.Y / g.cellSize)
	if minCX < 0 {
		minCX = 0
	}
	if maxCX >= g.cols {
		maxCX = g.cols - 1
	}
	if minCY < 0 {
		minCY = 0
	}
	if maxCY >= g.rows {
		maxCY = g.rows - 1
	}
	return minCX, maxCX, minCY, maxCY
}

// Insert adds e at the given position
func (g *BoundedGrid[E]) Insert(p Vec2, e E) {
	idx := g.cellIdx(p.X, p.Y)
	g.cells[idx] = append(g.cells[idx], e)
}

// InsertAABB adds e to all cells overlapping its bounding box
func (g *BoundedGrid[E]) InsertAABB(b AABB, e E) {
	minCX, maxCX, minCY, maxCY := g.clampedRange(b)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idx := cy*g.cols + cx
			g.cells[idx] = append(g.cells[idx], e)
		}
	}
}

// InsertCircle adds e to all cells overlapping the circle's bounding box
func (g *BoundedGrid[E]) InsertCircle(center Vec2, radius float64, e E) {
	g.InsertAABB(AABBAround(center, radius), e)
}

// Query returns everything in cells that overlap b. Results may repeat an
// identifier inserted with an extent spanning several cells.
func (g *BoundedGrid[E]) Query(b AABB) []E {
	return g.AppendQuery(nil, b)
}

// AppendQuery appends results to dst and returns the extended slice,
// avoiding per-call allocation
func (g *BoundedGrid[E]) AppendQuery(dst []E, b AABB) []E {
	minCX, maxCX, minCY, maxCY := g.clampedRange(b)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idx := cy*g.cols + cx
			dst = append(dst, g.cells[idx]...)
		}
	}
	return dst
}
