package sparsegrid

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAABBGridSpanDedup(t *testing.T) {
	g := NewAABBGrid[int](1)
	// A small box straddling the origin touches cells (-1,-1) (-1,0) (0,-1) (0,0)
	g.Insert(AABB{Min: Vec2{-0.001, -0.001}, Max: Vec2{0.001, 0.001}}, 1)

	if g.CellCount() != 4 {
		t.Fatalf("expected 4 occupied cells, got %d", g.CellCount())
	}

	// Query covering all 4 cells returns the identifier exactly once
	got := g.Query(AABB{Min: Vec2{-1, -1}, Max: Vec2{1, 1}})
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}

	// Scan is per-cell and may repeat: once for each of the 4 cells
	if scanned := slices.Collect(g.Scan(AABB{Min: Vec2{-1, -1}, Max: Vec2{0, 0}})); len(scanned) != 4 {
		t.Errorf("Scan yielded %d, want 4 (once per occupied cell)", len(scanned))
	}
}

func TestAABBGridRemoveClearsAllCells(t *testing.T) {
	g := NewAABBGrid[int](10)
	g.Insert(AABB{Min: Vec2{5, 5}, Max: Vec2{25, 25}}, 1) // 3x3 cells

	if g.CellCount() != 9 {
		t.Fatalf("expected 9 occupied cells, got %d", g.CellCount())
	}
	if !g.Remove(1) {
		t.Fatal("Remove reported absent for present identifier")
	}
	if g.CellCount() != 0 {
		t.Errorf("leaked cells after remove: CellCount=%d", g.CellCount())
	}
	if got := g.Query(AABB{Min: Vec2{0, 0}, Max: Vec2{30, 30}}); len(got) != 0 {
		t.Errorf("removed identifier still queryable: %v", got)
	}
	if g.Remove(1) {
		t.Error("second Remove reported present")
	}
}

func TestAABBGridReinsertIdempotent(t *testing.T) {
	g := NewAABBGrid[int](1)
	box := AABB{Min: Vec2{-0.5, -0.5}, Max: Vec2{0.5, 0.5}}
	g.Insert(box, 1)
	g.Insert(box, 1)

	if g.Len() != 1 {
		t.Errorf("Len=%d after redundant insert, want 1", g.Len())
	}
	// Each occupied cell holds one membership, not two
	for _, p := range []Vec2{{-0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}, {0.5, -0.5}} {
		if got := slices.Collect(g.At(p)); len(got) != 1 {
			t.Errorf("cell at %v holds %v, want single membership", p, got)
		}
	}
}

func TestAABBGridMoveExtent(t *testing.T) {
	g := NewAABBGrid[int](10)
	g.Insert(AABB{Min: Vec2{0, 0}, Max: Vec2{15, 15}}, 1)
	g.Insert(AABB{Min: Vec2{100, 100}, Max: Vec2{115, 115}}, 1)

	if got := g.Query(AABB{Min: Vec2{0, 0}, Max: Vec2{20, 20}}); len(got) != 0 {
		t.Errorf("old extent still queryable after move: %v", got)
	}
	got := g.Query(AABB{Min: Vec2{100, 100}, Max: Vec2{120, 120}})
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("new extent query mismatch (-want +got):\n%s", diff)
	}
	if g.CellCount() != 4 {
		t.Errorf("CellCount=%d after move, want 4", g.CellCount())
	}
}

func TestAABBGridAt(t *testing.T) {
	g := NewAABBGrid[int](1)
	h := 0.5
	g.Insert(AABB{Min: Vec2{-h, -h}, Max: Vec2{h, h}}, 1)
	g.Insert(AABB{Min: Vec2{h, h}, Max: Vec2{h, h}}, 2)
	g.Insert(AABB{Min: Vec2{-h, -h}, Max: Vec2{-h, -h}}, 3)

	// Degenerate query just inside cell (-1,-1) sees the spanning box and
	// the point-sized box there, not the one at (h,h)
	got := g.Query(AABB{Min: Vec2{-0.001, -0.001}, Max: Vec2{-0.001, -0.001}})
	if diff := cmp.Diff([]int{1, 3}, got, sortInts); diff != "" {
		t.Errorf("degenerate query mismatch (-want +got):\n%s", diff)
	}

	// And a box covering everything returns each exactly once
	got = g.Query(AABB{Min: Vec2{-h, -h}, Max: Vec2{h, h}})
	if diff := cmp.Diff([]int{1, 2, 3}, got, sortInts); diff != "" {
		t.Errorf("covering query mismatch (-want +got):\n%s", diff)
	}
}

func TestAABBGridLargeTileSize(t *testing.T) {
	g := NewAABBGrid[int](10)
	g.Insert(AABB{Min: Vec2{12, 15}, Max: Vec2{12, 15}}, 1)
	g.Insert(AABB{Min: Vec2{15, 12}, Max: Vec2{15, 12}}, 2)
	g.Insert(AABB{Min: Vec2{15, 20}, Max: Vec2{15, 20}}, 3)

	got := slices.Collect(g.At(Vec2{19.9, 19.9}))
	if diff := cmp.Diff([]int{1, 2}, got, sortInts); diff != "" {
		t.Errorf("At mismatch (-want +got):\n%s", diff)
	}
}

func TestAABBGridClear(t *testing.T) {
	g := NewAABBGrid[int](1)
	g.Insert(AABB{Min: Vec2{0, 0}, Max: Vec2{3, 3}}, 1)
	g.Clear()

	if g.Len() != 0 || g.CellCount() != 0 {
		t.Errorf("Clear left Len=%d CellCount=%d", g.Len(), g.CellCount())
	}
}

func TestAABBGridPreconditions(t *testing.T) {
	mustPanic(t, "zero cell size", func() { NewAABBGrid[int](0) })
	g := NewAABBGrid[int](1)
	mustPanic(t, "inverted insert", func() {
		g.Insert(AABB{Min: Vec2{1, 0}, Max: Vec2{0, 1}}, 1)
	})
}

func BenchmarkAABBGridInsertRemove(b *testing.B) {
	g := NewAABBGrid[int](10)
	box := AABB{Min: Vec2{0, 0}, Max: Vec2{25, 25}}
	b.ReportAllocs()
	for b.Loop() {
		g.Insert(box, 1)
		g.Remove(1)
	}
}

func BenchmarkAABBGridQuery(b *testing.B) {
	g := NewAABBGrid[int](10)
	for i := 0; i < 2000; i++ {
		c := Vec2{float64(i%50) * 19.7, float64(i/50) * 19.7}
		g.Insert(AABBAround(c, 8), i)
	}
	box := AABB{Min: Vec2{200, 200}, Max: Vec2{280, 280}}
	var buf []int
	b.ReportAllocs()
	for b.Loop() {
		buf = g.AppendQuery(buf[:0], box)
	}
}
