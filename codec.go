package sparsegrid

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot format for both sparse grids: the cell size followed by the
// reverse index. Occupancy buckets are rebuilt on decode, so the encoded
// form carries no redundant state. The identifier type must itself be
// msgpack-encodable.

var (
	_ msgpack.CustomEncoder = (*PointGrid[int])(nil)
	_ msgpack.CustomDecoder = (*PointGrid[int])(nil)
	_ msgpack.CustomEncoder = (*AABBGrid[int])(nil)
	_ msgpack.CustomDecoder = (*AABBGrid[int])(nil)
)

// EncodeMsgpack writes a snapshot of the grid.
func (g *PointGrid[E]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeFloat64(g.cellSize); err != nil {
		return err
	}
	return enc.Encode(g.where)
}

// DecodeMsgpack replaces the grid's contents with a decoded snapshot.
// Works on a zero-value grid as well as a constructed one.
func (g *PointGrid[E]) DecodeMsgpack(dec *msgpack.Decoder) error {
	size, err := dec.DecodeFloat64()
	if err != nil {
		return err
	}
	if !(size > 0) {
		return fmt.Errorf("sparsegrid: snapshot cell size %v is not positive", size)
	}
	where := make(map[E]Cell)
	if err := dec.Decode(&where); err != nil {
		return err
	}
	cells := make(map[Cell][]E, len(where))
	for e, c := range where {
		cells[c] = append(cells[c], e)
	}
	g.cellSize = size
	g.inv = 1 / size
	g.cells = cells
	g.where = where
	return nil
}

// EncodeMsgpack writes a snapshot of the grid.
func (g *AABBGrid[E]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeFloat64(g.cellSize); err != nil {
		return err
	}
	return enc.Encode(g.entries)
}

// DecodeMsgpack replaces the grid's contents with a decoded snapshot.
// Works on a zero-value grid as well as a constructed one.
func (g *AABBGrid[E]) DecodeMsgpack(dec *msgpack.Decoder) error {
	size, err := dec.DecodeFloat64()
	if err != nil {
		return err
	}
	if !(size > 0) {
		return fmt.Errorf("sparsegrid: snapshot cell size %v is not positive", size)
	}
	entries := make(map[E][]Cell)
	if err := dec.Decode(&entries); err != nil {
		return err
	}
	cells := make(map[Cell][]E)
	for e, occupied := range entries {
		if len(occupied) == 0 {
			return fmt.Errorf("sparsegrid: snapshot entry occupies no cells")
		}
		for _, c := range occupied {
			cells[c] = append(cells[c], e)
		}
	}
	g.cellSize = size
	g.inv = 1 / size
	g.cells = cells
	g.entries = entries
	return nil
}
