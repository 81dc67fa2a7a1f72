package stratum

// chunk is a fixed-capacity row group: an entity column plus one column
// per data component of the owning archetype. count is the number of live
// rows; rows [0,count) are always occupied within this chunk. An
// archetype's chunks are not individually guaranteed full except the one
// at the very end of a steady insertion run — archetype.go's
// insertionChunk backfills the first chunk with spare capacity, not
// necessarily the last, so a chunk left short by a removal gets refilled
// before a new one is ever allocated.
type chunk struct {
	entities []Entity
	columns  []*column
	count    int
}

func newChunk(dataComponents []ComponentID, reg *registry, capacity int) *chunk {
	cols := make([]*column, len(dataComponents))
	for i, id := range dataComponents {
		info, _ := reg.info(id)
		cols[i] = newColumn(id, int(info.size), info.backend, capacity)
	}
	return &chunk{
		entities: make([]Entity, capacity),
		columns:  cols,
	}
}

func (c *chunk) full(capacity int) bool { return c.count >= capacity }

func (c *chunk) columnFor(id ComponentID) *column {
	for _, col := range c.columns {
		if col.compID == id {
			return col
		}
	}
	return nil
}

func (c *chunk) free() {
	for _, col := range c.columns {
		col.free()
	}
}
