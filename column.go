package stratum

import "unsafe"

// column is the per-component storage inside one chunk. Its
// bytes are owned by a StorageBackend, not by the column itself; changed
// and added ticks are kept alongside as parallel arrays.
type column struct {
	compID      ComponentID
	size        int
	backend     StorageBackend
	handle      ChunkHandle
	changedTick []uint32
	addedTick   []uint32
}

func newColumn(compID ComponentID, size int, backend StorageBackend, capacity int) *column {
	return &column{
		compID:      compID,
		size:        size,
		backend:     backend,
		handle:      backend.AllocateChunk(size, capacity),
		changedTick: make([]uint32, capacity),
		addedTick:   make([]uint32, capacity),
	}
}

func (c *column) free() {
	c.backend.FreeChunk(c.handle)
}

func (c *column) ptr(row int) unsafe.Pointer {
	return c.backend.Ptr(c.handle, row, c.size)
}

func (c *column) set(row int, src unsafe.Pointer) {
	c.backend.SetData(c.handle, row, src, c.size)
}

func (c *column) copyRow(srcRow int, dst *column, dstRow int) {
	c.backend.CopyData(c.handle, srcRow, dst.handle, dstRow, c.size)
	dst.changedTick[dstRow] = c.changedTick[srcRow]
	dst.addedTick[dstRow] = c.addedTick[srcRow]
}

func (c *column) swap(rowA, rowB int) {
	c.backend.SwapData(c.handle, rowA, rowB, c.size)
	c.changedTick[rowA], c.changedTick[rowB] = c.changedTick[rowB], c.changedTick[rowA]
	c.addedTick[rowA], c.addedTick[rowB] = c.addedTick[rowB], c.addedTick[rowA]
}

func (c *column) markChanged(row int, tick uint32) {
	c.changedTick[row] = tick
}

func (c *column) stamp(row int, tick uint32) {
	c.changedTick[row] = tick
	c.addedTick[row] = tick
}
