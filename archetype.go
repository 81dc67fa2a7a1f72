package stratum

import (
	"hash/fnv"
	"sort"

	"github.com/TheBitDrifter/mask"
)

// ArchetypeID is the FNV-1a hash of an archetype's sorted component id
// list. It is stable for the lifetime of the
// archetype; archetypes are never moved or rehashed once created.
type ArchetypeID uint64

// archetype is the equivalence class of entities sharing one component
// set.
type archetype struct {
	id ArchetypeID

	components     []ComponentID // full sorted set (tags + data)
	dataComponents []ComponentID // size>0 subset, sorted
	tags           []ComponentID // size==0 subset, sorted

	compIndex map[ComponentID]int // position within components
	dataIndex map[ComponentID]int // position within dataComponents / chunk columns

	signature mask.Mask256 // bitmask derived from components; query matching does not read it

	chunks      []*chunk
	entityCount int

	addEdges    map[ComponentID]*archetype
	removeEdges map[ComponentID]*archetype
}

// archetypeIdentity computes the FNV-1a hash over a sorted component id
// list.
func archetypeIdentity(sorted []ComponentID) ArchetypeID {
	h := fnv.New64a()
	buf := make([]byte, 4)
	for _, id := range sorted {
		buf[0] = byte(id)
		buf[1] = byte(id >> 8)
		buf[2] = byte(id >> 16)
		buf[3] = byte(id >> 24)
		_, _ = h.Write(buf)
	}
	return ArchetypeID(h.Sum64())
}

func sortedComponentIDs(ids []ComponentID) []ComponentID {
	out := append([]ComponentID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func signatureFor(sorted []ComponentID) mask.Mask256 {
	var m mask.Mask256
	for _, id := range sorted {
		m.Mark(componentBit(id))
	}
	return m
}

// componentBit maps a component id to a bit position in the signature
// mask. Ids beyond the mask width wrap around and share bits, so the mask
// alone cannot decide containment; compIndex/dataIndex are the source of
// truth, and has() and query matching use them without consulting the mask.
func componentBit(id ComponentID) uint32 {
	return uint32(id-1) % 256
}

func newArchetype(w *World, id ArchetypeID, sorted []ComponentID) *archetype {
	a := &archetype{
		id:          id,
		components:  sorted,
		compIndex:   make(map[ComponentID]int, len(sorted)),
		dataIndex:   make(map[ComponentID]int),
		signature:   signatureFor(sorted),
		addEdges:    make(map[ComponentID]*archetype),
		removeEdges: make(map[ComponentID]*archetype),
	}
	for i, id := range sorted {
		a.compIndex[id] = i
		if w.registry.isTag(id) {
			a.tags = append(a.tags, id)
		} else {
			a.dataIndex[id] = len(a.dataComponents)
			a.dataComponents = append(a.dataComponents, id)
		}
	}
	if fn := Config.events.OnArchetypeCreated; fn != nil {
		fn(id)
	}
	return a
}

func (a *archetype) has(id ComponentID) bool {
	_, ok := a.compIndex[id]
	return ok
}

func (a *archetype) isTag(id ComponentID) bool {
	for _, t := range a.tags {
		if t == id {
			return true
		}
	}
	return false
}

// insertionChunk returns the chunk new rows should land in: the first
// chunk with spare capacity, scanning from the start rather than only
// checking the last one. A swap-remove only ever repacks within the chunk
// it removed from, so an earlier chunk can be left below capacity while a
// later one is still full; insertion must backfill it rather than grow
// forever, or the gap never closes.
func (a *archetype) insertionChunk(reg *registry) (*chunk, int) {
	for i, c := range a.chunks {
		if !c.full(Config.ChunkCapacity) {
			return c, i
		}
	}
	c := newChunk(a.dataComponents, reg, Config.ChunkCapacity)
	a.chunks = append(a.chunks, c)
	if fn := Config.events.OnChunkAllocated; fn != nil {
		fn(a.id, len(a.chunks)-1)
	}
	return c, len(a.chunks) - 1
}

// addRow places e at the end of the insertion chunk, stamping every data
// column's added/changed tick to tick. Returns the new (chunkIndex, row).
func (a *archetype) addRow(reg *registry, e Entity, tick uint32) (int, int) {
	c, ci := a.insertionChunk(reg)
	row := c.count
	c.entities[row] = e
	for _, col := range c.columns {
		col.stamp(row, tick)
	}
	c.count++
	a.entityCount++
	return ci, row
}

// removeRow swap-removes the row at (chunkIndex, row),
// "entity removal". It returns the entity that was moved into the vacated
// slot (or NoEntity if the removed row was already last) so the caller can
// repair that entity's record.
func (a *archetype) removeRow(chunkIndex, row int) Entity {
	c := a.chunks[chunkIndex]
	last := c.count - 1
	moved := NoEntity
	if row != last {
		for _, col := range c.columns {
			col.copyRow(last, col, row)
		}
		c.entities[row] = c.entities[last]
		moved = c.entities[row]
	}
	c.count--
	a.entityCount--
	return moved
}

// ensureEdge materialises the neighbour archetype reached by adding
// (adding=true) or removing component id from a, memoising the edge for
// O(1) reuse.
func (a *archetype) ensureEdge(w *World, id ComponentID, adding bool) *archetype {
	edges := a.removeEdges
	if adding {
		edges = a.addEdges
	}
	if next, ok := edges[id]; ok {
		return next
	}

	var sorted []ComponentID
	if adding {
		sorted = sortedComponentIDs(append(append([]ComponentID(nil), a.components...), id))
	} else {
		sorted = make([]ComponentID, 0, len(a.components)-1)
		for _, c := range a.components {
			if c != id {
				sorted = append(sorted, c)
			}
		}
	}

	next := w.archetypeFor(sorted)

	a.edgeSet(id, adding, next)
	// the reverse edge on next always points back to a, since a and next
	// differ by exactly one component.
	if adding {
		next.removeEdges[id] = a
	} else {
		next.addEdges[id] = a
	}
	return next
}

func (a *archetype) edgeSet(id ComponentID, adding bool, next *archetype) {
	if adding {
		a.addEdges[id] = next
	} else {
		a.removeEdges[id] = next
	}
}
