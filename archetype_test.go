package stratum

import "testing"

func TestInsertionBackfillsNonLastChunk(t *testing.T) {
	orig := Config.ChunkCapacity
	Config.ChunkCapacity = 4
	defer func() { Config.ChunkCapacity = orig }()

	w := NewWorld()
	pos := RegisterComponent[Position](w, "Position")

	entities := make([]Entity, 8)
	for i := range entities {
		e := w.Spawn()
		pos.Set(w, e, Position{X: float64(i)})
		entities[i] = e
	}

	rec, ok := w.entities.lookup(entities[0])
	if !ok {
		t.Fatalf("entity 0 missing its record")
	}
	arch := rec.arch
	if len(arch.chunks) != 2 {
		t.Fatalf("expected 2 chunks after spawning 8 entities at capacity 4, got %d", len(arch.chunks))
	}

	// Despawning an entity from the first chunk leaves a gap there while
	// the second chunk stays full.
	w.Despawn(entities[1])

	if got := arch.chunks[0].count; got != 3 {
		t.Fatalf("first chunk count = %d, want 3 after despawn", got)
	}
	if got := arch.chunks[1].count; got != 4 {
		t.Fatalf("second chunk count = %d, want still full at 4", got)
	}

	// The next insertion must backfill the first chunk's gap instead of
	// growing a third chunk.
	e := w.Spawn()
	pos.Set(w, e, Position{X: 99})

	if got := len(arch.chunks); got != 2 {
		t.Fatalf("chunk count = %d after insertion, want 2 (gap should be backfilled, not grown)", got)
	}
	if got := arch.chunks[0].count; got != 4 {
		t.Fatalf("first chunk count = %d after backfill, want 4", got)
	}
}

func TestInsertionGrowsOnlyWhenEveryChunkIsFull(t *testing.T) {
	orig := Config.ChunkCapacity
	Config.ChunkCapacity = 4
	defer func() { Config.ChunkCapacity = orig }()

	w := NewWorld()
	pos := RegisterComponent[Position](w, "Position")

	for i := 0; i < 4; i++ {
		e := w.Spawn()
		pos.Set(w, e, Position{X: float64(i)})
	}

	e := w.Spawn()
	pos.Set(w, e, Position{X: 100})

	anyRec, ok := w.entities.lookup(e)
	if !ok {
		t.Fatalf("spawned entity missing its record")
	}
	if got := len(anyRec.arch.chunks); got != 2 {
		t.Fatalf("chunk count = %d, want 2 once the first chunk fills up", got)
	}
}
