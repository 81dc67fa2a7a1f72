package stratum

// Config holds the compile-time overridable constants of the storage core.
// Embedders wanting different values should set them once, before the
// first World is created.
var Config config = config{
	ChunkCapacity:                 4096,
	MaxComponents:                 1024,
	MaxQueryTerms:                 16,
	InitialArchetypeTableCapacity: 32,
}

type config struct {
	// ChunkCapacity is the number of rows per chunk. Must be a power of two.
	ChunkCapacity int
	// MaxComponents is the number of registry slots preallocated per world.
	MaxComponents int
	// MaxQueryTerms is the configured bound on terms per query. NewQuery does
	// not check it: a query accepts any number of terms.
	MaxQueryTerms int
	// InitialArchetypeTableCapacity is the starting size of the world's
	// open-addressed archetype hash table.
	InitialArchetypeTableCapacity int

	// events, when set, receives structural storage notifications. Nil by
	// default: logging/metrics/visualization are the embedder's concern,
	// not the core's.
	events StorageEvents
}

// StorageEvents is an optional hook table for observing chunk and
// archetype lifecycle without coupling the core to any logging framework.
type StorageEvents struct {
	OnArchetypeCreated func(id ArchetypeID)
	OnChunkAllocated   func(archetypeID ArchetypeID, chunkIndex int)
	OnChunkFreed       func(archetypeID ArchetypeID, chunkIndex int)
}

// SetStorageEvents installs a hook table used for the lifetime of any
// world created afterward.
func (c *config) SetStorageEvents(e StorageEvents) {
	c.events = e
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
