package stratum

import "github.com/TheBitDrifter/bark"

// ComponentID is a world-local, monotonically increasing component
// identifier. 0 is reserved and never issued by Register.
type ComponentID uint32

// componentInfo is the registry's per-component record.
type componentInfo struct {
	id      ComponentID
	name    string
	size    uintptr
	backend StorageBackend
}

// IsTag reports whether the component carries no per-entity data.
func (ci componentInfo) IsTag() bool { return ci.size == 0 }

// registry is the dense append-only component table (C2), backed by a
// Cache: a name->index map plus a slice of items, with a fixed capacity
// enforced at registration time.
type registry struct {
	cache Cache[componentInfo]
}

func newRegistry() *registry {
	return &registry{
		cache: FactoryNewCache[componentInfo](Config.MaxComponents),
	}
}

// register assigns the next id to name. Re-registering an already-known
// name, or registering past Config.MaxComponents, panics via bark so the
// mistake surfaces immediately during development rather than silently
// aliasing two component types or growing the table unbounded.
func (r *registry) register(name string, size uintptr, backend StorageBackend) ComponentID {
	if backend == nil {
		backend = DefaultBackend
	}
	idx, err := r.cache.Register(name, componentInfo{})
	if err != nil {
		if _, exists := r.cache.GetIndex(name); exists {
			panic(bark.AddTrace(DuplicateComponentNameError{Name: name}))
		}
		panic(bark.AddTrace(err))
	}
	id := ComponentID(idx + 1)
	*r.cache.GetItem(idx) = componentInfo{id: id, name: name, size: size, backend: backend}
	return id
}

func (r *registry) lookup(name string) (ComponentID, bool) {
	idx, ok := r.cache.GetIndex(name)
	if !ok {
		return 0, false
	}
	return ComponentID(idx + 1), true
}

func (r *registry) info(id ComponentID) (componentInfo, bool) {
	if id == 0 || int(id) > r.cache.Len() {
		return componentInfo{}, false
	}
	return *r.cache.GetItem(int(id) - 1), true
}

func (r *registry) isTag(id ComponentID) bool {
	ci, ok := r.info(id)
	return ok && ci.IsTag()
}
