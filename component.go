package stratum

import "unsafe"

// ComponentType[T] is a typed handle for a registered component, in the
// teacher's AccessibleComponent idiom: the generic parameter recovers
// type-safety at every call site while the untyped ComponentID underneath
// is what the storage layer actually indexes by.
type ComponentType[T any] struct {
	ID ComponentID
}

// RegisterComponent declares a new data component of type T under name.
// Panics via bark if name is already registered.
func RegisterComponent[T any](w *World, name string) ComponentType[T] {
	var zero T
	size := unsafe.Sizeof(zero)
	return ComponentType[T]{ID: w.Register(name, size, DefaultBackend)}
}

// RegisterTag declares a new zero-sized marker component of type T. T is
// typically an empty struct; its size is never consulted.
func RegisterTag[T any](w *World, name string) ComponentType[T] {
	return ComponentType[T]{ID: w.Register(name, 0, nil)}
}

// Set writes value onto e, moving e to a new archetype the first time this
// component id is attached.
func (c ComponentType[T]) Set(w *World, e Entity, value T) {
	w.Set(e, c.ID, unsafe.Pointer(&value))
}

// Get returns a pointer into e's live column storage for T, or nil if e
// doesn't carry this component. The pointer is invalidated by any
// structural change to e's archetype.
func (c ComponentType[T]) Get(w *World, e Entity) *T {
	p := w.Get(e, c.ID)
	if p == nil {
		return nil
	}
	return (*T)(p)
}

// Has reports whether e currently carries this component.
func (c ComponentType[T]) Has(w *World, e Entity) bool {
	return w.Has(e, c.ID)
}

// Remove detaches this component from e.
func (c ComponentType[T]) Remove(w *World, e Entity) {
	w.Unset(e, c.ID)
}

// GetFromCursor returns a pointer to T within the cursor's current row, the
// zero-vtable fast path used by systems iterating a Query.
func (c ComponentType[T]) GetFromCursor(cur *Cursor) *T {
	p := cur.columnPtr(c.ID)
	if p == nil {
		return nil
	}
	return (*T)(p)
}

// ComponentWrite is a deferred, type-erased component write, the unit
// SpawnBundle and EntityBuilder.With compose to populate an entity from a
// fixed set of values in a single call.
type ComponentWrite func(w *World, e Entity)

// Write captures value for later application via SpawnBundle or
// EntityBuilder.With, so a bundle can mix components of different T
// without the caller hand-rolling Set calls for each one.
func (c ComponentType[T]) Write(value T) ComponentWrite {
	v := value
	return func(w *World, e Entity) {
		w.Set(e, c.ID, unsafe.Pointer(&v))
	}
}
