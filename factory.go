package stratum

// factory implements the factory pattern for stratum's top-level types,
// using a package-global constructor idiom.
type factory struct{}

// Factory is the global factory instance for creating stratum worlds,
// schedules, and queries.
var Factory factory

// NewWorld creates a new, empty World.
func (f factory) NewWorld() *World {
	return NewWorld()
}

// NewApp creates a new App (a World paired with a default Schedule).
func (f factory) NewApp() *App {
	return NewApp()
}

// NewSchedule creates a new Schedule over w.
func (f factory) NewSchedule(w *World) *Schedule {
	return NewSchedule(w)
}

// NewQuery builds a Query over w constrained by terms.
func (f factory) NewQuery(w *World, terms ...queryTerm) *Query {
	return NewQuery(w, terms...)
}

// FactoryNewComponent registers a new data component of type T under name.
func FactoryNewComponent[T any](w *World, name string) ComponentType[T] {
	return RegisterComponent[T](w, name)
}

// FactoryNewTag registers a new zero-sized marker component of type T.
func FactoryNewTag[T any](w *World, name string) ComponentType[T] {
	return RegisterTag[T](w, name)
}

// FactoryNewCache creates a new Cache with the specified capacity.
func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
