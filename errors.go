package stratum

import "fmt"

// LockedWorldError describes a direct (non-deferred) structural mutation
// attempted while the world is in deferred mode. World's methods do not
// return it: in deferred mode Set and Unset queue the operation instead.
type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is currently in deferred mode"
}

// UnknownComponentError describes an operation that references a
// component id that was never registered. World's methods do not return
// it: such operations are silent no-ops, and reads return nil or false.
type UnknownComponentError struct {
	ID ComponentID
}

func (e UnknownComponentError) Error() string {
	return fmt.Sprintf("component %d is not registered", e.ID)
}

// DuplicateComponentNameError is the value Register panics with (wrapped
// by bark.AddTrace) when the name is already taken by another component in
// the same world.
type DuplicateComponentNameError struct {
	Name string
}

func (e DuplicateComponentNameError) Error() string {
	return fmt.Sprintf("component name %q already registered", e.Name)
}

// CycleError is returned by AddChild when attaching would create a cycle
// in the parent/child forest.
type CycleError struct {
	Parent, Child Entity
}

func (e CycleError) Error() string {
	return fmt.Sprintf("adding %v as child of %v would create a cycle", e.Child, e.Parent)
}

// TagDataAccessError describes an attempt to fetch a data pointer for a
// zero-sized (tag) component. World.Get does not return it; it returns nil
// for a tag.
type TagDataAccessError struct {
	ID ComponentID
}

func (e TagDataAccessError) Error() string {
	return fmt.Sprintf("component %d is a tag and holds no data", e.ID)
}

// UnknownLabelError is the value the scheduler panics with (wrapped by
// bark.AddTrace) when a Before/After reference, a system's target stage,
// or the stage named in InsertStageBefore/InsertStageAfter names a label
// nobody declared.
type UnknownLabelError struct {
	Label string
}

func (e UnknownLabelError) Error() string {
	return fmt.Sprintf("system label %q was never declared", e.Label)
}

// DuplicateSystemLabelError is the value Schedule.AddSystem panics with
// (wrapped by bark.AddTrace) when a system label is already registered
// within the same Schedule.
type DuplicateSystemLabelError struct {
	Label string
}

func (e DuplicateSystemLabelError) Error() string {
	return fmt.Sprintf("system label %q already registered", e.Label)
}
