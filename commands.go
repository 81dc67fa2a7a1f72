package stratum

import "unsafe"

// EntityOperation is one deferred mutation queued while the world is in
// deferred mode. Implementations apply themselves against a world once
// deferred mode ends.
type EntityOperation interface {
	apply(w *World)
}

type insertOp struct {
	entity Entity
	id     ComponentID
	value  unsafe.Pointer
}

func (op insertOp) apply(w *World) {
	if !w.entities.valid(op.entity) {
		return
	}
	w.setNow(op.entity, op.id, op.value)
}

type removeOp struct {
	entity Entity
	id     ComponentID
}

func (op removeOp) apply(w *World) {
	if !w.entities.valid(op.entity) {
		return
	}
	w.unsetNow(op.entity, op.id)
}

type despawnOp struct {
	entity Entity
}

func (op despawnOp) apply(w *World) {
	w.Despawn(op.entity)
}

type spawnThenOp struct {
	ops []func(w *World, real Entity)
}

func (op *spawnThenOp) apply(w *World) {
	real := w.Spawn()
	for _, f := range op.ops {
		f(w, real)
	}
}

type insertResourceOp struct {
	id    ComponentID
	value any
}

func (op insertResourceOp) apply(w *World) {
	w.InsertResource(op.id, op.value)
}

type triggerEventOp struct {
	label  string
	entity Entity
}

func (op triggerEventOp) apply(w *World) {
	w.TriggerEvent(op.label, op.entity)
}

// Commands buffers structural mutations for later, deterministic
// application. A system that takes *Commands as a parameter
// gets one created fresh per invocation by the scheduler; its buffered
// operations are applied, in order, immediately after the system returns.
type Commands struct {
	w   *World
	ops []EntityOperation
}

func newCommands(w *World) *Commands {
	return &Commands{w: w}
}

// Spawn queues a new entity. The returned builder's Insert calls are
// deferred alongside the spawn itself, so the entity never exists
// mid-build: it appears, fully populated, in a single Apply step.
func (c *Commands) Spawn() *EntityBuilder {
	op := &spawnThenOp{}
	c.ops = append(c.ops, op)
	return &EntityBuilder{op: op}
}

// EntityBuilder accumulates Insert calls against an entity Commands.Spawn
// queued, deferring all of them to Apply time.
type EntityBuilder struct {
	op *spawnThenOp
}

// Insert queues id=value to be set once the entity is actually spawned.
func (b *EntityBuilder) Insert(id ComponentID, value unsafe.Pointer) *EntityBuilder {
	b.op.ops = append(b.op.ops, func(w *World, real Entity) {
		w.setNow(real, id, value)
	})
	return b
}

// With queues a bundle of typed writes to be applied once the entity is
// actually spawned, the Commands equivalent of World.SpawnBundle.
func (b *EntityBuilder) With(writes ...ComponentWrite) *EntityBuilder {
	for _, write := range writes {
		write := write
		b.op.ops = append(b.op.ops, func(w *World, real Entity) {
			write(w, real)
		})
	}
	return b
}

// Despawn queues e for removal at Apply time.
func (c *Commands) Despawn(e Entity) {
	c.ops = append(c.ops, despawnOp{entity: e})
}

// Insert queues a component set on an already-live entity.
func (c *Commands) Insert(e Entity, id ComponentID, value unsafe.Pointer) {
	c.ops = append(c.ops, insertOp{entity: e, id: id, value: value})
}

// Remove queues a component removal on an already-live entity.
func (c *Commands) Remove(e Entity, id ComponentID) {
	c.ops = append(c.ops, removeOp{entity: e, id: id})
}

// InsertResource queues a resource write.
func (c *Commands) InsertResource(id ComponentID, value any) {
	c.ops = append(c.ops, insertResourceOp{id: id, value: value})
}

// TriggerCustomEvent queues a custom observer dispatch.
func (c *Commands) TriggerCustomEvent(label string, e Entity) {
	c.ops = append(c.ops, triggerEventOp{label: label, entity: e})
}

// Apply runs every buffered operation against w, in FIFO order.
func (c *Commands) Apply(w *World) {
	for _, op := range c.ops {
		op.apply(w)
	}
	c.ops = c.ops[:0]
}
