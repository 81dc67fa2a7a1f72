package stratum

// TriggerKind identifies the lifecycle event an observer reacts to
// reacts to.
type TriggerKind uint8

const (
	TriggerSpawn TriggerKind = iota
	TriggerDespawn
	TriggerAdd
	TriggerInsert
	TriggerRemove
	TriggerCustom
)

// ObserverFunc is called synchronously at the point the triggering
// operation happens. For TriggerAdd/TriggerInsert/TriggerRemove, id
// carries the component involved; it is zero for TriggerSpawn/Despawn.
type ObserverFunc func(w *World, e Entity, id ComponentID)

type observer struct {
	kind   TriggerKind
	label  string // non-empty only for TriggerCustom
	entity Entity // NoEntity means "global", otherwise scoped to one entity
	fn     ObserverFunc
}

// observerRegistry holds every attached observer, split by trigger kind so
// firing never scans observers for triggers nobody is watching.
type observerRegistry struct {
	byKind map[TriggerKind][]observer
	firing bool
	queue  []func()
}

func newObserverRegistry() *observerRegistry {
	return &observerRegistry{byKind: make(map[TriggerKind][]observer)}
}

// Attach registers fn against a global trigger.
func (r *observerRegistry) Attach(kind TriggerKind, fn ObserverFunc) {
	r.byKind[kind] = append(r.byKind[kind], observer{kind: kind, entity: NoEntity, fn: fn})
}

// AttachToEntity registers fn against a trigger scoped to one entity.
func (r *observerRegistry) AttachToEntity(kind TriggerKind, e Entity, fn ObserverFunc) {
	r.byKind[kind] = append(r.byKind[kind], observer{kind: kind, entity: e, fn: fn})
}

// AttachCustom registers fn against a named custom trigger, fired via
// World.TriggerEvent-style custom dispatch.
func (r *observerRegistry) AttachCustom(label string, e Entity, fn ObserverFunc) {
	r.byKind[TriggerCustom] = append(r.byKind[TriggerCustom], observer{kind: TriggerCustom, label: label, entity: e, fn: fn})
}

// fire invokes every matching observer for kind. Re-entrant fires (an
// observer itself spawning/despawning) are queued and drained after the
// outer fire completes, so an observer body never runs nested inside
// another observer's stack frame.
func (r *observerRegistry) fire(w *World, kind TriggerKind, e Entity, id ComponentID) {
	if r.firing {
		r.queue = append(r.queue, func() { r.dispatch(w, kind, e, id) })
		return
	}
	r.firing = true
	r.dispatch(w, kind, e, id)
	for len(r.queue) > 0 {
		next := r.queue[0]
		r.queue = r.queue[1:]
		next()
	}
	r.firing = false
}

func (r *observerRegistry) dispatch(w *World, kind TriggerKind, e Entity, id ComponentID) {
	for _, ob := range r.byKind[kind] {
		if !ob.entity.IsNone() && ob.entity != e {
			continue
		}
		ob.fn(w, e, id)
	}
}

// fireCustom invokes every custom observer registered under label.
func (r *observerRegistry) fireCustom(w *World, label string, e Entity) {
	for _, ob := range r.byKind[TriggerCustom] {
		if ob.label != label {
			continue
		}
		if !ob.entity.IsNone() && ob.entity != e {
			continue
		}
		ob.fn(w, e, 0)
	}
}

// Observe attaches a global observer for kind.
func (w *World) Observe(kind TriggerKind, fn ObserverFunc) {
	w.observers.Attach(kind, fn)
}

// ObserveEntity attaches an observer scoped to a single entity.
func (w *World) ObserveEntity(kind TriggerKind, e Entity, fn ObserverFunc) {
	w.observers.AttachToEntity(kind, e, fn)
}

// ObserveCustom attaches an observer for a named custom trigger.
func (w *World) ObserveCustom(label string, e Entity, fn ObserverFunc) {
	w.observers.AttachCustom(label, e, fn)
}

// TriggerEvent fires every custom observer registered under label.
func (w *World) TriggerEvent(label string, e Entity) {
	w.observers.fireCustom(w, label, e)
}
