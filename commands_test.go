package stratum

import (
	"testing"
	"unsafe"
)

func TestCommandsSpawnDeferred(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[Position](w, "Position")

	cmd := newCommands(w)
	before := w.Count()
	builder := cmd.Spawn()
	p := Position{X: 7}
	builder.Insert(pos.ID, unsafe.Pointer(&p))

	if w.Count() != before {
		t.Fatalf("Commands.Spawn() must not create the entity before Apply()")
	}

	cmd.Apply(w)

	if w.Count() != before+1 {
		t.Fatalf("Count() = %d after Apply(), want %d", w.Count(), before+1)
	}

	var found Entity
	q := NewQuery(w, With(pos.ID))
	cur := q.Cursor()
	for cur.Next() {
		found = cur.Entity()
	}
	if got := pos.Get(w, found); got == nil || got.X != 7 {
		t.Fatalf("deferred-spawned entity missing its inserted component: %+v", got)
	}
}

func TestCommandsSpawnWithBundle(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[Position](w, "Position")
	vel := RegisterComponent[Velocity](w, "Velocity")

	cmd := newCommands(w)
	cmd.Spawn().With(pos.Write(Position{X: 1}), vel.Write(Velocity{X: 2}))
	cmd.Apply(w)

	var found Entity
	q := NewQuery(w, With(pos.ID), With(vel.ID))
	cur := q.Cursor()
	for cur.Next() {
		found = cur.Entity()
	}
	if got := pos.Get(w, found); got == nil || got.X != 1 {
		t.Fatalf("bundled Position missing after deferred spawn: %+v", got)
	}
	if got := vel.Get(w, found); got == nil || got.X != 2 {
		t.Fatalf("bundled Velocity missing after deferred spawn: %+v", got)
	}
}

func TestCommandsDespawnDeferred(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()

	cmd := newCommands(w)
	cmd.Despawn(e)
	if !w.Exists(e) {
		t.Fatalf("Despawn must be deferred until Apply()")
	}
	cmd.Apply(w)
	if w.Exists(e) {
		t.Fatalf("entity should be gone after Apply()")
	}
}

func TestWorldDeferredModeQueuesSet(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[Position](w, "Position")
	e := w.Spawn()

	w.BeginDeferred()
	p := Position{X: 3}
	w.Set(e, pos.ID, unsafe.Pointer(&p))
	if pos.Has(w, e) {
		t.Fatalf("Set() during deferred mode must not apply immediately")
	}
	w.EndDeferred()
	if !pos.Has(w, e) {
		t.Fatalf("queued Set() should apply once deferred mode ends")
	}
}

func TestWorldDeferredModeNests(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[Position](w, "Position")
	e := w.Spawn()

	w.BeginDeferred()
	w.BeginDeferred()
	p := Position{X: 9}
	w.Set(e, pos.ID, unsafe.Pointer(&p))
	w.EndDeferred()
	if pos.Has(w, e) {
		t.Fatalf("inner EndDeferred must not flush while still nested")
	}
	w.EndDeferred()
	if !pos.Has(w, e) {
		t.Fatalf("outer EndDeferred should flush queued operations")
	}
}
