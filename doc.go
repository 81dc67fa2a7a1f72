/*
Package stratum provides an archetype-based Entity-Component-System (ECS)
engine and a cooperative frame scheduler built on top of it.

Entities with identical component sets are stored together in an
archetype's columnar chunks, so iteration over a query walks contiguous
memory instead of following per-entity pointers. Structural changes
(attaching or removing a component) move an entity's row to the archetype
reached by a memoised graph edge rather than rehashing from scratch.

Core Concepts:

  - Entity: an opaque handle (index + generation) identifying a row.
  - Component: a typed value, or a zero-sized tag, attached to an entity.
  - Archetype: the set of entities sharing exactly one component set.
  - Query: a cached filter (With/Without/Optional/Changed/Added) over
    archetypes, walked through a Cursor.
  - Schedule: named stages of systems, ordered by declared Before/After
    constraints and gated by run conditions.

Basic Usage:

	w := stratum.NewWorld()
	position := stratum.FactoryNewComponent[Position](w, "Position")
	velocity := stratum.FactoryNewComponent[Velocity](w, "Velocity")

	e := w.Spawn()
	position.Set(w, e, Position{X: 0, Y: 0})
	velocity.Set(w, e, Velocity{X: 1, Y: 0})

	q := stratum.NewQuery(w, stratum.With(position.ID), stratum.With(velocity.ID))
	cur := q.Cursor()
	for cur.Next() {
		pos := position.GetFromCursor(cur)
		vel := velocity.GetFromCursor(cur)
		pos.X += vel.X
		pos.Y += vel.Y
	}

Systems are registered against an App's Schedule and run once per Run call:

	app := stratum.NewApp()
	app.AddSystem(stratum.NewSystem("move", stratum.StageUpdate, moveSystem))
	app.RunStartup()
	app.Run()
*/
package stratum
