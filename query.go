package stratum

// termKind distinguishes the ways a Query can constrain an archetype
// against a component id.
type termKind int

const (
	termWith termKind = iota
	termWithout
	termOptional
	termChanged
	termAdded
)

type queryTerm struct {
	kind termKind
	id   ComponentID
}

// With matches entities carrying id.
func With(id ComponentID) queryTerm { return queryTerm{kind: termWith, id: id} }

// Without matches entities lacking id.
func Without(id ComponentID) queryTerm { return queryTerm{kind: termWithout, id: id} }

// Optional matches regardless of id, but makes id available to fetch
// from the cursor when present.
func Optional(id ComponentID) queryTerm { return queryTerm{kind: termOptional, id: id} }

// Changed matches every entity in an archetype that contains id. The
// iterator does not filter by changed_tick itself; read it off the cursor
// (Cursor.ChangedTick) and compare against world.Tick() or a remembered
// last-seen tick to find which rows actually changed.
func Changed(id ComponentID) queryTerm { return queryTerm{kind: termChanged, id: id} }

// Added matches every entity in an archetype that contains id. The
// iterator does not filter by added_tick itself; read it off the cursor
// (Cursor.AddedTick) and compare against world.Tick() or a remembered
// last-seen tick to find which rows were actually added.
func Added(id ComponentID) queryTerm { return queryTerm{kind: termAdded, id: id} }

// Query is a composable filter over a world's archetypes. Its
// matched-archetype set is cached and only recomputed when the world's
// structural-change version advances.
type Query struct {
	w     *World
	terms []queryTerm

	cachedVersion uint64
	matched       []*archetype
}

// NewQuery builds a Query over w constrained by terms.
func NewQuery(w *World, terms ...queryTerm) *Query {
	return &Query{w: w, terms: terms}
}

func (q *Query) refresh() {
	if q.cachedVersion == q.w.structuralVersion && q.matched != nil {
		return
	}
	q.matched = q.matched[:0]
	for _, a := range q.w.table.all() {
		if q.structurallyMatches(a) {
			q.matched = append(q.matched, a)
		}
	}
	q.cachedVersion = q.w.structuralVersion
}

// structurallyMatches evaluates every term against an archetype's shape.
// Changed and Added constrain shape exactly like With (the archetype must
// carry the component); the per-row freshness test they imply is left to
// the caller, per Changed's and Added's doc comments.
func (q *Query) structurallyMatches(a *archetype) bool {
	for _, t := range q.terms {
		switch t.kind {
		case termWith, termChanged, termAdded:
			if !a.has(t.id) {
				return false
			}
		case termWithout:
			if a.has(t.id) {
				return false
			}
		case termOptional:
			// no shape constraint
		}
	}
	return true
}

// MatchedArchetypeCount returns how many archetypes currently satisfy the
// query's terms.
func (q *Query) MatchedArchetypeCount() int {
	q.refresh()
	return len(q.matched)
}

// Count returns the number of entities the query currently matches. Like
// the cursor, this does not apply any Changed/Added freshness test — every
// entity in a matched archetype is counted.
func (q *Query) Count() int {
	q.refresh()
	n := 0
	for _, a := range q.matched {
		n += a.entityCount
	}
	return n
}

// Cursor returns a fresh iterator positioned before the first matching
// row.
func (q *Query) Cursor() *Cursor {
	q.refresh()
	return newCursor(q)
}
