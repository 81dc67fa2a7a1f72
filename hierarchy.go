package stratum

import "github.com/TheBitDrifter/bark"

// maxHierarchyDepth bounds depth/ancestor walks so they always terminate,
// even on a parent chain that is longer than this or loops.
const maxHierarchyDepth = 256

// ParentComponent mirrors an entity's hierarchy parent as a real,
// queryable component: "every entity with a Parent" is With(parentID)
// like any other query, even though the side-table below is what
// AddChild/RemoveChild/Parent/Children actually read and write.
type ParentComponent struct {
	Value Entity
}

// ChildrenComponent mirrors an entity's direct children as a real,
// queryable component, upserted whenever the side-table's children list
// for that entity changes and removed once it has none.
type ChildrenComponent struct {
	Values []Entity
}

// hierarchy is the Parent/Children side-table, the fast path every
// hierarchy operation actually reads and writes. parentComp/childrenComp
// are the two auto-registered components mirrored onto the affected
// entities so the relationship is also visible to ordinary queries.
type hierarchy struct {
	w        *World
	parent   map[Entity]Entity
	children map[Entity][]Entity

	parentComp   ComponentType[ParentComponent]
	childrenComp ComponentType[ChildrenComponent]
}

func newHierarchy(w *World) *hierarchy {
	return &hierarchy{
		w:            w,
		parent:       make(map[Entity]Entity),
		children:     make(map[Entity][]Entity),
		parentComp:   RegisterComponent[ParentComponent](w, "Parent"),
		childrenComp: RegisterComponent[ChildrenComponent](w, "Children"),
	}
}

// ParentComponentType returns the typed accessor for the world's
// auto-registered Parent component, for callers that want to query or
// read it directly rather than go through Parent/Children.
func (w *World) ParentComponentType() ComponentType[ParentComponent] {
	return w.hierarchy.parentComp
}

// ChildrenComponentType returns the typed accessor for the world's
// auto-registered Children component.
func (w *World) ChildrenComponentType() ComponentType[ChildrenComponent] {
	return w.hierarchy.childrenComp
}

// syncChildrenComponent upserts e's Children component from the current
// side-table contents, or removes it once e has no children left.
func (h *hierarchy) syncChildrenComponent(e Entity) {
	kids := h.children[e]
	if len(kids) == 0 {
		h.childrenComp.Remove(h.w, e)
		return
	}
	h.childrenComp.Set(h.w, e, ChildrenComponent{Values: kids})
}

// AddChild makes child a child of parent. Returns CycleError if parent is
// child itself or already a descendant of child.
func (w *World) AddChild(parent, child Entity) error {
	h := w.hierarchy
	if parent == child || h.isAncestorOf(child, parent) {
		return bark.AddTrace(CycleError{Parent: parent, Child: child})
	}
	if old, ok := h.parent[child]; ok {
		h.removeChildEntry(old, child)
		h.syncChildrenComponent(old)
	}
	h.parent[child] = parent
	h.children[parent] = append(h.children[parent], child)
	h.parentComp.Set(w, child, ParentComponent{Value: parent})
	h.syncChildrenComponent(parent)
	return nil
}

// RemoveChild detaches child from parent, leaving child parentless.
func (w *World) RemoveChild(parent, child Entity) {
	h := w.hierarchy
	if h.parent[child] != parent {
		return
	}
	delete(h.parent, child)
	h.removeChildEntry(parent, child)
	h.parentComp.Remove(w, child)
	h.syncChildrenComponent(parent)
}

func (h *hierarchy) removeChildEntry(parent, child Entity) {
	kids := h.children[parent]
	for i, k := range kids {
		if k == child {
			kids[i] = kids[len(kids)-1]
			h.children[parent] = kids[:len(kids)-1]
			return
		}
	}
}

// RemoveAllChildren detaches every child of e, leaving each parentless.
func (w *World) RemoveAllChildren(e Entity) {
	h := w.hierarchy
	for _, child := range h.children[e] {
		delete(h.parent, child)
		h.parentComp.Remove(w, child)
	}
	delete(h.children, e)
	h.childrenComp.Remove(w, e)
}

// Parent returns e's parent and whether it has one.
func (w *World) Parent(e Entity) (Entity, bool) {
	p, ok := w.hierarchy.parent[e]
	return p, ok
}

// Children returns e's direct children. The returned slice must not be
// mutated by the caller.
func (w *World) Children(e Entity) []Entity {
	return w.hierarchy.children[e]
}

// IsAncestorOf reports whether ancestor is a (possibly indirect) ancestor
// of e.
func (w *World) IsAncestorOf(ancestor, e Entity) bool {
	return w.hierarchy.isAncestorOf(ancestor, e)
}

func (h *hierarchy) isAncestorOf(ancestor, e Entity) bool {
	cur := e
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		p, ok := h.parent[cur]
		if !ok {
			return false
		}
		if p == ancestor {
			return true
		}
		cur = p
	}
	return false
}

// DescendantOf reports whether e is a descendant of ancestor; the inverse
// framing of IsAncestorOf kept for call-site readability.
func (w *World) DescendantOf(e, ancestor Entity) bool {
	return w.hierarchy.isAncestorOf(ancestor, e)
}

// Depth returns e's distance from its furthest-up ancestor (0 for a root
// entity with no parent).
func (w *World) Depth(e Entity) int {
	h := w.hierarchy
	depth := 0
	cur := e
	for depth < maxHierarchyDepth {
		p, ok := h.parent[cur]
		if !ok {
			return depth
		}
		cur = p
		depth++
	}
	return depth
}

// VisitDescendants walks e's subtree depth-first, calling fn for every
// descendant. fn returning false stops the walk early.
func (w *World) VisitDescendants(e Entity, fn func(Entity) bool) {
	w.hierarchy.visit(e, fn)
}

func (h *hierarchy) visit(e Entity, fn func(Entity) bool) bool {
	for _, child := range h.children[e] {
		if !fn(child) {
			return false
		}
		if !h.visit(child, fn) {
			return false
		}
	}
	return true
}

// onDespawn is called by World.Despawn. Here, a
// despawned parent's children are orphaned rather than cascade-despawned:
// this keeps despawn's cost proportional to the number of direct children,
// with no subtree walk, and leaves child handles
// intact (they simply lose their Parent link and component).
func (h *hierarchy) onDespawn(e Entity) {
	if parent, ok := h.parent[e]; ok {
		h.removeChildEntry(parent, e)
		delete(h.parent, e)
		h.syncChildrenComponent(parent)
	}
	for _, child := range h.children[e] {
		delete(h.parent, child)
		h.parentComp.Remove(h.w, child)
	}
	delete(h.children, e)
}
