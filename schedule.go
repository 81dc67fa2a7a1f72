package stratum

import "github.com/TheBitDrifter/bark"

// RunCondition gates whether a system executes this run. A system with
// multiple conditions only runs if all of them return true.
type RunCondition func(w *World) bool

// SystemFunc is the body of a system. It receives the world directly and
// a fresh per-invocation Commands buffer for deferred structural changes.
type SystemFunc func(w *World, cmd *Commands)

// StageName identifies one of the scheduler's ordered phases.
type StageName string

// The six built-in stages, in default run order.
// Startup systems run once, via Schedule.RunStartup, never as part of the
// per-frame Update loop.
const (
	StageStartup    StageName = "Startup"
	StageFirst      StageName = "First"
	StagePreUpdate  StageName = "PreUpdate"
	StageUpdate     StageName = "Update"
	StagePostUpdate StageName = "PostUpdate"
	StageLast       StageName = "Last"
)

type stage struct {
	name    StageName
	order   int
	systems []*system
}

type system struct {
	label      string
	stage      StageName
	before     []string
	after      []string
	conditions []RunCondition
	fn         SystemFunc
}

// SystemBuilder configures a system before it's added to a Schedule.
type SystemBuilder struct {
	sys *system
}

// NewSystem starts building a system identified by label, to run in
// stage. Labels must be unique within a Schedule.
func NewSystem(label string, stage StageName, fn SystemFunc) *SystemBuilder {
	return &SystemBuilder{sys: &system{label: label, stage: stage, fn: fn}}
}

// Before declares that this system must run before the system named
// label within the same stage.
func (b *SystemBuilder) Before(label string) *SystemBuilder {
	b.sys.before = append(b.sys.before, label)
	return b
}

// After declares that this system must run after the system named label
// within the same stage.
func (b *SystemBuilder) After(label string) *SystemBuilder {
	b.sys.after = append(b.sys.after, label)
	return b
}

// RunIf adds a run condition; the system is skipped unless every
// registered condition returns true.
func (b *SystemBuilder) RunIf(cond RunCondition) *SystemBuilder {
	b.sys.conditions = append(b.sys.conditions, cond)
	return b
}

// Schedule owns the stage list and every system registered against it
// Stages run in insertion/declared order; within a stage,
// systems run in dependency order resolved at Build time.
type Schedule struct {
	w              *World
	stages         []*stage
	stageIndex     map[StageName]int
	labels         map[string]*system
	built          bool
	startupBuilt   bool
	startupOrdered []*system
	ordered        map[StageName][]*system
}

// NewSchedule creates a Schedule over w with the six default stages
// already inserted in their default order.
func NewSchedule(w *World) *Schedule {
	s := &Schedule{
		w:          w,
		stageIndex: make(map[StageName]int),
		labels:     make(map[string]*system),
		ordered:    make(map[StageName][]*system),
	}
	for i, name := range []StageName{StageStartup, StageFirst, StagePreUpdate, StageUpdate, StagePostUpdate, StageLast} {
		s.insertStage(name, i*10)
	}
	return s
}

func (s *Schedule) insertStage(name StageName, order int) {
	st := &stage{name: name, order: order}
	s.stages = append(s.stages, st)
	s.resortStages()
	s.reindexStages()
}

// InsertStageBefore adds a custom stage with an order 5 below existing's.
// Stages run in ascending order, and stages of equal order run in the order
// they were inserted.
func (s *Schedule) InsertStageBefore(name StageName, existing StageName) {
	idx, ok := s.stageIndex[existing]
	if !ok {
		panic(bark.AddTrace(UnknownLabelError{Label: string(existing)}))
	}
	order := s.stages[idx].order - 5
	s.insertStage(name, order)
}

// InsertStageAfter adds a custom stage with an order 5 above existing's, so
// it runs after existing and after any stage already holding that order.
func (s *Schedule) InsertStageAfter(name StageName, existing StageName) {
	idx, ok := s.stageIndex[existing]
	if !ok {
		panic(bark.AddTrace(UnknownLabelError{Label: string(existing)}))
	}
	order := s.stages[idx].order + 5
	s.insertStage(name, order)
}

func (s *Schedule) resortStages() {
	for i := 1; i < len(s.stages); i++ {
		j := i
		for j > 0 && s.stages[j-1].order > s.stages[j].order {
			s.stages[j-1], s.stages[j] = s.stages[j], s.stages[j-1]
			j--
		}
	}
}

func (s *Schedule) reindexStages() {
	for i, st := range s.stages {
		s.stageIndex[st.name] = i
	}
}

// AddSystem registers a built system. Panics if its label is already in
// use within this Schedule.
func (s *Schedule) AddSystem(b *SystemBuilder) {
	sys := b.sys
	if _, exists := s.labels[sys.label]; exists {
		panic(bark.AddTrace(DuplicateSystemLabelError{Label: sys.label}))
	}
	idx, ok := s.stageIndex[sys.stage]
	if !ok {
		panic(bark.AddTrace(UnknownLabelError{Label: string(sys.stage)}))
	}
	s.stages[idx].systems = append(s.stages[idx].systems, sys)
	s.labels[sys.label] = sys
	s.built = false
}

// Build resolves Before/After ordering within every stage via topological
// sort. Per the scheduler's label-resolution policy, a Before/After that
// names a label nobody declared is a hard build error (bark panic), not a
// silently dropped constraint: an ordering request the scheduler can't
// honour is a programmer mistake, not a no-op.
func (s *Schedule) Build() {
	for _, st := range s.stages {
		if st.name == StageStartup {
			s.startupOrdered = topoSort(st.systems, s.labels)
			continue
		}
		s.ordered[st.name] = topoSort(st.systems, s.labels)
	}
	s.built = true
}

// topoSort orders systems within one stage so that every Before/After
// constraint is satisfied, breaking ties by declaration order (Kahn's
// algorithm for determinism).
func topoSort(systems []*system, labels map[string]*system) []*system {
	index := make(map[*system]int, len(systems))
	for i, sys := range systems {
		index[sys] = i
	}
	indegree := make(map[*system]int, len(systems))
	edges := make(map[*system][]*system, len(systems))

	addEdge := func(from, to *system) {
		if from == nil || to == nil || from == to {
			return
		}
		edges[from] = append(edges[from], to)
		indegree[to]++
	}

	for _, sys := range systems {
		for _, label := range sys.after {
			dep, ok := labels[label]
			if !ok {
				panic(bark.AddTrace(UnknownLabelError{Label: label}))
			}
			addEdge(dep, sys)
		}
		for _, label := range sys.before {
			dep, ok := labels[label]
			if !ok {
				panic(bark.AddTrace(UnknownLabelError{Label: label}))
			}
			addEdge(sys, dep)
		}
	}

	var ready []*system
	for _, sys := range systems {
		if indegree[sys] == 0 {
			ready = append(ready, sys)
		}
	}

	var out []*system
	visited := make(map[*system]bool)
	for len(out) < len(systems) {
		if len(ready) == 0 {
			// A cycle among these systems' Before/After constraints: fall
			// back to declaration order for whatever's left rather than
			// deadlocking the build.
			for _, sys := range systems {
				if !visited[sys] {
					ready = append(ready, sys)
				}
			}
		}
		// pick the lowest-declaration-order ready system for determinism
		best := 0
		for i := 1; i < len(ready); i++ {
			if index[ready[i]] < index[ready[best]] {
				best = i
			}
		}
		sys := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		if visited[sys] {
			continue
		}
		visited[sys] = true
		out = append(out, sys)
		for _, next := range edges[sys] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = append(ready, next)
			}
		}
	}
	return out
}

func runSystem(w *World, sys *system) {
	for _, cond := range sys.conditions {
		if !cond(w) {
			return
		}
	}
	cmd := newCommands(w)
	sys.fn(w, cmd)
	cmd.Apply(w)
}

// RunStartup executes every Startup-stage system exactly once. Calling it
// again is a no-op, so applications can call it unconditionally before
// entering their main loop.
func (s *Schedule) RunStartup() {
	if s.startupBuilt {
		return
	}
	if !s.built {
		s.Build()
	}
	s.startupBuilt = true
	for _, sys := range s.startupOrdered {
		runSystem(s.w, sys)
	}
}

// Run executes one frame: queued state transitions, then every stage
// except Startup in order, then world.Update() and event-buffer swap.
func (s *Schedule) Run() {
	if !s.built {
		s.Build()
	}
	s.w.processStateTransitions()
	for _, st := range s.stages {
		if st.name == StageStartup {
			continue
		}
		for _, sys := range s.ordered[st.name] {
			runSystem(s.w, sys)
		}
	}
	s.w.Update()
	s.w.SwapEventBuffers()
}
