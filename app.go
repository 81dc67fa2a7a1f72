package stratum

// App bundles a World with its Schedule so callers have one handle for
// both the storage core and the scheduler layered on top of it.
type App struct {
	World    *World
	Schedule *Schedule
}

// NewApp creates a new world and an attached schedule with the default
// stage set already inserted.
func NewApp() *App {
	w := NewWorld()
	return &App{World: w, Schedule: NewSchedule(w)}
}

// AddSystem registers b against the app's schedule.
func (a *App) AddSystem(b *SystemBuilder) {
	a.Schedule.AddSystem(b)
}

// RunStartup runs every Startup-stage system once.
func (a *App) RunStartup() {
	a.Schedule.RunStartup()
}

// Run executes one frame.
func (a *App) Run() {
	a.Schedule.Run()
}
