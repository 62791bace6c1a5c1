package ecs

//go:generate go tool stringer -type=Schedule

// Schedule tells the Scheduler when a system runs.
type Schedule uint8

const (
	// Loop systems run once per frame, in registration order.
	Loop Schedule = iota
	// Setup systems run exactly once, before the first frame.
	Setup
)

// System represents a unit of per-tick logic. Systems read and mutate the world
// and the resources; they signal misconfiguration by panicking through
// GetResource rather than by returning errors.
//
// User-defined systems can be structs with ResourceRef fields, which the
// Scheduler binds on registration, and custom state that persists between
// frames.
type System interface {
	Run(world *World, resources *Resources)
}

// Scheduled is implemented by systems that choose their own Schedule.
// Systems that do not implement it run on Loop.
type Scheduled interface {
	Schedule() Schedule
}

// Named is implemented by systems that report their own name for logs and
// stats. Other systems are named after their type.
type Named interface {
	Name() string
}

// SystemFunc adapts a plain function to the System interface. It runs on Loop.
type SystemFunc func(world *World, resources *Resources)

// Run calls f.
func (f SystemFunc) Run(world *World, resources *Resources) {
	f(world, resources)
}

type funcSystem struct {
	name     string
	schedule Schedule
	fn       SystemFunc
}

// NewSystem wraps fn as a named system with the given schedule.
func NewSystem(name string, schedule Schedule, fn SystemFunc) System {
	return &funcSystem{name: name, schedule: schedule, fn: fn}
}

func (s *funcSystem) Run(world *World, resources *Resources) { s.fn(world, resources) }
func (s *funcSystem) Schedule() Schedule                     { return s.schedule }
func (s *funcSystem) Name() string                           { return s.name }

// scheduleOf returns the schedule a system asks for, defaulting to Loop.
func scheduleOf(system System) Schedule {
	if s, ok := system.(Scheduled); ok {
		return s.Schedule()
	}
	return Loop
}
