package ecs

// Time is the frame clock resource maintained by the Scheduler.
type Time struct {
	// Delta is the duration of the current frame in seconds.
	Delta float64
	// Elapsed is the sum of all deltas so far.
	Elapsed float64
	// Frame counts completed updates, starting at 0 for the first one.
	Frame uint64
}

func (t *Time) advance(dt float64, frame uint64) {
	t.Delta = dt
	t.Elapsed += dt
	t.Frame = frame
}
