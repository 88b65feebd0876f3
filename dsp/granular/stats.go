package granular

import "sync/atomic"

// Stats counts grain lifecycle events since the last Configure or Reset.
type Stats struct {
	Active  int    // grains playing after the last block
	Spawned uint64 // grains created
	Dropped uint64 // spawn requests refused because the pool was full
	Retired uint64 // grains that played to the end
}

// counters are written by the audio goroutine and read from anywhere.
type counters struct {
	active  atomic.Int64
	spawned atomic.Uint64
	dropped atomic.Uint64
	retired atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Active:  int(c.active.Load()),
		Spawned: c.spawned.Load(),
		Dropped: c.dropped.Load(),
		Retired: c.retired.Load(),
	}
}

func (c *counters) reset() {
	c.active.Store(0)
	c.spawned.Store(0)
	c.dropped.Store(0)
	c.retired.Store(0)
}
