package shapeshifter

// TickGate fires once every period milliseconds of an externally supplied
// monotonic tick counter. It never reads a clock itself: every call that
// needs "now" receives it as a parameter, so a recorded tick trace replays
// identically.
type TickGate struct {
	period uint64
	last   uint64
	active bool
}

// NewTickGate returns a gate with the given period whose reference tick is now.
func NewTickGate(periodMs uint64, active bool, now uint64) *TickGate {
	return &TickGate{period: periodMs, last: now, active: active}
}

// Elapsed reports whether a full period has passed since the gate last fired
// (or was last reset). On true the reference tick moves to tick. An inactive
// gate never fires.
func (g *TickGate) Elapsed(tick uint64) bool {
	if !g.active {
		return false
	}
	if tick < g.last {
		// Ticks are monotonic; a smaller value means the caller rewound.
		return false
	}
	if tick-g.last >= g.period {
		g.last = tick
		return true
	}
	return false
}

// SetActive enables or disables the gate. The reference tick is reset to now
// in both directions so a reactivated gate does not fire on stale backlog.
func (g *TickGate) SetActive(active bool, now uint64) {
	g.active = active
	g.last = now
}

// Active reports whether the gate can fire.
func (g *TickGate) Active() bool {
	return g.active
}

// SetPeriod replaces the period and resets the reference tick to now.
func (g *TickGate) SetPeriod(periodMs uint64, now uint64) {
	g.period = periodMs
	g.last = now
}

// Period returns the current period in milliseconds.
func (g *TickGate) Period() uint64 {
	return g.period
}

// AdjustPeriod adds deltaMs to the period. The period never drops below zero.
func (g *TickGate) AdjustPeriod(deltaMs int64) {
	if deltaMs < 0 && uint64(-deltaMs) > g.period {
		g.period = 0
		return
	}
	g.period = uint64(int64(g.period) + deltaMs)
}

// Remaining returns the milliseconds left until the gate would fire at tick,
// or zero if it is already due.
func (g *TickGate) Remaining(tick uint64) uint64 {
	if tick < g.last {
		return g.period
	}
	since := tick - g.last
	if since >= g.period {
		return 0
	}
	return g.period - since
}
