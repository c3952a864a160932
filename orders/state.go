package orders

// RequestState tags a per-order mutation so a failed attempt is
// distinguishable from one never started.
type RequestState int

const (
	StateIdle RequestState = iota
	StatePending
	StateError
)

// tracker maps order ids to the state of their in-flight mutation. Scoped
// per-entity: one order's pending cancel never blocks another's.
type tracker struct {
	states map[string]RequestState
}

func newTracker() *tracker {
	return &tracker{states: make(map[string]RequestState)}
}

func (t *tracker) state(id string) RequestState {
	return t.states[id]
}

// begin marks id pending; returns false when a request is already in flight.
func (t *tracker) begin(id string) bool {
	if t.states[id] == StatePending {
		return false
	}
	t.states[id] = StatePending
	return true
}

func (t *tracker) done(id string) {
	delete(t.states, id)
}

func (t *tracker) fail(id string) {
	t.states[id] = StateError
}
