package conn

import "fmt"

// State of a transport readiness gate.
type State uint8

// Readiness states.
const (
	Uninitialized State = iota
	Armed               // first of two init signals seen
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Armed:
		return "armed"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Readiness gates bus traffic until enough init signals have been observed.
//
// Some driver registration paths deliver the init message twice, the first one
// being a false start issued before the bus is usable. A gate configured for
// two signals arms on the first and only becomes ready on the second, so
// nothing reaches the bus in between.
type Readiness struct {
	state    State
	twoStage bool
}

// NewReadiness returns a gate requiring signals (1 or 2) init signals.
func NewReadiness(signals int) (*Readiness, error) {
	switch signals {
	case 0, 1:
		return &Readiness{}, nil
	case 2:
		return &Readiness{twoStage: true}, nil
	default:
		return nil, fmt.Errorf("conn: unsupported number of init signals %d", signals)
	}
}

// Init observes an init signal and reports whether it completed initialization.
func (r *Readiness) Init() bool {
	switch r.state {
	case Uninitialized:
		if r.twoStage {
			r.state = Armed
			return false
		}
		r.state = Ready
		return true
	case Armed:
		r.state = Ready
		return true
	default:
		return false
	}
}

// Ready is true when bus traffic is allowed.
func (r *Readiness) Ready() bool {
	return r.state == Ready
}

// State returns the current state.
func (r *Readiness) State() State {
	return r.state
}

// Reset returns the gate to the uninitialized state.
func (r *Readiness) Reset() {
	r.state = Uninitialized
}
