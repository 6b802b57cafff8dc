package order

type Status string

const (
	StatusPlaced    Status = "placed"
	StatusReady     Status = "ready"
	StatusCollected Status = "collected"
)

// transitions is the full fulfillment state machine: linear, forward-only,
// no skips. Any edge not listed here is rejected.
var transitions = map[Status]Status{
	StatusPlaced: StatusReady,
	StatusReady:  StatusCollected,
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	return transitions[s] == next
}
