package session

// State is the lifecycle state of a Store.
type State int

const (
	// StateUninitialized is the zero value; a Store built with New never reports it.
	StateUninitialized State = iota
	// StateLoading holds until Restore completes.
	StateLoading
	// StateAnonymous is ready with no identity.
	StateAnonymous
	// StateAuthenticated is ready with an identity.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "ready-anonymous"
	case StateAuthenticated:
		return "ready-authenticated"
	default:
		return "uninitialized"
	}
}

// Ready reports whether the state is one of the ready states.
func (s State) Ready() bool {
	return s == StateAnonymous || s == StateAuthenticated
}
