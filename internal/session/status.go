package session

// Status is the derived authentication state.
type Status int

const (
	// Anonymous means no token is held.
	Anonymous Status = iota
	// Authenticating means a persisted token is being validated.
	Authenticating
	// Authenticated means the token was accepted on the last validation attempt.
	Authenticated
	// Invalid means the persisted token was rejected and is being discarded.
	Invalid
)

func (s Status) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}
