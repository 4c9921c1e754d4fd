package store

// Result reports how far a mutation travelled. Every mutation applies to
// local state first; the result says what happened after that, as a value
// rather than an error, so callers and tests can assert on it directly.
type Result int

const (
	// Applied means the mutation is final in local state with no remote
	// write in play: the anonymous path, or a no-op against a missing id.
	Applied Result = iota
	// Confirmed means the remote store acknowledged the write.
	Confirmed
	// RolledBack means the remote write failed and local state was reverted
	// to its pre-mutation snapshot.
	RolledBack
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied-locally"
	case Confirmed:
		return "confirmed-remote"
	case RolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}
