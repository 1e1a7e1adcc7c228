package relink

// ConnectionState represents the current state of the managed connection.
// The numeric values match the usual socket readyState codes.
type ConnectionState int

const (
	// StateConnecting means a transport binding is being established.
	StateConnecting ConnectionState = iota

	// StateOpen means the connection is established and usable.
	StateOpen

	// StateClosing means a deliberate shutdown is in progress.
	StateClosing

	// StateClosed means there is no usable transport binding.
	StateClosed
)

// String returns the string representation of a ConnectionState.
func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
