package relink

// CloseEvent describes the closure of a transport binding.
type CloseEvent struct {
	// Code is the close status carried by the transport.
	Code CloseCode

	// Reason is the human-readable close reason, possibly empty.
	Reason string

	// Clean is true only for closures initiated via Disconnect.
	// Network drops, peer-initiated closes and failed dials are all unclean.
	Clean bool

	// BindingID identifies the transport binding that closed. Each binding
	// gets a fresh id, so reconnect sequences can be correlated in logs.
	BindingID string
}
