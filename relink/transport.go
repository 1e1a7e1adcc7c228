package relink

import "context"

// CloseCode is a transport close status. Values follow the standard
// WebSocket status registry.
type CloseCode int

const (
	CloseNormal        CloseCode = 1000
	CloseGoingAway     CloseCode = 1001
	CloseAbnormal      CloseCode = 1006
	CloseInternalError CloseCode = 1011
)

// Transport is one concrete binding of the underlying connection. A binding
// is created open, replaced wholesale on reconnect and never reused after
// it closes.
type Transport interface {
	// Send writes one outbound payload.
	Send(ctx context.Context, payload []byte) error

	// Close shuts the binding down with the given status and reason.
	Close(code CloseCode, reason string) error
}

// SignalHandler receives the signals a live Transport raises. A binding
// raises signals one at a time, delivers messages in arrival order, and
// raises exactly one close as its final signal; every error is followed by
// that close.
type SignalHandler interface {
	HandleMessage(payload []byte)
	HandleError(err error)
	HandleClose(code CloseCode, reason string)
}

// Dialer produces transport bindings. A successful Dial returns an open
// binding whose signals flow into h; a failed Dial is a construction
// failure and raises nothing.
type Dialer interface {
	Dial(ctx context.Context, address string, subprotocols []string, h SignalHandler) (Transport, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context, address string, subprotocols []string, h SignalHandler) (Transport, error)

func (f DialerFunc) Dial(ctx context.Context, address string, subprotocols []string, h SignalHandler) (Transport, error) {
	return f(ctx, address, subprotocols, h)
}
