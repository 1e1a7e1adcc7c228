package relink

import (
	"net/url"
	"time"
)

// Config controls how the connection manager connects and recovers.
// It is supplied once at Client creation and never mutated; changing the
// configuration means tearing the Client down and creating a fresh one.
type Config struct {
	// Address is the target endpoint, e.g. "ws://host:port/path".
	Address string

	// Subprotocols is the optional list of subprotocols to negotiate.
	Subprotocols []string

	// Reconnect enables automatic reconnection after unclean closes.
	Reconnect bool

	// ReconnectDelay is the fixed interval between an unclean close and
	// the next connection attempt. No backoff is applied.
	ReconnectDelay time.Duration

	// MaxReconnectAttempts bounds automatic reconnection. Once the attempt
	// counter reaches this value no further attempt is scheduled.
	MaxReconnectAttempts int

	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration

	// At most one observer per signal kind. All are optional and are
	// invoked synchronously in signal order.
	OnOpen    func()
	OnClose   func(CloseEvent)
	OnError   func(error)
	OnMessage func(payload []byte)

	// Logger receives diagnostics, including the dropped-send warning.
	// Defaults to a no-op logger.
	Logger Logger

	// Dialer overrides the transport factory. Defaults to the built-in
	// websocket dialer.
	Dialer Dialer
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Reconnect:            true,
		ReconnectDelay:       time.Second,
		MaxReconnectAttempts: 5,
		HandshakeTimeout:     10 * time.Second,
		WriteTimeout:         10 * time.Second,
	}
}

// Validate reports whether the config can back a Client.
func (c Config) Validate() error {
	if c.Address == "" {
		return NewError(ErrorInvalidConfig, "empty address")
	}
	if _, err := url.Parse(c.Address); err != nil {
		return WrapError(ErrorInvalidConfig, "malformed address", err)
	}
	if c.ReconnectDelay < 0 {
		return NewError(ErrorInvalidConfig, "negative reconnect delay")
	}
	if c.MaxReconnectAttempts < 0 {
		return NewError(ErrorInvalidConfig, "negative max reconnect attempts")
	}
	return nil
}
