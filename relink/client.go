package relink

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/relinkhq/relink-sdk-go/relink/internal"
)

// ManualDisconnectReason is the close reason reported for closures
// initiated via Disconnect.
const ManualDisconnectReason = "manual disconnect"

// Client manages one logical connection over a socket-like transport:
// lifecycle, bounded automatic reconnection, event dispatch and outbound
// guarding. Construct it with New; a zero Client is not usable.
type Client struct {
	cfg        Config
	logger     Logger
	dialer     Dialer
	dispatcher dispatcher
	retry      *reconnector

	mu        sync.Mutex
	state     ConnectionState
	binding   Transport
	bindingID string
	gen       uint64
	lastMsg   []byte
	lastErr   error
}

// New constructs a connection manager from cfg. It does not connect;
// call Connect. The returned error is non-nil only for an invalid config.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:    cfg,
		logger: cfg.Logger,
		dialer: cfg.Dialer,
		retry:  newReconnector(cfg.ReconnectDelay, cfg.MaxReconnectAttempts),
		state:  StateClosed,
		dispatcher: dispatcher{
			onOpen:    cfg.OnOpen,
			onClose:   cfg.OnClose,
			onError:   cfg.OnError,
			onMessage: cfg.OnMessage,
		},
	}
	if c.logger == nil {
		c.logger = noopLogger{}
	}
	if c.dialer == nil {
		c.dialer = wsDialer{
			handshakeTimeout: cfg.HandshakeTimeout,
			writeTimeout:     cfg.WriteTimeout,
		}
	}
	return c, nil
}

// State returns the current connection state.
func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected reports whether the connection is open and usable.
func (c *Client) IsConnected() bool {
	return c.State() == StateOpen
}

// LastMessage returns the most recently received payload, or nil.
func (c *Client) LastMessage() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastMsg
}

// LastError returns the most recently observed error, or nil. It is
// cleared whenever a new connection attempt begins.
func (c *Client) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ReconnectAttempts returns the current reconnect attempt counter. It
// resets to zero on a successful open and on Disconnect.
func (c *Client) ReconnectAttempts() int {
	return c.retry.count()
}

// Connect establishes a new transport binding. It is a no-op while the
// connection is open. The dial happens asynchronously: success surfaces
// through the open observer, failure through the error and close
// observers like any other unclean close.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.state == StateOpen && c.binding != nil {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	c.state = StateConnecting
	c.lastErr = nil
	c.bindingID = uuid.NewString()
	id := c.bindingID
	c.mu.Unlock()

	c.logger.Debug("dialing", map[string]any{
		"address": c.cfg.Address,
		"binding": id,
	})
	go c.dial(gen, id)
}

// Disconnect tears the connection down deliberately: it cancels any
// pending reconnect timer, supersedes in-flight dials, closes the binding
// and reports a clean close. It never triggers automatic reconnection.
// Teardown of the owning component is equivalent to Disconnect.
func (c *Client) Disconnect() {
	c.retry.cancel()
	c.retry.reset()

	c.mu.Lock()
	if c.state == StateClosed && c.binding == nil {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	t := c.binding
	c.binding = nil
	id := c.bindingID
	c.state = StateClosing
	c.mu.Unlock()

	if t != nil {
		if err := t.Close(CloseNormal, ManualDisconnectReason); err != nil {
			c.logger.Debug("binding close failed", map[string]any{
				"binding": id,
				"error":   err.Error(),
			})
		}
	}

	c.mu.Lock()
	if c.gen == gen {
		c.state = StateClosed
	}
	c.mu.Unlock()

	c.logger.Info("disconnected", map[string]any{"binding": id})
	c.dispatcher.fireClose(CloseEvent{
		Code:      CloseNormal,
		Reason:    ManualDisconnectReason,
		Clean:     true,
		BindingID: id,
	})
}

// Send hands one payload to the transport. While the connection is not
// open the payload is dropped with a logged warning: nothing is queued,
// nothing is retried after a reconnect. The return value reports whether
// the payload reached the transport. Transport write failures surface
// through the error observer.
func (c *Client) Send(ctx context.Context, payload []byte) bool {
	c.mu.Lock()
	st := c.state
	t := c.binding
	id := c.bindingID
	c.mu.Unlock()

	if st != StateOpen || t == nil {
		c.logger.Warn("send dropped: connection not open", map[string]any{
			"state": st.String(),
		})
		return false
	}

	if err := t.Send(ctx, payload); err != nil {
		werr := WrapError(ErrorWrite, "transport send", err)
		c.mu.Lock()
		c.lastErr = werr
		c.mu.Unlock()
		c.logger.Error("send failed", map[string]any{
			"binding": id,
			"error":   err.Error(),
		})
		c.dispatcher.fireError(werr)
		return false
	}
	return true
}

// dial runs off the caller's goroutine. gen tags the binding being built;
// if the Client moved on (Disconnect, another Connect) before the dial
// finished, the result is discarded and the socket closed.
func (c *Client) dial(gen uint64, id string) {
	t, err := c.dialer.Dial(context.Background(), c.cfg.Address, c.cfg.Subprotocols, genHandler{c: c, gen: gen})
	if err != nil {
		code := ErrorDial
		if errors.Is(err, context.DeadlineExceeded) {
			code = ErrorTimeout
		}
		c.handleError(gen, WrapError(code, "dial "+c.cfg.Address, err))
		c.handleClose(gen, CloseAbnormal, err.Error())
		return
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		_ = t.Close(CloseGoingAway, "superseded")
		return
	}
	c.binding = t
	c.state = StateOpen
	c.mu.Unlock()

	c.retry.reset()
	c.logger.Info("connection open", map[string]any{
		"address": c.cfg.Address,
		"binding": id,
	})
	c.dispatcher.fireOpen()
}

// handleMessage records and dispatches one inbound payload.
func (c *Client) handleMessage(gen uint64, payload []byte) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.lastMsg = payload
	c.mu.Unlock()

	c.dispatcher.fireMessage(payload)
}

// handleError records and dispatches a transport error. An error alone
// never changes the connection state: the transport contract guarantees
// a close signal follows, and that close drives the transition and the
// retry decision.
func (c *Client) handleError(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.lastErr = err
	id := c.bindingID
	c.mu.Unlock()

	c.logger.Error("transport error", map[string]any{
		"binding": id,
		"error":   err.Error(),
	})
	c.dispatcher.fireError(err)
}

// handleClose processes an unclean closure of the tagged binding: state
// goes to closed, the close observer fires, and if reconnection applies
// a single retry is scheduled after the configured delay. Signals from
// superseded bindings are ignored.
func (c *Client) handleClose(gen uint64, code CloseCode, reason string) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	c.binding = nil
	id := c.bindingID
	c.mu.Unlock()

	c.logger.Warn("connection closed", map[string]any{
		"binding": id,
		"code":    int(code),
		"reason":  reason,
	})
	c.dispatcher.fireClose(CloseEvent{
		Code:      code,
		Reason:    reason,
		Clean:     false,
		BindingID: id,
	})

	if !c.cfg.Reconnect {
		return
	}
	if n, ok := c.retry.schedule(func() { c.reconnect(gen) }); ok {
		c.logger.Info("reconnect scheduled", map[string]any{
			"attempt": n,
			"delay":   c.cfg.ReconnectDelay.String(),
		})
	} else if c.retry.exhausted() {
		c.logger.Warn("reconnect attempts exhausted", map[string]any{
			"attempts": n,
		})
	}
}

// reconnect runs on timer expiry. The generation check suppresses retries
// that lost a race with Disconnect or a manual Connect.
func (c *Client) reconnect(gen uint64) {
	c.mu.Lock()
	stale := gen != c.gen
	c.mu.Unlock()
	if stale {
		return
	}
	c.Connect()
}

// genHandler forwards a binding's signals to the Client, tagged with the
// binding's generation so late signals from replaced bindings are dropped.
type genHandler struct {
	c   *Client
	gen uint64
}

func (h genHandler) HandleMessage(payload []byte) { h.c.handleMessage(h.gen, payload) }

func (h genHandler) HandleError(err error) {
	h.c.handleError(h.gen, WrapError(ErrorRead, "transport read", err))
}

func (h genHandler) HandleClose(code CloseCode, reason string) {
	h.c.handleClose(h.gen, code, reason)
}

// wsDialer is the default Dialer, backed by the websocket binding in
// internal.
type wsDialer struct {
	handshakeTimeout time.Duration
	writeTimeout     time.Duration
}

func (d wsDialer) Dial(ctx context.Context, address string, subprotocols []string, h SignalHandler) (Transport, error) {
	conn, err := internal.Dial(ctx, address, subprotocols, d.handshakeTimeout, d.writeTimeout, internal.Callbacks{
		OnMessage: h.HandleMessage,
		OnError:   h.HandleError,
		OnClose: func(code int, reason string) {
			h.HandleClose(CloseCode(code), reason)
		},
	})
	if err != nil {
		return nil, err
	}
	return wsTransport{conn: conn}, nil
}

// wsTransport adapts internal.Conn to the Transport interface.
type wsTransport struct {
	conn *internal.Conn
}

func (t wsTransport) Send(ctx context.Context, payload []byte) error {
	return t.conn.Send(ctx, payload)
}

func (t wsTransport) Close(code CloseCode, reason string) error {
	return t.conn.Close(int(code), reason)
}
