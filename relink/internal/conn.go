package internal

import (
	"context"
	"errors"
	"time"

	"github.com/coder/websocket"
)

// Callbacks receive the signals raised by a Conn's read loop.
type Callbacks struct {
	OnMessage func(payload []byte)
	OnError   func(err error)
	OnClose   func(code int, reason string)
}

// Conn wraps a websocket.Conn with a write timeout and a read loop that
// translates reads into message/error/close callbacks.
type Conn struct {
	ws           *websocket.Conn
	writeTimeout time.Duration
}

// Dial establishes a websocket connection and starts the read loop.
// A dial error means the connection never opened; no callbacks fire.
func Dial(ctx context.Context, address string, subprotocols []string, handshakeTimeout, writeTimeout time.Duration, cb Callbacks) (*Conn, error) {
	dialCtx := ctx
	if handshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, handshakeTimeout)
		defer cancel()
	}

	var opts *websocket.DialOptions
	if len(subprotocols) > 0 {
		opts = &websocket.DialOptions{Subprotocols: subprotocols}
	}
	ws, _, err := websocket.Dial(dialCtx, address, opts)
	if err != nil {
		return nil, err
	}

	c := &Conn{ws: ws, writeTimeout: writeTimeout}
	go c.readLoop(cb)
	return c, nil
}

// Send writes one payload as a text frame.
func (c *Conn) Send(ctx context.Context, payload []byte) error {
	if c.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.writeTimeout)
		defer cancel()
	}
	return c.ws.Write(ctx, websocket.MessageText, payload)
}

// Close performs the closing handshake. The read loop observes the
// shutdown and raises its final close callback.
func (c *Conn) Close(code int, reason string) error {
	return c.ws.Close(websocket.StatusCode(code), reason)
}

// readLoop pumps inbound frames until the connection dies. A received
// close frame raises OnClose alone; any other read failure raises OnError
// first, then OnClose with an abnormal status.
func (c *Conn) readLoop(cb Callbacks) {
	for {
		_, data, err := c.ws.Read(context.Background())
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == -1 {
				cb.OnError(err)
				cb.OnClose(int(websocket.StatusAbnormalClosure), err.Error())
				return
			}
			reason := ""
			var ce websocket.CloseError
			if errors.As(err, &ce) {
				reason = ce.Reason
			}
			cb.OnClose(int(status), reason)
			return
		}
		cb.OnMessage(data)
	}
}
