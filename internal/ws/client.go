package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"rewards_wheel/internal/domain"
	"rewards_wheel/internal/wheel"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	maxMessageSize = 512
	sendBuffer     = 1024
)

// Client is one live wheel on one connection. The session is only touched
// from the loop goroutine; the read pump hands commands over a channel.
type Client struct {
	ID    string
	Wheel string
	Conn  *websocket.Conn
	Send  chan []byte
	Hub   *Hub

	session  *wheel.Session
	catalog  *domain.Catalog
	limiter  *rate.Limiter
	frame    time.Duration
	commands chan string
	done     chan struct{}
	once     sync.Once
	log      *slog.Logger

	lastActive atomic.Int64
}

// Run starts the pumps and blocks until the connection closes
func (c *Client) Run() {
	go c.writePump()
	go c.readPump()

	c.send(MsgReady, ReadyPayload{
		SessionID: c.ID,
		Wheel:     c.Wheel,
		Angle:     c.session.CurrentAngle(),
		State:     c.session.State().String(),
	})

	c.loop()
}

// Close ends the session; safe to call more than once
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.Conn.Close()
	})
}

// Done is closed when the client has stopped
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// IdleFor reports how long ago the client last sent a command
func (c *Client) IdleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, c.lastActive.Load()))
}

func (c *Client) touch() {
	c.lastActive.Store(time.Now().UnixNano())
}

// loop owns the session: it applies commands and drives the frame clock
// while a spin is in flight.
func (c *Client) loop() {
	var (
		ticker *time.Ticker
		frames <-chan time.Time
		last   time.Time
	)
	stopClock := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, frames = nil, nil
		}
	}
	defer stopClock()

	for {
		select {
		case <-c.done:
			return

		case cmd := <-c.commands:
			c.handle(cmd)
			if c.session.State() == wheel.Spinning && ticker == nil {
				ticker = time.NewTicker(c.frame)
				frames = ticker.C
				last = time.Now()
			}

		case now := <-frames:
			if c.session.Advance(now.Sub(last)) != wheel.Spinning {
				stopClock()
			}
			last = now
		}
	}
}

func (c *Client) handle(cmd string) {
	switch cmd {
	case MsgSpin:
		if !c.limiter.Allow() {
			c.sendError("too many spins, slow down")
			return
		}
		if _, err := c.session.RequestSpin(); err != nil {
			c.sendError(err.Error())
		}

	case MsgReset:
		if err := c.session.Reset(); err != nil {
			c.sendError(err.Error())
		}

	case MsgPing:
		c.send(MsgPong, nil)

	default:
		c.sendError("unknown message type: " + cmd)
	}
}

func (c *Client) send(msgType string, payload any) {
	b, err := json.Marshal(Envelope{Type: msgType, Payload: payload})
	if err != nil {
		c.log.Error("marshal ws message", "type", msgType, "error", err)
		return
	}

	select {
	case <-c.done:
	case c.Send <- b:
	default:
		c.log.Warn("send buffer full, dropping message", "type", msgType)
	}
}

func (c *Client) sendError(msg string) {
	c.send(MsgError, ErrorPayload{Message: msg})
}

// read
func (c *Client) readPump() {
	defer c.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("read error", "error", err)
			}
			return
		}
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.touch()

		var in CommandPayload
		if err := json.Unmarshal(msg, &in); err != nil || in.Type == "" {
			c.sendError("invalid message")
			continue
		}

		select {
		case c.commands <- in.Type:
		case <-c.done:
			return
		}
	}
}

// write
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					c.log.Debug("write error", "error", err)
				}
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
