// Package events consumes the backend's websocket log feed and turns each
// line into animation signals.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vventirozos/GhostAgent-v2/pkg/logger"
)

// LogEvent is one inbound message from the event channel
type LogEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	IsError bool   `json:"is_error"`
}

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Listener maintains the websocket connection to the backend's log feed
// and delivers events in arrival order. There is no backpressure: a burst
// is delivered as fast as it arrives and the render loop stays decoupled
// at its own cadence.
type Listener struct {
	url    string
	events chan LogEvent
}

// NewListener creates a listener for the given websocket URL
func NewListener(url string) *Listener {
	return &Listener{
		url:    url,
		events: make(chan LogEvent, 256),
	}
}

// Events is the ordered delivery channel, closed when Run returns
func (l *Listener) Events() <-chan LogEvent {
	return l.events
}

// Run dials and reads until the context is canceled, reconnecting with
// exponential backoff after any transport error. Call it in its own
// goroutine; events land on the channel for the host thread to process.
func (l *Listener) Run(ctx context.Context) {
	defer close(l.events)
	log := logger.WithComponent("events")

	backoff := initialBackoff
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.url, nil)
		if err != nil {
			log.Warnf("event channel dial failed: %v (retrying in %s)", err, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		log.Infof("event channel connected: %s", l.url)
		backoff = initialBackoff

		if err := l.readLoop(ctx, conn); err != nil {
			log.Warnf("event channel read failed: %v", err)
		}
		conn.Close()
	}
}

func (l *Listener) readLoop(ctx context.Context, conn *websocket.Conn) error {
	// Unblock the read when the context is canceled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	log := logger.WithComponent("events")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var ev LogEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Debugf("skipping malformed event: %.80s", data)
			continue
		}
		if ev.Type != "log" {
			continue
		}

		select {
		case l.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
