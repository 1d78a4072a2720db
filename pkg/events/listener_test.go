package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventServer(t *testing.T, payloads []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for _, p := range payloads {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(p)))
		}
		// Hold the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestListenerDeliversEventsInOrder(t *testing.T) {
	srv := newEventServer(t, []string{
		`{"type":"log","content":"🔍 searching web"}`,
		`{"type":"log","content":"✅ Task Complete","is_error":false}`,
		`{"type":"log","content":"ERROR boom","is_error":true}`,
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(wsURL(srv))
	go l.Run(ctx)

	var got []LogEvent
	timeout := time.After(3 * time.Second)
	for len(got) < 3 {
		select {
		case ev := <-l.Events():
			got = append(got, ev)
		case <-timeout:
			t.Fatal("timed out waiting for events")
		}
	}

	assert.Equal(t, "🔍 searching web", got[0].Content)
	assert.Equal(t, "✅ Task Complete", got[1].Content)
	assert.True(t, got[2].IsError)
}

func TestListenerSkipsMalformedAndForeignMessages(t *testing.T) {
	srv := newEventServer(t, []string{
		`{broken json`,
		`{"type":"status","content":"ignored"}`,
		`{"type":"log","content":"💭 thinking"}`,
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(wsURL(srv))
	go l.Run(ctx)

	select {
	case ev := <-l.Events():
		assert.Equal(t, "💭 thinking", ev.Content)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the log event")
	}
}

func TestListenerStopsOnCancel(t *testing.T) {
	srv := newEventServer(t, nil)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	l := NewListener(wsURL(srv))

	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	// Let the dial land, then cancel
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("listener did not stop on cancel")
	}

	_, open := <-l.Events()
	assert.False(t, open, "events channel closes on shutdown")
}
