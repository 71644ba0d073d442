package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agripulse/internal/agent"
)

func TestEventsHubBroadcast(t *testing.T) {
	hub := NewEventsHub()
	ch := hub.subscribe()
	defer hub.unsubscribe(ch)

	hub.StateChanged("req-1", agent.StateIdle, agent.StateClassifying)

	select {
	case ev := <-ch:
		assert.Equal(t, "req-1", ev.RequestID)
		assert.Equal(t, "classifying", ev.To)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestEventsHubNeverBlocks(t *testing.T) {
	hub := NewEventsHub()
	ch := hub.subscribe()
	defer hub.unsubscribe(ch)

	// Flood well past the subscriber buffer; StateChanged must return.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			hub.StateChanged("req-x", agent.StateIdle, agent.StateDone)
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("StateChanged blocked on a slow subscriber")
	}
}

func TestHandleEventsWebsocket(t *testing.T) {
	hub := NewEventsHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleEvents))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the server loop a moment to register the subscriber.
	time.Sleep(50 * time.Millisecond)
	hub.StateChanged("req-9", agent.StateGenerating, agent.StateResponding)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev lifecycleEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "req-9", ev.RequestID)
	assert.Equal(t, "responding", ev.To)
}
