package handler

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"agripulse/internal/agent"
)

const (
	eventsWSWriteWait = 10 * time.Second
	eventsWSPongWait  = 60 * time.Second
	eventsWSPingEvery = (eventsWSPongWait * 9) / 10
)

var eventsWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type lifecycleEvent struct {
	RequestID string `json:"requestId"`
	From      string `json:"from"`
	To        string `json:"to"`
	At        string `json:"at"`
}

// EventsHub broadcasts request lifecycle transitions to the dashboard's
// system-health view. It implements agent.Observer; StateChanged never
// blocks request processing - slow subscribers just miss events.
type EventsHub struct {
	mu   sync.Mutex
	subs map[chan lifecycleEvent]struct{}
}

func NewEventsHub() *EventsHub {
	return &EventsHub{subs: make(map[chan lifecycleEvent]struct{})}
}

func (h *EventsHub) StateChanged(requestID string, from, to agent.State) {
	ev := lifecycleEvent{
		RequestID: requestID,
		From:      string(from),
		To:        string(to),
		At:        time.Now().UTC().Format(time.RFC3339Nano),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *EventsHub) subscribe() chan lifecycleEvent {
	ch := make(chan lifecycleEvent, 64)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *EventsHub) unsubscribe(ch chan lifecycleEvent) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// HandleEvents serves GET /api/events as a websocket push feed.
func (h *EventsHub) HandleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := eventsWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	if err := conn.SetReadDeadline(time.Now().Add(eventsWSPongWait)); err != nil {
		log.Printf("events ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(eventsWSPongWait))
	})

	// Drain inbound frames so pongs and close messages are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(eventsWSPingEvery)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case ev := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(eventsWSWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(eventsWSWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
