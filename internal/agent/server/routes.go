package server

import (
	"net/http"

	"agripulse/internal/agent/handler"
)

func NewMux(answerHandler *handler.AnswerHandler, events *handler.EventsHub) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/answer", answerHandler.HandleAnswer)
	mux.HandleFunc("/api/events", events.HandleEvents)
	mux.HandleFunc("/healthz", handler.HandleHealthz)

	return CORS(mux)
}
