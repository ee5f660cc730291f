package api

import (
	"fmt"
	"net/http"
	"time"

	"estudio/internal/events"
)

// sseKeepAlive is the comment-ping interval that keeps idle connections
// from being reaped by proxies.
const sseKeepAlive = 30 * time.Second

var feedTopics = map[string]bool{
	events.TopicBookings: true,
	events.TopicMessages: true,
	events.TopicRadio:    true,
}

// handleEventFeed streams one topic as server-sent events until the client
// disconnects.
func (s *Server) handleEventFeed(w http.ResponseWriter, r *http.Request, _ Identity) {
	topic := r.PathValue("topic")
	if !feedTopics[topic] {
		writeError(w, http.StatusNotFound, "unknown event topic")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ch, cancel, err := s.stream.Subscribe(r.Context(), topic)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "event stream unavailable")
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(sseKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case event, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, event.Payload)
			flusher.Flush()
		}
	}
}
