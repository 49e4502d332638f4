package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/sketchview/pkg/cache"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/watch"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is read-only and carries no document content.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWatch streams change events for one document. The first message
// carries the current fingerprint.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	if s.notifier == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "change feed is not available for this document store"))
		return
	}
	p := chi.URLParam(r, "*")
	data, err := s.runner.Store.Read(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	events, cancel, err := s.notifier.Subscribe(p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		return
	}
	defer conn.Close()
	logger := loggerFrom(r.Context(), s.logger).With("document", p)
	logger.Debug("watch opened")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(ev watch.Event) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(ev); err != nil {
			logger.Debug("watch write failed", "err", err)
			return false
		}
		return true
	}
	if !send(watch.Event{Path: p, Fingerprint: cache.Fingerprint(data)}) {
		return
	}
	for {
		select {
		case <-closed:
			logger.Debug("watch closed")
			return
		case <-r.Context().Done():
			return
		case <-s.stopping:
			logger.Debug("watch closed by shutdown")
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			return
		case ev, ok := <-events:
			if !ok || !send(ev) {
				return
			}
		}
	}
}
