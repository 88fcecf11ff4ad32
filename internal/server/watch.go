package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/loyerbxl/rentwizard/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API serves first-party wizard clients only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	watchWriteTimeout = 5 * time.Second
	watchPingInterval = 30 * time.Second
)

// handleWatch upgrades to a websocket and streams the session state:
// the current snapshot immediately, then one message per transition.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	entry := s.reg.lookup(chi.URLParam(r, "sessionID"), time.Now())
	if entry == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown session"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Websocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	ch := entry.addWatcher()
	defer entry.removeWatcher(ch)
	defer conn.Close()

	// Reader goroutine: we never expect client messages, but reading is
	// how close frames (and dead peers) are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Prime the new stream with the current snapshot; existing watchers
	// already have it.
	entry.prime(ch)

	ticker := time.NewTicker(watchPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case data := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
