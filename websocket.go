package mjpegcast

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// handleWebSocket streams the same frames as /streaming, one binary message
// per JPEG. Incoming messages are read and discarded; a read error means the
// peer went away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade: %v", err)
		return
	}
	defer ws.Close()

	conn := uuid.NewString()
	sub := s.b.Subscribe()
	defer s.b.Unsubscribe(sub.ID())

	log.Info("[%s] %s websocket as subscriber %d", conn, r.RemoteAddr, sub.ID())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		f, err := sub.Next(ctx)
		if err != nil {
			deadline := time.Now().Add(time.Second)
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream ended")
			ws.WriteControl(websocket.CloseMessage, msg, deadline)
			log.Info("[%s] websocket ended: %v", conn, err)
			return
		}

		if s.cfg.WriteTimeout > 0 {
			ws.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		}
		if err := ws.WriteMessage(websocket.BinaryMessage, f.JPEG()); err != nil {
			log.Info("[%s] websocket client gone: %v", conn, err)
			return
		}
	}
}
