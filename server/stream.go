package server

import (
	"hex/communication"
	"hex/engine"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 10 * time.Second

// handleStream sends the current view, then one message per committed move until the
// game ends or the client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.master.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Subscribe before reading the view so no move falls in between
	updates, cancel, err := s.master.Subscribe(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer cancel()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(update communication.Update) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(update); err != nil {
			log.Debug().Err(err).Str("game", id).Msg("stream write failed")
			return false
		}
		return true
	}

	view := g.View()
	if !send(communication.Update{Type: "view", View: &view}) {
		return
	}
	if view.Status.State == engine.Terminal {
		closeStream(conn)
		return
	}

	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if !send(communication.Update{Type: "move", Move: &update.Move, View: &update.View}) {
				return
			}
			if update.View.Status.State == engine.Terminal {
				closeStream(conn)
				return
			}
		case <-ticker.C:
			if !send(communication.Update{Type: "ping"}) {
				return
			}
		}
	}
}

func closeStream(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
