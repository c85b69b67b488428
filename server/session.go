package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"team-planner/game"
	"team-planner/httpmw"
	"team-planner/parser"
)

const (
	pingInterval = 20 * time.Second
	pongWait     = 2 * pingInterval
	writeWait    = 5 * time.Second
	maxFrame     = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleSession upgrades to a websocket and owns one roster for the life of
// the connection. Every text frame is a protocol line and gets exactly one
// reply.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		s.logger.Printf("session: upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	rid := httpmw.RequestIDFromContext(r.Context())
	httpmw.LogJSON(s.logger, map[string]any{"level": "info", "msg": "session_open", "request_id": rid, "remote": r.RemoteAddr})

	conn.SetReadLimit(maxFrame)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	roster := game.NewRoster()
	lines := 0
	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Printf("session: read: %v", err)
			}
			break
		}
		if kind != websocket.TextMessage {
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		lines++

		lineErr := s.apply(r.Context(), roster, string(msg))
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(parser.Snapshot(roster, lineErr, s.opts...)); err != nil {
			s.logger.Printf("session: write: %v", err)
			break
		}
	}

	httpmw.LogJSON(s.logger, map[string]any{"level": "info", "msg": "session_closed", "request_id": rid, "lines": lines})
}

var errNoStore = errors.New("team storage is not configured")

// apply runs a session line. "|save|<name>" and "|load|<name>" go through the
// store, everything else is a roster protocol line.
func (s *Server) apply(ctx context.Context, roster *game.Roster, line string) error {
	trimmed := strings.TrimSpace(line)
	parts := strings.SplitN(trimmed, "|", 3)
	if len(parts) < 2 || parts[0] != "" {
		return parser.ProcessLine(roster, s.dex, line)
	}

	switch cmd := strings.ToLower(parts[1]); cmd {
	case "save", "load":
		if len(parts) < 3 || strings.TrimSpace(parts[2]) == "" {
			return &parser.LineError{Line: trimmed, Err: parser.ErrMissingArgs}
		}
		if s.store == nil {
			return &parser.LineError{Line: trimmed, Err: errNoStore}
		}
		name := strings.TrimSpace(parts[2])
		if cmd == "save" {
			if err := s.store.SaveRoster(ctx, name, roster); err != nil {
				return &parser.LineError{Line: trimmed, Err: err}
			}
			return nil
		}
		payload, err := s.store.Load(ctx, name)
		if err != nil {
			return &parser.LineError{Line: trimmed, Err: err}
		}
		if err := roster.Import(payload); err != nil {
			return &parser.LineError{Line: trimmed, Err: fmt.Errorf("stored team %q: %w", name, err)}
		}
		return nil
	default:
		return parser.ProcessLine(roster, s.dex, line)
	}
}
