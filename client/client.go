package client

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"team-planner/parser"
)

// SessionURL turns "host:port", "http://host" or "ws://host/ws" into the
// websocket session URL.
func SessionURL(addr string) (string, error) {
	if !strings.Contains(addr, "://") {
		addr = "ws://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("client: parse server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("client: unsupported scheme %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}

// SessionClient talks to a team-planner session. It is not safe for
// concurrent use.
type SessionClient struct {
	Conn *websocket.Conn
}

func Dial(ctx context.Context, addr string) (*SessionClient, error) {
	u, err := SessionURL(addr)
	if err != nil {
		return nil, err
	}

	log.Printf("connecting to %s", u)
	c, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", u, err)
	}
	return &SessionClient{Conn: c}, nil
}

// Send writes one protocol line.
func (sc *SessionClient) Send(line string) error {
	if err := sc.Conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
		return fmt.Errorf("client: send: %w", err)
	}
	return nil
}

// Next blocks for the next reply.
func (sc *SessionClient) Next() (parser.Reply, error) {
	var rep parser.Reply
	if err := sc.Conn.ReadJSON(&rep); err != nil {
		return parser.Reply{}, fmt.Errorf("client: read: %w", err)
	}
	return rep, nil
}

// Do sends line and waits for its reply.
func (sc *SessionClient) Do(line string) (parser.Reply, error) {
	if err := sc.Send(line); err != nil {
		return parser.Reply{}, err
	}
	return sc.Next()
}

// Close sends a close frame and drops the connection.
func (sc *SessionClient) Close() error {
	_ = sc.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return sc.Conn.Close()
}
