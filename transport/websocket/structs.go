package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/omok-labs/gomoku-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`
	Move   *Move          `json:"move,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Move - board coordinates of a single stone placement.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// playerConn serializes writes: game updates fan out to a connection
// from other players' read loops.
type playerConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newPlayerConn(conn *websocket.Conn) *playerConn {
	return &playerConn{conn: conn}
}

func (that *playerConn) WriteJSON(v interface{}) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.conn.WriteJSON(v) //nolint: wrapcheck // thin wrapper
}
