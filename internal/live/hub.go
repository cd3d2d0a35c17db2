// Package live pushes economy and week events to connected browser clients
// over websockets. One hub serves the process; clients subscribe to a single
// game and receive that game's events only.
package live

import (
	"encoding/json"
	"net/http"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/logging"
	"github.com/gorilla/websocket"
)

// Event is the JSON envelope for all live messages.
type Event struct {
	Type    string `json:"type"` // "cycle_changed", "week_resolved", "game_started"
	GameID  uint   `json:"game_id"`
	Payload any    `json:"payload"`
}

type client struct {
	hub    *Hub
	gameID uint
	conn   *websocket.Conn
	send   chan []byte
}

type outbound struct {
	gameID uint
	data   []byte
}

// Hub maintains the set of connected clients grouped by game and fans
// events out to the right room.
type Hub struct {
	rooms      map[uint]map[*client]bool
	broadcast  chan outbound
	register   chan *client
	unregister chan *client
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*client]bool),
		broadcast:  make(chan outbound, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run owns all room state; it must be the only goroutine touching rooms.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if h.rooms[c.gameID] == nil {
				h.rooms[c.gameID] = make(map[*client]bool)
			}
			h.rooms[c.gameID][c] = true
		case c := <-h.unregister:
			if room, ok := h.rooms[c.gameID]; ok {
				if _, ok := room[c]; ok {
					delete(room, c)
					close(c.send)
					if len(room) == 0 {
						delete(h.rooms, c.gameID)
					}
				}
			}
		case msg := <-h.broadcast:
			for c := range h.rooms[msg.gameID] {
				select {
				case c.send <- msg.data:
				default:
					// Slow consumer; drop it rather than block the hub.
					close(c.send)
					delete(h.rooms[msg.gameID], c)
				}
			}
		}
	}
}

// Broadcast publishes an event to every subscriber of the game. Safe to call
// from any goroutine; marshal failures are logged and dropped.
func (h *Hub) Broadcast(gameID uint, eventType string, payload any) {
	data, err := json.Marshal(Event{Type: eventType, GameID: gameID, Payload: payload})
	if err != nil {
		logging.Error("failed to marshal live event", err, logging.Fields{"type": eventType})
		return
	}
	h.broadcast <- outbound{gameID: gameID, data: data}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Session auth happens before the upgrade; cross-origin browser clients
	// are expected (the UI is served separately).
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and subscribes the connection to the game.
func (h *Hub) ServeWS(gameID uint, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, nil)
		return
	}
	c := &client{hub: h, gameID: gameID, conn: conn, send: make(chan []byte, 64)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump discards inbound frames (the feed is one-way) and unregisters on
// close.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
