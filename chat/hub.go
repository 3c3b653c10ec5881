package chat

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub relays messages between the websocket connections joined to a
// chat room. Writes are serialized under the hub lock.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*websocket.Conn]bool)}
}

func (h *Hub) Join(room string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*websocket.Conn]bool)
	}
	h.rooms[room][conn] = true
}

func (h *Hub) Leave(room string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[room], conn)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
}

// Broadcast sends v to every connection in the room, dropping members
// whose write fails.
func (h *Hub) Broadcast(room string, v interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.rooms[room] {
		if err := conn.WriteJSON(v); err != nil {
			log.Printf("Dropping chat connection after write error: %v", err)
			conn.Close()
			delete(h.rooms[room], conn)
		}
	}
}
