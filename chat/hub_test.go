package chat

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestHubJoinLeave(t *testing.T) {
	h := NewHub()
	var a, b *websocket.Conn = &websocket.Conn{}, &websocket.Conn{}

	h.Join("room-1", a)
	h.Join("room-1", b)
	assert.Len(t, h.rooms["room-1"], 2)

	h.Leave("room-1", a)
	assert.Len(t, h.rooms["room-1"], 1)

	// the room is dropped once its last member leaves
	h.Leave("room-1", b)
	_, ok := h.rooms["room-1"]
	assert.False(t, ok)
}

func TestHubLeaveUnknownRoom(t *testing.T) {
	h := NewHub()
	// must not panic
	h.Leave("ghost", &websocket.Conn{})
	h.Broadcast("ghost", map[string]string{"message": "hello"})
}
