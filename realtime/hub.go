package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/platefront/restaurant-platform/utils"
)

// writeTimeout bounds how long a publish may block on one slow client.
const writeTimeout = 10 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds all connected clients grouped into per-tenant rooms. Delivery
// is best effort: no replay, no persistence of missed events.
type Hub struct {
	mu    sync.Mutex
	rooms map[uint]map[*websocket.Conn]string // tenant -> conn -> role
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*websocket.Conn]string),
	}
}

// Join adds a connection to its tenant room.
func (h *Hub) Join(tenantID uint, conn *websocket.Conn, role string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[tenantID]
	if !ok {
		room = make(map[*websocket.Conn]string)
		h.rooms[tenantID] = room
	}
	room[conn] = role
}

// Leave removes a connection and closes it.
func (h *Hub) Leave(tenantID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[tenantID]; ok {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, tenantID)
		}
	}
	conn.Close()
}

// Publish sends an event to every client in the tenant room. Write errors
// are logged and the dead connection dropped; callers never see a failure.
func (h *Hub) Publish(tenantID uint, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[tenantID]
	if !ok || len(room) == 0 {
		return
	}

	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("realtime: marshal %s event: %v", event, err)
		return
	}

	for conn, role := range room {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("realtime: send %s to %s client: %v", event, role, err)
			delete(room, conn)
			conn.Close()
		}
	}
}

// ClientCount reports how many clients are in a tenant room.
func (h *Hub) ClientCount(tenantID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[tenantID])
}
