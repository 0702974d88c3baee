package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// ChangeEvent notifies subscribers that a row in a table changed.
// It carries no row data; consumers are expected to refetch.
type ChangeEvent struct {
	Table  string `json:"table"`
	Action string `json:"action"` // insert, update or delete
	ID     uint   `json:"id"`
}

// Hub fans change events out to websocket subscribers, keyed by table.
type Hub struct {
	mu     sync.RWMutex
	tables map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		tables: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(table string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.tables[table] == nil {
		h.tables[table] = make(map[*websocket.Conn]bool)
	}
	h.tables[table][conn] = true
	log.Printf("ws: client subscribed to %s changes (total: %d)", table, len(h.tables[table]))
}

func (h *Hub) RemoveConnection(table string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.tables[table]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.tables, table)
		}
		log.Printf("ws: client unsubscribed from %s changes", table)
	}
}

// BroadcastChange pushes a change event to every subscriber of the
// table. Dead connections are dropped on write failure.
func (h *Hub) BroadcastChange(table, action string, id uint) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.tables[table]
	if !ok {
		return
	}

	data, err := json.Marshal(ChangeEvent{Table: table, Action: action, ID: id})
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}
