package handlers

import (
	"log"
	"net/http"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// watchable tables; everything else is rejected before upgrading.
var changeFeedTables = map[string]bool{
	"listings": true,
}

// HandleChanges godoc
// @Summary      Subscribe to table change events
// @Description  WebSocket feed of insert/update/delete events; consumers refetch on every event
// @Tags         websocket
// @Param        table path string true "Table name (listings)"
// @Router       /ws/changes/{table} [get]
func (h *WSHandler) HandleChanges(c *gin.Context) {
	table := c.Param("table")
	if !changeFeedTables[table] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown table"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(table, conn)
	defer h.hub.RemoveConnection(table, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
