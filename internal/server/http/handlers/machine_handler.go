package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MachineHandler upgrades fulfillment machine connections and keeps them
// registered for broadcast for the lifetime of the socket.
type MachineHandler struct {
	facade   MachineFacade
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewMachineHandler constructs MachineHandler.
func NewMachineHandler(facade PrintFacade, logger *slog.Logger) *MachineHandler {
	return &MachineHandler{
		facade: facade,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Machines are trusted shop-floor clients, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Channel handles GET /ws.
func (h *MachineHandler) Channel(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	connID := uuid.NewString()
	conn := &machineConn{ws: ws}
	h.facade.RegisterMachine(conn)
	h.logger.Info("machine connected", slog.String("conn_id", connID))

	defer func() {
		h.facade.DeregisterMachine(conn)
		ws.Close()
		h.logger.Info("machine disconnected", slog.String("conn_id", connID))
	}()

	// Machines never send application data; the read loop only detects
	// closure.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

// machineConn serializes writes to one websocket; broadcasts may fire from
// concurrent checkout requests.
type machineConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *machineConn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}
