package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is the envelope every broadcast message is wrapped in.
type Event struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	SentAt  time.Time   `json:"sent_at"`
	Payload interface{} `json:"payload"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			count := len(h.Clients)
			h.mutex.Unlock()
			h.logger.Info("ws client connected", zap.Int("clients", count))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues an event for every connected client. It never blocks;
// events are dropped when the broadcast buffer is full.
func (h *Hub) Publish(eventType string, payload interface{}) {
	msg, err := json.Marshal(Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		SentAt:  time.Now(),
		Payload: payload,
	})
	if err != nil {
		h.logger.Warn("ws event not encodable", zap.String("type", eventType), zap.Error(err))
		return
	}

	select {
	case h.Broadcast <- msg:
	default:
		h.logger.Warn("ws broadcast buffer full, event dropped", zap.String("type", eventType))
	}
}
