package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for the local dashboard
	},
}

// Hub maintains the set of subscribers to the engine's run-progress stream
// (run_complete events from handleStartRun) and fans out each broadcast to
// all of them.
type Hub struct {
	subscribers map[*websocket.Conn]bool
	broadcast   chan []byte
	mutex       sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:   make(chan []byte, 256),
		subscribers: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Run() {
	for message := range h.broadcast {
		h.mutex.Lock()
		for sub := range h.subscribers {
			// Set write deadline to prevent a blocked subscriber from hanging the hub
			_ = sub.SetWriteDeadline(time.Now().Add(5 * time.Second))
			err := sub.WriteMessage(websocket.TextMessage, message)
			if err != nil {
				log.Printf("run-stream write error: %v", err)
				sub.Close()
				delete(h.subscribers, sub)
			}
		}
		h.mutex.Unlock()
	}
}

// Subscribe handles an incoming websocket connection on GET /api/v1/stream.
func (h *Hub) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade run-stream websocket: %v", err)
		return
	}

	h.mutex.Lock()
	h.subscribers[conn] = true
	h.mutex.Unlock()

	log.Printf("run-stream subscriber connected. Total subscribers: %d", len(h.subscribers))

	// Keep-alive loop: we only push run events down, but we must read to
	// detect disconnects.
	go func() {
		defer func() {
			h.mutex.Lock()
			delete(h.subscribers, conn)
			h.mutex.Unlock()
			conn.Close()
			log.Printf("run-stream subscriber disconnected. Total subscribers: %d", len(h.subscribers))
		}()
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("run-stream error: %v", err)
				}
				break
			}
		}
	}()
}

// Broadcast sends a run-progress event (JSON bytes) to every subscriber.
func (h *Hub) Broadcast(data []byte) {
	h.broadcast <- data
}
