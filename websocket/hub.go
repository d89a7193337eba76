package websocket

import (
	"bulkimage/types"
	"log"
	"sync"
	"time"
)

// AllTopic receives every message regardless of folder
const AllTopic = "all"

// Hub interface defines the methods for managing WebSocket connections
type Hub interface {
	Run()
	PublishReport(folder string, report *types.ScanReport)
	PublishError(folder string, message string)
	RegisterClient(client *Client)
	UnregisterClient(client *Client)
	ClientCount(topic string) int
}

// hub maintains the set of active clients and broadcasts messages to them
type hub struct {
	// Registered clients mapped by topic (folder key or AllTopic)
	clients map[string]map[*Client]bool

	// Broadcast channel for sending messages to all clients of a folder
	broadcast chan types.ScanMessage

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() Hub {
	return &hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan types.ScanMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main event loop
func (h *hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.topic] == nil {
				h.clients[client.topic] = make(map[*Client]bool)
			}
			h.clients[client.topic][client] = true
			h.mu.Unlock()
			log.Printf("WebSocket client connected for %s", client.topic)

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client.topic, client)
			h.mu.Unlock()
			log.Printf("WebSocket client disconnected for %s", client.topic)

		case message := <-h.broadcast:
			h.mu.Lock()
			h.deliver(message.Folder, message)
			h.deliver(AllTopic, message)
			h.mu.Unlock()
		}
	}
}

// deliver sends a message to one topic, dropping clients that cannot keep up
func (h *hub) deliver(topic string, message types.ScanMessage) {
	for client := range h.clients[topic] {
		select {
		case client.send <- message:
		default:
			h.remove(topic, client)
		}
	}
}

// remove drops a client and closes its send channel. Callers hold mu.
func (h *hub) remove(topic string, client *Client) {
	clients, ok := h.clients[topic]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, topic)
	}
}

// PublishReport sends a fresh scan report to the folder's clients
func (h *hub) PublishReport(folder string, report *types.ScanReport) {
	h.publish(types.ScanMessage{
		Folder:    folder,
		Type:      "report",
		Report:    report,
		Timestamp: time.Now(),
	})
}

// PublishError tells the folder's clients that a rescan failed
func (h *hub) PublishError(folder string, message string) {
	h.publish(types.ScanMessage{
		Folder:    folder,
		Type:      "error",
		Message:   message,
		Timestamp: time.Now(),
	})
}

func (h *hub) publish(message types.ScanMessage) {
	select {
	case h.broadcast <- message:
	default:
		log.Printf("WebSocket broadcast channel full, dropping message for %s", message.Folder)
	}
}

// RegisterClient registers a new client with the hub
func (h *hub) RegisterClient(client *Client) {
	h.register <- client
}

// UnregisterClient unregisters a client from the hub
func (h *hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// ClientCount returns the number of clients subscribed to a topic
func (h *hub) ClientCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}
