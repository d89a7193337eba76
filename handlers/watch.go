package handlers

import (
	"bulkimage/services"
	"bulkimage/types"
	"bulkimage/websocket"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// FolderWatcher is the part of services.FolderWatcher the handler needs
type FolderWatcher interface {
	Watch(folderPath string) (string, error)
}

// WatchHandler streams live scan reports over WebSocket
type WatchHandler struct {
	scanner services.FolderScanner
	watcher FolderWatcher
	hub     websocket.Hub
}

// NewWatchHandler creates a new watch handler
func NewWatchHandler(scanner services.FolderScanner, watcher FolderWatcher, hub websocket.Hub) *WatchHandler {
	return &WatchHandler{
		scanner: scanner,
		watcher: watcher,
		hub:     hub,
	}
}

// WatchFolder subscribes a WebSocket client to one folder's reports.
// The first message is a report of the folder as it is now.
func (h *WatchHandler) WatchFolder(c *gin.Context) {
	folder := c.Query("path")
	if folder == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'path' is required"})
		return
	}

	key, err := services.FolderKey(folder)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder path", "details": err.Error()})
		return
	}

	report, err := h.scanner.Scan(key)
	if err != nil {
		respondError(c, "failed to scan folder", err)
		return
	}

	if _, err := h.watcher.Watch(key); err != nil {
		log.Printf("Error watching folder %s: %v", key, err)
		respondError(c, "failed to watch folder", err)
		return
	}

	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, key)
	client.Queue(types.ScanMessage{
		Folder:    key,
		Type:      "report",
		Report:    report,
		Timestamp: time.Now(),
	})
	h.hub.RegisterClient(client)

	// Start client pumps
	client.StartPumps()
}

// WatchAll subscribes a WebSocket client to every watched folder
func (h *WatchHandler) WatchAll(c *gin.Context) {
	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, websocket.AllTopic)
	h.hub.RegisterClient(client)

	client.StartPumps()
}
