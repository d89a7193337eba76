package handlers

import (
	"bulkimage/services"
	"bulkimage/websocket"
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeWatcher records the folders it was asked to watch
type fakeWatcher struct {
	watched []string
	err     error
}

func (w *fakeWatcher) Watch(folderPath string) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	w.watched = append(w.watched, folderPath)
	return folderPath, nil
}

// TestHelper provides a router wired with real services
type TestHelper struct {
	Router   *gin.Engine
	Server   *httptest.Server
	Hub      websocket.Hub
	Watcher  *fakeWatcher
	Sessions services.SessionStore
	Dir      string
}

// NewTestHelper creates a router and a temporary image folder
func NewTestHelper(t *testing.T) *TestHelper {
	gin.SetMode(gin.TestMode)

	scanner := services.NewFolderScanner()
	sessions := services.NewSessionStore()
	hub := websocket.NewHub()
	go hub.Run()
	watcher := &fakeWatcher{}

	imageHandler := NewImageHandler(scanner)
	sessionHandler := NewSessionHandler(sessions, scanner)
	watchHandler := NewWatchHandler(scanner, watcher, hub)
	healthHandler := NewHealthHandler(services.DefaultExtensions)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", healthHandler.HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/status", healthHandler.APIStatus)
		api.GET("/scan", imageHandler.ScanFolder)
		api.POST("/output", imageHandler.EnsureOutput)
		api.GET("/images/preview", imageHandler.PreviewImage)
		api.POST("/sessions", sessionHandler.CreateSession)
		api.GET("/sessions", sessionHandler.ListSessions)
		api.GET("/sessions/:id", sessionHandler.GetSession)
		api.PUT("/sessions/:id", sessionHandler.UpdateSession)
		api.DELETE("/sessions/:id", sessionHandler.DeleteSession)
		api.GET("/sessions/:id/output", sessionHandler.ScanOutput)
		api.GET("/ws/folders", watchHandler.WatchFolder)
		api.GET("/ws/all", watchHandler.WatchAll)
	}

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestHelper{
		Router:   router,
		Server:   server,
		Hub:      hub,
		Watcher:  watcher,
		Sessions: sessions,
		Dir:      t.TempDir(),
	}
}

// WritePNG writes a PNG of the given size into dir
func (h *TestHelper) WritePNG(t *testing.T, dir, name string, width, height int) int64 {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644))
	return int64(buf.Len())
}

// Do performs a request against the router and decodes a JSON response
func (h *TestHelper) Do(t *testing.T, method, path string, body interface{}, target interface{}) *httptest.ResponseRecorder {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.Router.ServeHTTP(rec, req)

	if target != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target), rec.Body.String())
	}

	return rec
}

// formatKB renders a byte count the way the summary line does
func formatKB(size int64) string {
	return fmt.Sprintf("%.2f KB", float64(size)/1024)
}
