package cmd

import (
	"bulkimage/handlers"
	"bulkimage/middleware"
	"bulkimage/services"
	"bulkimage/websocket"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

// StartWebServer starts the web server
func StartWebServer(port int) {
	// Set production mode if not specified
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize services
	extensions := Extensions()
	scanner := services.NewFolderScanner(extensions...)
	sessions := services.NewSessionStore()

	hub := websocket.NewHub()
	go hub.Run()

	watcher, err := services.NewFolderWatcher(scanner, hub, services.DefaultDebounce)
	if err != nil {
		log.Fatalf("Failed to start folder watcher: %v", err)
	}
	watcher.Start()

	// Initialize handlers
	imageHandler := handlers.NewImageHandler(scanner)
	sessionHandler := handlers.NewSessionHandler(sessions, scanner)
	watchHandler := handlers.NewWatchHandler(scanner, watcher, hub)
	healthHandler := handlers.NewHealthHandler(extensions)

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply middleware
	r.Use(middleware.CORS())
	r.Use(middleware.Logging())
	r.Use(middleware.Security())

	// Setup routes
	SetupRoutes(r, imageHandler, sessionHandler, watchHandler, healthHandler)

	// Start server
	portStr := strconv.Itoa(port)
	if serverPort := os.Getenv("SERVER_PORT"); serverPort != "" {
		portStr = serverPort
	}

	log.Printf("Bulk image server starting on port %s", portStr)
	if err := r.Run(":" + portStr); err != nil {
		watcher.Stop()
		log.Fatalf("Failed to start server: %v", err)
	}
}

// SetupRoutes configures all the HTTP routes
func SetupRoutes(r *gin.Engine, imageHandler *handlers.ImageHandler, sessionHandler *handlers.SessionHandler, watchHandler *handlers.WatchHandler, healthHandler *handlers.HealthHandler) {
	// Health check endpoint
	r.GET("/health", healthHandler.HealthCheck)

	// API routes group
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", healthHandler.APIStatus)

		// Folder scanning and output folder
		apiGroup.GET("/scan", imageHandler.ScanFolder)
		apiGroup.POST("/output", imageHandler.EnsureOutput)
		apiGroup.GET("/images/preview", imageHandler.PreviewImage)

		// Edit sessions
		sessionsGroup := apiGroup.Group("/sessions")
		{
			sessionsGroup.POST("", sessionHandler.CreateSession)
			sessionsGroup.GET("", sessionHandler.ListSessions)
			sessionsGroup.GET("/:id", sessionHandler.GetSession)
			sessionsGroup.PUT("/:id", sessionHandler.UpdateSession)
			sessionsGroup.DELETE("/:id", sessionHandler.DeleteSession)
			sessionsGroup.GET("/:id/output", sessionHandler.ScanOutput)
		}

		// WebSocket endpoints for live folder reports
		wsGroup := apiGroup.Group("/ws")
		{
			wsGroup.GET("/folders", watchHandler.WatchFolder)
			wsGroup.GET("/all", watchHandler.WatchAll)
		}
	}
}
