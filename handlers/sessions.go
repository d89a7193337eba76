package handlers

import (
	"bulkimage/services"
	"bulkimage/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionHandler handles edit session endpoints
type SessionHandler struct {
	sessions services.SessionStore
	scanner  services.FolderScanner
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions services.SessionStore, scanner services.FolderScanner) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		scanner:  scanner,
	}
}

// CreateSession starts a new session, optionally with initial settings
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var settings types.EditSettings
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&settings); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid settings format",
				"details": err.Error(),
			})
			return
		}
	}

	session, err := h.sessions.Create(settings)
	if err != nil {
		respondError(c, "failed to create session", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session": session,
	})
}

// ListSessions returns all sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions := h.sessions.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// GetSession returns a session by ID
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, "session not found", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
	})
}

// UpdateSession replaces the staged settings of a session
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var settings types.EditSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid settings format",
			"details": err.Error(),
		})
		return
	}

	session, err := h.sessions.Update(c.Param("id"), settings)
	if err != nil {
		respondError(c, "failed to update session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "settings updated successfully",
		"session": session,
	})
}

// DeleteSession removes a session
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "session not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "session deleted successfully",
	})
}

// ScanOutput scans the output folder staged in a session
func (h *SessionHandler) ScanOutput(c *gin.Context) {
	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, "session not found", err)
		return
	}

	if session.Settings.OutputFolder == "" {
		c.JSON(http.StatusConflict, gin.H{
			"error": "session has no output folder",
		})
		return
	}

	report, err := h.scanner.Scan(session.Settings.OutputFolder)
	if err != nil {
		log.Printf("Error scanning output folder %s: %v", session.Settings.OutputFolder, err)
		respondError(c, "failed to scan output folder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report": report,
	})
}
