package handlers

import (
	"bulkimage/config"
	"bulkimage/services"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ImageHandler handles folder scan and preview endpoints
type ImageHandler struct {
	scanner services.FolderScanner
}

// NewImageHandler creates a new image handler
func NewImageHandler(scanner services.FolderScanner) *ImageHandler {
	return &ImageHandler{
		scanner: scanner,
	}
}

// OutputRequest is the body of an output folder request
type OutputRequest struct {
	BasePath string `json:"basePath"`
}

// ScanFolder returns the scan report for a folder
func (h *ImageHandler) ScanFolder(c *gin.Context) {
	folder := c.Query("path")
	if folder == "" {
		folder = config.GetDefaultFolder()
	}

	report, err := h.scanner.Scan(folder)
	if err != nil {
		log.Printf("Error scanning folder %s: %v", folder, err)
		respondError(c, "failed to scan folder", err)
		return
	}

	response := gin.H{"report": report}

	includeSummary, _ := strconv.ParseBool(c.DefaultQuery("summary", "false"))
	if includeSummary {
		services.LogSummary(report)
		response["summary"] = services.Summary(report)
	}

	c.JSON(http.StatusOK, response)
}

// EnsureOutput creates the output subfolder beneath a base folder
func (h *ImageHandler) EnsureOutput(c *gin.Context) {
	var req OutputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	if req.BasePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "basePath is required",
		})
		return
	}

	outputPath, err := h.scanner.EnsureOutputSubfolder(req.BasePath)
	if err != nil {
		log.Printf("Error creating output folder under %s: %v", req.BasePath, err)
		respondError(c, "failed to create output folder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path": outputPath,
	})
}

// PreviewImage streams one image file from a folder
func (h *ImageHandler) PreviewImage(c *gin.Context) {
	folder := c.Query("path")
	name := c.Query("name")

	if folder == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "query parameter 'path' is required",
		})
		return
	}

	// Security: only plain file names inside the folder
	if err := services.ValidateFileName(name); err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "path security violation",
			"details": err.Error(),
		})
		return
	}

	if !h.scanner.IsCandidate(name) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "file extension not allowed",
			"details": "only image files can be previewed",
		})
		return
	}

	fullPath := filepath.Join(folder, name)

	fileInfo, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "file not found",
				"name":  name,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "file access error",
			"details": err.Error(),
		})
		return
	}

	if fileInfo.IsDir() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is a directory, not a file",
		})
		return
	}
	if !fileInfo.Mode().IsRegular() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is not a regular file",
		})
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to open file",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	c.Header("Content-Type", services.ContentType(fullPath))
	c.Header("Cache-Control", "no-cache")

	// ServeContent handles range and conditional requests
	http.ServeContent(c.Writer, c.Request, name, fileInfo.ModTime(), file)
}
