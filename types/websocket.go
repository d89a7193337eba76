package types

import "time"

// ScanMessage represents a WebSocket update for a watched folder
type ScanMessage struct {
	Folder    string      `json:"folder"`
	Type      string      `json:"type"`              // "report", "error"
	Report    *ScanReport `json:"report,omitempty"`  // set when Type is "report"
	Message   string      `json:"message,omitempty"` // status or error messages
	Timestamp time.Time   `json:"timestamp"`
}
