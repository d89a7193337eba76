package types

import (
	"fmt"
	"time"
)

// ImageFileRecord represents one decoded image file in a scanned folder
type ImageFileRecord struct {
	FileName  string `json:"fileName"`
	Format    string `json:"format"` // "PNG", "JPEG", "GIF", "BMP", ...
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Dimensions returns the record's size in the "WxH" form shown in listings
func (r ImageFileRecord) Dimensions() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ScanWarning describes a candidate file that was left out of a report
type ScanWarning struct {
	FileName string `json:"fileName"`
	Reason   string `json:"reason"`
}

// ScanReport is the result of a single folder scan.
// Records are in directory iteration order, which is not sorted.
type ScanReport struct {
	Folder         string            `json:"folder"`
	Records        []ImageFileRecord `json:"records"`
	TotalCount     int               `json:"totalCount"`
	TotalSizeBytes int64             `json:"totalSizeBytes"`
	Warnings       []ScanWarning     `json:"warnings,omitempty"`
	ScannedAt      time.Time         `json:"scannedAt"`
}
