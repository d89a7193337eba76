package types

import "time"

// EditMode selects whether edits target one image or the whole folder
type EditMode string

const (
	EditModeSingle EditMode = "single"
	EditModeBulk   EditMode = "bulk"
)

// ResizeDimensions holds the staged target size for a resize
type ResizeDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// EditSettings holds the edit choices a user has staged.
// Nothing in this module applies them to any file.
type EditSettings struct {
	Mode         EditMode          `json:"mode"`
	Resize       *ResizeDimensions `json:"resize,omitempty"`
	TargetFormat string            `json:"targetFormat,omitempty"` // "JPG", "PNG", "GIF", "BMP"
	SourceFolder string            `json:"sourceFolder,omitempty"`
	OutputFolder string            `json:"outputFolder,omitempty"`
}

// Session is the state owned by one presentation-layer client
type Session struct {
	ID        string       `json:"id"`
	Settings  EditSettings `json:"settings"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
