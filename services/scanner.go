package services

import (
	"bulkimage/types"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	// Decoders register themselves with image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// OutputFolderName is the subfolder created by EnsureOutputSubfolder
const OutputFolderName = "output"

// DefaultExtensions lists the file extensions treated as scan candidates
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp"}

// ProgressFunc is called after each candidate file has been examined
type ProgressFunc func(done, total int, fileName string)

// FolderScanner interface defines methods for scanning image folders
type FolderScanner interface {
	Scan(folderPath string) (*types.ScanReport, error)
	ScanWithProgress(folderPath string, progress ProgressFunc) (*types.ScanReport, error)
	EnsureOutputSubfolder(basePath string) (string, error)
	IsCandidate(fileName string) bool
}

// folderScanner implements the FolderScanner interface
type folderScanner struct {
	extensions map[string]bool
}

// NewFolderScanner creates a scanner that accepts the given extensions.
// With no extensions it uses DefaultExtensions.
func NewFolderScanner(extensions ...string) FolderScanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	return &folderScanner{extensions: exts}
}

// IsCandidate reports whether a file name carries a recognized image extension
func (s *folderScanner) IsCandidate(fileName string) bool {
	return s.extensions[strings.ToLower(filepath.Ext(fileName))]
}

// Scan lists the image files directly inside folderPath
func (s *folderScanner) Scan(folderPath string) (*types.ScanReport, error) {
	return s.ScanWithProgress(folderPath, nil)
}

// ScanWithProgress scans folderPath and reports progress after every candidate
func (s *folderScanner) ScanWithProgress(folderPath string, progress ProgressFunc) (*types.ScanReport, error) {
	candidates, err := s.listCandidates(folderPath)
	if err != nil {
		return nil, err
	}

	report := &types.ScanReport{
		Folder:    folderPath,
		Records:   make([]types.ImageFileRecord, 0, len(candidates)),
		ScannedAt: time.Now(),
	}

	for i, name := range candidates {
		record, err := readImageRecord(filepath.Join(folderPath, name))
		if err != nil {
			if !errors.Is(err, errSkipEntry) {
				log.Printf("Warning: Could not read image %s: %v", name, err)
				report.Warnings = append(report.Warnings, types.ScanWarning{
					FileName: name,
					Reason:   err.Error(),
				})
			}
		} else {
			report.Records = append(report.Records, *record)
			report.TotalCount++
			report.TotalSizeBytes += record.SizeBytes
		}

		if progress != nil {
			progress(i+1, len(candidates), name)
		}
	}

	return report, nil
}

// listCandidates returns candidate names in directory iteration order
func (s *folderScanner) listCandidates(folderPath string) ([]string, error) {
	info, err := os.Stat(folderPath)
	if err != nil {
		return nil, classifyFolderError(folderPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, folderPath)
	}

	dir, err := os.Open(folderPath)
	if err != nil {
		return nil, classifyFolderError(folderPath, err)
	}
	defer dir.Close()

	// ReadDir on the handle keeps the directory's own order
	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, classifyFolderError(folderPath, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !s.IsCandidate(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// errSkipEntry marks candidates that are dropped without a warning
var errSkipEntry = errors.New("directory entry")

// readImageRecord decodes just the header of one file
func readImageRecord(filePath string) (*types.ImageFileRecord, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	// a symlink may point at a directory
	if info.IsDir() {
		return nil, errSkipEntry
	}
	// opening a FIFO or device would block the scan
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file (mode %s)", info.Mode().Type())
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	config, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("decode image header: invalid dimensions %dx%d", config.Width, config.Height)
	}

	return &types.ImageFileRecord{
		FileName:  info.Name(),
		Format:    strings.ToUpper(format),
		Width:     config.Width,
		Height:    config.Height,
		SizeBytes: info.Size(),
	}, nil
}

// EnsureOutputSubfolder makes sure basePath/output exists and returns its path
func (s *folderScanner) EnsureOutputSubfolder(basePath string) (string, error) {
	outputPath := filepath.Join(basePath, OutputFolderName)

	err := os.Mkdir(outputPath, 0755)
	if err == nil {
		log.Printf("Created output folder %s", outputPath)
		return outputPath, nil
	}

	if errors.Is(err, fs.ErrExist) {
		info, statErr := os.Stat(outputPath)
		if statErr == nil && info.IsDir() {
			return outputPath, nil
		}
		return "", fmt.Errorf("%w: %s exists and is not a directory", ErrDirectoryCreate, outputPath)
	}

	return "", fmt.Errorf("%w: %v", ErrDirectoryCreate, err)
}

// classifyFolderError maps OS errors onto the scanner's sentinel errors
func classifyFolderError(folderPath string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return fmt.Errorf("%w: %s: %v", ErrNotFound, folderPath, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %v", ErrAccessDenied, folderPath, err)
	default:
		// other I/O failures also leave the folder unreadable
		return fmt.Errorf("%w: %s: unreadable: %v", ErrAccessDenied, folderPath, err)
	}
}
