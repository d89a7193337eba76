package cmd

import (
	"bulkimage/types"
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, width, height int) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, width, height))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644))
}

func TestPrintReport(t *testing.T) {
	report := &types.ScanReport{
		Records: []types.ImageFileRecord{
			{FileName: "a.png", Format: "PNG", Width: 10, Height: 20, SizeBytes: 1234},
			{FileName: "long-name.jpg", Format: "JPEG", Width: 1920, Height: 1080, SizeBytes: 98765},
		},
	}

	var out bytes.Buffer
	require.NoError(t, PrintReport(&out, report))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"File", "Type", "Dimensions", "Size"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"a.png", "PNG", "10x20", "1234"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"long-name.jpg", "JPEG", "1920x1080", "98765"}, strings.Fields(lines[2]))
}

func TestRunScan(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "one.png", 3, 3)
	writePNG(t, dir, "two.png", 5, 4)

	var out bytes.Buffer
	err := RunScan(ScanOptions{
		Folder:       dir,
		Summary:      true,
		EnsureOutput: true,
	}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "one.png")
	assert.Contains(t, text, "5x4")
	assert.Contains(t, text, "Total images fetched: 2")
	assert.Contains(t, text, "Total size of loaded files: ")
	assert.Contains(t, text, "Output folder: "+filepath.Join(dir, "output"))

	info, err := os.Stat(filepath.Join(dir, "output"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRunScanWithoutSummary(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "one.png", 3, 3)

	var out bytes.Buffer
	require.NoError(t, RunScan(ScanOptions{Folder: dir}, &out))

	assert.NotContains(t, out.String(), "Total images fetched")
	_, err := os.Stat(filepath.Join(dir, "output"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunScanMissingFolder(t *testing.T) {
	var out bytes.Buffer
	err := RunScan(ScanOptions{Folder: filepath.Join(t.TempDir(), "missing")}, &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestExtensions(t *testing.T) {
	t.Setenv("BULKIMAGE_EXTENSIONS", "webp")
	exts := Extensions()
	assert.Contains(t, exts, ".png")
	assert.Contains(t, exts, ".webp")
}
