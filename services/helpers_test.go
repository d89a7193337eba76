package services

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// testImage returns a small solid image of the given size
func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	return img
}

// encodeImage encodes a test image in one of "png", "jpeg", "gif", "bmp"
func encodeImage(t *testing.T, format string, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := testImage(width, height)

	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	default:
		t.Fatalf("unknown test format %s", format)
	}
	require.NoError(t, err)

	return buf.Bytes()
}

// writeFile creates a file inside dir and returns its size
func writeFile(t *testing.T, dir, name string, content []byte) int64 {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return int64(len(content))
}
