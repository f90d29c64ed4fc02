// Package capture writes rendered frames to PNG files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Capturer names and writes screenshots.
type Capturer struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// New creates a capturer writing to outputDir. An empty dir means the
// working directory.
func New(outputDir, prefix string) *Capturer {
	return &Capturer{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Filename returns the path for a screenshot taken now. A non-empty tag,
// such as the zoom label, is appended to the name.
func (c *Capturer) Filename(tag string) string {
	name := c.prefix + "_" + c.now().Format("2006-01-02_15-04-05.000")
	if tag != "" {
		name += "_" + sanitize(tag)
	}
	name += ".png"
	if c.outputDir != "" {
		name = filepath.Join(c.outputDir, name)
	}
	return name
}

// Save writes bottom-up RGBA pixels, as read back from OpenGL, to a PNG and
// returns its path.
func (c *Capturer) Save(pixels []byte, width, height int, tag string) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}

	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename(tag)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// FromPixels builds an image from bottom-up RGBA rows.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

func sanitize(tag string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, tag)
}
