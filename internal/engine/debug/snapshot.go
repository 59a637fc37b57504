package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Snapshots writes timestamped PNG files into one directory.
type Snapshots struct {
	Dir    string
	Prefix string
	now    func() time.Time
}

// NewSnapshots creates a writer for dir; an empty dir means the working directory.
func NewSnapshots(dir, prefix string) *Snapshots {
	return &Snapshots{Dir: dir, Prefix: prefix, now: time.Now}
}

// Filename returns the path the next snapshot would be written to.
func (s *Snapshots) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.Prefix, s.now().Format("2006-01-02_15-04-05"))
	return filepath.Join(s.Dir, name)
}

// Save encodes img as PNG and returns the file path.
func (s *Snapshots) Save(img image.Image) (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return "", fmt.Errorf("creating snapshot dir: %w", err)
		}
	}
	path := s.Filename()
	if err := WritePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// SaveFramebuffer saves bottom-up RGBA rows as read back from GL.
func (s *Snapshots) SaveFramebuffer(pixels []byte, width, height int) (string, error) {
	img, err := FlipRGBA(pixels, width, height)
	if err != nil {
		return "", err
	}
	return s.Save(img)
}

// FlipRGBA copies bottom-up RGBA rows into a top-down image.
func FlipRGBA(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := range height {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return f.Close()
}
