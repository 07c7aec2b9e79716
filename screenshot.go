package shapeshifter

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot queues a labeled screenshot. The queue is handed to the
// screenshot function (see SetScreenshotFunc) by FlushScreenshots, which
// backends call once the frame has been drawn. Safe to call from Update.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// SetScreenshotFunc installs the backend hook that captures one labeled
// screenshot. Without one, queued screenshots are dropped.
func (s *Scene) SetScreenshotFunc(fn func(label string)) {
	s.screenshotFn = fn
}

// FlushScreenshots passes every queued label to the screenshot function and
// empties the queue.
func (s *Scene) FlushScreenshots() {
	if len(s.screenshotQueue) == 0 {
		return
	}
	if s.screenshotFn != nil {
		for _, label := range s.screenshotQueue {
			s.screenshotFn(label)
		}
	}
	s.screenshotQueue = s.screenshotQueue[:0]
}

// SaveScreenshot writes img as a PNG under dir with a timestamped file name
// derived from label, creating dir if needed. Returns the written path.
func SaveScreenshot(dir, label string, img image.Image, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", now.Format("20060102_150405"), sanitizeLabel(label)))
	if err := writePNG(path, img); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
