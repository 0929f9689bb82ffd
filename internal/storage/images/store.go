package images

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif" // registered for decode only

	"sidewalksafe/pkg/e"
)

// Store saves uploaded hazard photos. Filenames are taken verbatim from the
// upload (basename only, which also blocks path traversal); a name collision
// overwrites the previous file.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save normalizes the image to 3-channel color and writes it under the
// original upload name. The image directory is created on first use.
// Returns the stored path as persisted in the report table.
func (s *Store) Save(name string, data []byte) (string, error) {
	const op = "images.Save"

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%s: decode %q: %w", op, name, e.ErrInvalidInput)
	}

	// Flatten any alpha channel over black, matching an RGB conversion.
	bounds := src.Bounds()
	rgb := image.NewNRGBA(bounds)
	draw.Draw(rgb, bounds, image.Black, image.Point{}, draw.Src)
	draw.Draw(rgb, bounds, src, bounds.Min, draw.Over)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", e.Wrap(op, err)
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return "", e.Wrap(op, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		err = png.Encode(f, rgb)
	default:
		err = jpeg.Encode(f, rgb, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return path, nil
}
