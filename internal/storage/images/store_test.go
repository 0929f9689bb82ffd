package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidewalksafe/pkg/e"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSave_NormalizesAlphaAndCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploaded_images")
	store := New(dir)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128}) // semi-transparent red
	src.SetNRGBA(1, 1, color.NRGBA{G: 255, A: 255})

	path, err := store.Save("hazard.png", encodePNG(t, src))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hazard.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)

	// Every pixel is fully opaque after normalization.
	b := decoded.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := decoded.At(x, y).RGBA()
			assert.Equal(t, uint32(0xffff), a, "pixel (%d,%d) not opaque", x, y)
		}
	}
}

func TestSave_CollisionOverwrites(t *testing.T) {
	store := New(t.TempDir())

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	first, err := store.Save("photo.png", encodePNG(t, img))
	require.NoError(t, err)

	second, err := store.Save("photo.png", encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSave_StripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	path, err := store.Save("../../etc/passwd.png", encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "passwd.png"), path)
}

func TestSave_RejectsNonImage(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Save("notes.txt", []byte("not an image"))
	require.ErrorIs(t, err, e.ErrInvalidInput)
}
