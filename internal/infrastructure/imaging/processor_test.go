package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessNormalizesToSquareJPEG(t *testing.T) {
	dir := t.TempDir()
	p, err := NewProcessor(dir)
	require.NoError(t, err)

	// Landscape input gets center-cropped.
	name, err := p.Process(encodePNG(t, 1000, 600))
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(name))

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestProcessUpscalesSmallImages(t *testing.T) {
	p, err := NewProcessor(t.TempDir())
	require.NoError(t, err)

	name, err := p.Process(encodePNG(t, 120, 300))
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(p.UploadDir(), name))
	require.NoError(t, err)
	defer f.Close()

	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 800, cfg.Height)
}

func TestProcessRejectsGarbage(t *testing.T) {
	p, err := NewProcessor(t.TempDir())
	require.NoError(t, err)

	_, err = p.Process([]byte("not an image"))
	assert.Error(t, err)
}

func TestProcessUniqueNames(t *testing.T) {
	p, err := NewProcessor(t.TempDir())
	require.NoError(t, err)

	data := encodePNG(t, 900, 900)
	first, err := p.Process(data)
	require.NoError(t, err)
	second, err := p.Process(data)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
