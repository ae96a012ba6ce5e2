package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageProcessor(t *testing.T) {
	p := NewImageProcessor()

	t.Run("ValidatePNG", func(t *testing.T) {
		ct, err := p.ValidateImage(pngBytes(t, 10, 10))
		require.NoError(t, err)
		assert.Equal(t, "image/png", ct)
	})

	t.Run("RejectNonImage", func(t *testing.T) {
		_, err := p.ValidateImage([]byte("hello"))
		assert.Error(t, err)
	})

	t.Run("RejectTooLarge", func(t *testing.T) {
		small := &ImageProcessor{MaxSize: 10}
		_, err := small.ValidateImage(pngBytes(t, 10, 10))
		assert.ErrorContains(t, err, "exceeds")
	})

	t.Run("ThumbnailFitsBox", func(t *testing.T) {
		out, err := p.Thumbnail(pngBytes(t, 600, 300), ThumbnailSize)
		require.NoError(t, err)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 300, cfg.Width)
		assert.Equal(t, 150, cfg.Height)
	})
}

func TestThumbnailKey(t *testing.T) {
	assert.Equal(t, "w1/thumb_1700-photo.jpg", ThumbnailKey("w1/1700-photo.png"))
	assert.Equal(t, "thumb_plain.jpg", ThumbnailKey("plain"))
}

func TestKeyFromURL(t *testing.T) {
	base := "http://localhost:9000"

	key, ok := KeyFromURL(base, "item-images", PublicURL(base, "item-images", "w1/a.jpg"))
	assert.True(t, ok)
	assert.Equal(t, "w1/a.jpg", key)

	_, ok = KeyFromURL(base, "item-images", "https://shop.example.com/a.jpg")
	assert.False(t, ok)

	_, ok = KeyFromURL(base, "item-images", PublicURL(base, "logos", "u/a.png"))
	assert.False(t, ok)

	key, ok = KeyFromURL(base, "logos", base+"/logos/u/my%20logo.png?x=1")
	assert.True(t, ok)
	assert.Equal(t, "u/my logo.png", key)
}
