package media

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestNewFramebufferRejectsEmpty(t *testing.T) {
	_, err := NewFramebuffer(0, 10)
	assert.Error(t, err)
}

func TestSetPixel(t *testing.T) {
	fb, err := NewFramebuffer(8, 4)
	require.NoError(t, err)

	fb.SetPixel(1, 2, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	fb.SetPixel(3, 3, color.RGBA{A: 0xFF})
	fb.SetPixel(-1, 0, color.RGBA{R: 1})
	fb.SetPixel(8, 0, color.RGBA{R: 1})

	assert.True(t, fb.Lit(1, 2))
	assert.False(t, fb.Lit(3, 3))
	assert.False(t, fb.Lit(8, 0))

	fb.SetPixel(1, 2, color.RGBA{})
	assert.False(t, fb.Lit(1, 2))
}

func TestWriteBMP(t *testing.T) {
	fb, err := NewFramebuffer(DefaultWidth, DefaultHeight)
	require.NoError(t, err)
	fb.SetPixel(5, 7, color.RGBA{G: 0x80, A: 0xFF})

	var buf bytes.Buffer
	require.NoError(t, fb.WriteBMP(&buf))

	img, err := bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, img.Bounds().Dx())
	assert.Equal(t, DefaultHeight, img.Bounds().Dy())

	r, _, _, _ := img.At(5, 7).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	r, _, _, _ = img.At(6, 7).RGBA()
	assert.Zero(t, r)
}
