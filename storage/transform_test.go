package storage

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) *bytes.Reader {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return bytes.NewReader(buf.Bytes())
}

func TestNormalizeScalesDownToMaxWidth(t *testing.T) {
	img, err := Normalize(encodePNG(t, 2400, 1200), ArtworkTransform())
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, MaxArtworkWidth, bounds.Dx())
	assert.Equal(t, 600, bounds.Dy())
}

func TestNormalizeNeverUpscales(t *testing.T) {
	img, err := Normalize(encodePNG(t, 800, 600), ArtworkTransform())
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 800, bounds.Dx())
	assert.Equal(t, 600, bounds.Dy())
}

func TestNormalizeCropsToSquare(t *testing.T) {
	img, err := Normalize(encodePNG(t, 1000, 500), ProfileTransform())
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, ProfileSize, bounds.Dx())
	assert.Equal(t, ProfileSize, bounds.Dy())
}

func TestNormalizeRejectsNonImage(t *testing.T) {
	_, err := Normalize(strings.NewReader("not an image"), ArtworkTransform())
	assert.Error(t, err)
}
