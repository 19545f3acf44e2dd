package pool

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// writeImage saves a solid w x h image at dir/name, encoded by extension
func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 90, A: 255})
	require.NoError(t, imaging.Save(img, path))
	return path
}

// writeCorrupt writes junk bytes under an image file name
func writeCorrupt(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("definitely not an image"), 0644))
	return path
}

// tinyImage is a 1x1 image used by fake preparers
var tinyImage image.Image = image.NewNRGBA(image.Rect(0, 0, 1, 1))
