package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenekit/internal/engine/mesh"
)

func TestBoundsWireframe(t *testing.T) {
	b := mesh.Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{1, 2, 3}}
	v := BoundsWireframe(b, mesh.ColorYellow, 0.5)
	require.Len(t, v, 24)

	for _, vert := range v {
		assert.Equal(t, mesh.ColorYellow.RGB(), vert.Color)
		for axis := 0; axis < 3; axis++ {
			p := vert.Position[axis]
			assert.True(t, p == b.Min[axis]-0.5 || p == b.Max[axis]+0.5, "vertex %v off the padded box", vert.Position)
		}
	}
	// Every edge differs along exactly one axis.
	for i := 0; i < len(v); i += 2 {
		diff := 0
		for axis := 0; axis < 3; axis++ {
			if v[i].Position[axis] != v[i+1].Position[axis] {
				diff++
			}
		}
		assert.Equal(t, 1, diff, "edge %d", i/2)
	}
}

func TestBoundsWireframeEmpty(t *testing.T) {
	assert.Nil(t, BoundsWireframe(mesh.EmptyBounds(), mesh.ColorWhite, 0))
}

func TestGroundGrid(t *testing.T) {
	v := GroundGrid(2, 1, -0.01, mesh.ColorGray)
	// 5 lines along each axis, 2 vertices each.
	require.Len(t, v, 20)
	for _, vert := range v {
		assert.Equal(t, float32(-0.01), vert.Position[1])
		assert.LessOrEqual(t, vert.Position[0], float32(2))
		assert.GreaterOrEqual(t, vert.Position[2], float32(-2))
	}
	assert.Nil(t, GroundGrid(2, 0, 0, mesh.ColorGray))
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "shot")
	sc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue (OpenGL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shot_2024-03-01_12-00-00.000.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 1, 2), img.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{0, 0, 255, 255}), color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{255, 0, 0, 255}), color.RGBAModel.Convert(img.At(0, 1)))
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "shot")
	_, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2)
	assert.Error(t, err)
}

func TestCaptureCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shots")
	sc := NewScreenshotCapture(dir, "x")
	path, err := sc.CaptureFromImage(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFlipRows(t *testing.T) {
	// 2x2, rows bottom-up: bottom row 1,2 then top row 3,4 (first byte of each pixel).
	pixels := []byte{
		1, 0, 0, 255, 2, 0, 0, 255,
		3, 0, 0, 255, 4, 0, 0, 255,
	}
	img, err := FlipRows(pixels, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), img.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(4), img.RGBAAt(1, 0).R)
	assert.Equal(t, uint8(1), img.RGBAAt(0, 1).R)
	assert.Equal(t, uint8(2), img.RGBAAt(1, 1).R)
}

func TestGenerateFilenameWithoutDir(t *testing.T) {
	sc := NewScreenshotCapture("", "frame")
	sc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 6e6, time.UTC) }
	assert.Equal(t, "frame_2025-01-02_03-04-05.006.png", sc.GenerateFilename())
}
