package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func run(args ...string) error {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestCommandConvertsDirectory(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(src, "photo.png"), 64, 48)

	err := run(src, dst, "-w", "32", "-h", "32", "-e", "png", "-f", "triangle")
	require.NoError(t, err)

	img, err := imaging.Open(filepath.Join(dst, "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestCommandPipelinedMode(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(src, "photo.png"), 64, 48)

	err := run(src, dst, "-a", "-l", "2", "-e", "png", "-w", "20", "-h", "30")
	require.NoError(t, err)

	img, err := imaging.Open(filepath.Join(dst, "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestCommandRejectsUnknownFilter(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	err := run(src, dst, "-f", "bicubic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse filter type")
}

func TestCommandRequiresSrcAndDst(t *testing.T) {
	require.Error(t, run())
	require.Error(t, run("only-src"))
}

func TestCommandConfigFileProvidesDefaultsFlagsWin(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(src, "photo.png"), 64, 48)

	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"width": 10, "height": 10, "extension": "png"}`), 0o644))

	// --height on the command line beats the file, width comes from it.
	err := run(src, dst, "--config", file, "-h", "40")
	require.NoError(t, err)

	img, err := imaging.Open(filepath.Join(dst, "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}
