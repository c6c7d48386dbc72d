package jopaint

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollist/jopaint/canvas"
)

// writeSourceImage writes a 64x64 two-tone png and returns its path.
func writeSourceImage(t *testing.T, dir string) string {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := color.NRGBA{0, 0x80, 0xff, 0xff}
			if x >= 32 {
				c = color.NRGBA{0xff, 0x80, 0, 0xff}
			}
			m.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, "source.png")
	require.NoError(t, imaging.Save(m, path))
	return path
}

func TestImportExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := writeSourceImage(t, dir)
	paintPath := filepath.Join(dir, "out.paint")

	conv := New(nil)
	c, err := conv.ImportImage(src, paintPath, ImportOptions{
		Type:   canvas.Large,
		Title:  "Happy Trees",
		Author: "Bob",
	})
	require.NoError(t, err)
	assert.Len(t, c.Pixels, 1024)
	assert.True(t, strings.HasPrefix(c.Name, canvas.RootUUID+"_"))

	f, err := os.Open(paintPath)
	require.NoError(t, err)
	defer f.Close()
	loaded, err := canvas.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	outPath := filepath.Join(dir, "back.png")
	exported, err := conv.ExportImage(paintPath, outPath, image.Point{})
	require.NoError(t, err)
	assert.Equal(t, c.Pixels, exported.Pixels)

	back, err := imaging.Open(outPath)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), back.Bounds())
}

func TestExportImageExplicitSize(t *testing.T) {
	dir := t.TempDir()
	src := writeSourceImage(t, dir)
	paintPath := filepath.Join(dir, "out.paint")

	conv := New(nil)
	_, err := conv.ImportImage(src, paintPath, ImportOptions{Type: canvas.Large, Title: "t", Author: "a"})
	require.NoError(t, err)

	outPath := filepath.Join(dir, "big.png")
	_, err = conv.ExportImage(paintPath, outPath, image.Pt(128, 128))
	require.NoError(t, err)

	back, err := imaging.Open(outPath)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 128), back.Bounds())
}

func TestExportImageMissingFile(t *testing.T) {
	conv := New(nil)
	_, err := conv.ExportImage(filepath.Join(t.TempDir(), "nope.paint"), "out.png", image.Point{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportImageGrid(t *testing.T) {
	dir := t.TempDir()
	src := writeSourceImage(t, dir)
	paintPath := filepath.Join(dir, "grid.paint")

	conv := New(nil)
	g, err := conv.ImportImageGrid(src, paintPath, 2, 2, ImportOptions{
		Type:   canvas.Large,
		Title:  "Happy Trees",
		Author: "Bob",
	})
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			p := filepath.Join(dir, fmt.Sprintf("grid_%d_%d.paint", col, row))
			f, err := os.Open(p)
			require.NoError(t, err, "cell file %s", p)
			c, err := canvas.Decode(f)
			f.Close()
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("Happy Trees (%d, %d)", col, row), c.Title)
		}
	}
}

func TestSaveGridImages(t *testing.T) {
	dir := t.TempDir()
	src := writeSourceImage(t, dir)

	conv := New(nil)
	g, err := conv.ImportImageGrid(src, filepath.Join(dir, "grid.paint"), 2, 2, ImportOptions{
		Type: canvas.Large, Title: "t", Author: "a",
	})
	require.NoError(t, err)

	paths, err := conv.SaveGridImages(g, filepath.Join(dir, "prev.png"), image.Pt(64, 64))
	require.NoError(t, err)
	require.Len(t, paths, 4)
	for _, p := range paths {
		m, err := imaging.Open(p)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 64, 64), m.Bounds())
	}
}

func TestSaveGridComposite(t *testing.T) {
	dir := t.TempDir()
	src := writeSourceImage(t, dir)

	conv := New(nil)
	g, err := conv.ImportImageGrid(src, filepath.Join(dir, "grid.paint"), 2, 2, ImportOptions{
		Type: canvas.Large, Title: "t", Author: "a",
	})
	require.NoError(t, err)

	p := filepath.Join(dir, "composite.png")
	require.NoError(t, conv.SaveGridComposite(g, p, image.Pt(32, 32)))

	m, err := imaging.Open(p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), m.Bounds())
}

func TestQuantizeColors(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 16), uint8(x * y), 0xff})
		}
	}

	q := quantizeColors(m, 8)
	seen := make(map[color.Color]struct{})
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			seen[q.At(x, y)] = struct{}{}
		}
	}
	assert.LessOrEqual(t, len(seen), 8)
}

func TestFullpath(t *testing.T) {
	t.Setenv("JOPAINT_TEST_DIR", "pictures")

	got, err := fullpath("$JOPAINT_TEST_DIR/a.png")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.True(t, strings.HasSuffix(got, filepath.Join("pictures", "a.png")))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err = fullpath("~/a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "a.png"), got)
}

func TestSplitPath(t *testing.T) {
	dir, base, ext := splitPath("/tmp/pics/tree.paint")
	assert.Equal(t, "/tmp/pics", dir)
	assert.Equal(t, "tree", base)
	assert.Equal(t, ".paint", ext)
}
