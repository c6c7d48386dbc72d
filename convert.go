package jopaint

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/hollist/jopaint/canvas"
)

// ImportOptions control how a raster image is reduced to canvases.
type ImportOptions struct {
	Type   canvas.Type
	Title  string
	Author string

	// MaxColors, when positive, quantizes the source down to at most this
	// many colors with a median cut palette before sampling, for a more
	// hand-painted look.
	MaxColors int
}

// ExportImage converts a .paint file to a standard raster image, the
// format chosen by the output extension. A zero size keeps the native
// canvas size.
func (cv *Converter) ExportImage(inPath, outPath string, size image.Point) (*canvas.Canvas, error) {
	inPath, err := fullpath(inPath)
	if err != nil {
		return nil, err
	}
	outPath, err = fullpath(outPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(inPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := canvas.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(inPath), err)
	}

	if err := imaging.Save(c.Image(size), outPath); err != nil {
		return nil, err
	}
	cv.logger.Printf("exported %s to %s", filepath.Base(inPath), outPath)

	return c, nil
}

// ImportImage converts a raster image file to a single .paint canvas.
func (cv *Converter) ImportImage(inPath, outPath string, o ImportOptions) (*canvas.Canvas, error) {
	inPath, err := fullpath(inPath)
	if err != nil {
		return nil, err
	}
	outPath, err = fullpath(outPath)
	if err != nil {
		return nil, err
	}

	m, err := loadImage(inPath, o)
	if err != nil {
		return nil, err
	}

	c, err := canvas.FromImage(m, o.Type, o.Title, o.Author, cv.ids.SingleName())
	if err != nil {
		return nil, err
	}

	if err := writeCanvas(c, outPath); err != nil {
		return nil, err
	}
	cv.logger.Printf("imported %s to %s", filepath.Base(inPath), outPath)

	return c, nil
}

// ImportImageGrid converts a raster image file to a cols by rows grid of
// .paint canvases, one file per cell named <base>_<col>_<row>.paint.
func (cv *Converter) ImportImageGrid(inPath, outPath string, cols, rows int, o ImportOptions) (*canvas.Grid, error) {
	inPath, err := fullpath(inPath)
	if err != nil {
		return nil, err
	}
	outPath, err = fullpath(outPath)
	if err != nil {
		return nil, err
	}

	m, err := loadImage(inPath, o)
	if err != nil {
		return nil, err
	}

	g, err := canvas.GridFromImage(m, cols, rows, o.Type, o.Title, o.Author, cv.ids)
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		cv.logger.Printf("warning: %v; the game will not import this grid cleanly", err)
	}

	dir, base, _ := splitPath(outPath)
	for row, cells := range g.Cells {
		for col, c := range cells {
			p := filepath.Join(dir, fmt.Sprintf("%s_%d_%d.paint", base, col, row))
			if err := writeCanvas(c, p); err != nil {
				return nil, err
			}
			cv.logger.Printf("imported %s cell (%d, %d) to %s", filepath.Base(inPath), col, row, p)
		}
	}

	return g, nil
}

// SavePreview renders c at the given size and writes it to path.
func (cv *Converter) SavePreview(c *canvas.Canvas, path string, size image.Point) error {
	path, err := fullpath(path)
	if err != nil {
		return err
	}
	if err := imaging.Save(c.Image(size), path); err != nil {
		return err
	}
	cv.logger.Printf("exported preview to %s", path)
	return nil
}

// SaveGridComposite stitches all cells of g, each rendered at the given
// per-cell size, into one image and writes it to path.
func (cv *Converter) SaveGridComposite(g *canvas.Grid, path string, cell image.Point) error {
	path, err := fullpath(path)
	if err != nil {
		return err
	}
	if err := imaging.Save(g.Composite(cell), path); err != nil {
		return err
	}
	cv.logger.Printf("exported composite preview to %s", path)
	return nil
}

// SaveGridImages writes one rendered image per cell of g, each named
// <base>_<col>_<row>.<ext>, and returns the written paths.
func (cv *Converter) SaveGridImages(g *canvas.Grid, path string, cell image.Point) ([]string, error) {
	path, err := fullpath(path)
	if err != nil {
		return nil, err
	}
	dir, base, ext := splitPath(path)

	var paths []string
	for row, cells := range g.Cells {
		for col, c := range cells {
			p := filepath.Join(dir, fmt.Sprintf("%s_%d_%d%s", base, col, row, ext))
			if err := imaging.Save(c.Image(cell), p); err != nil {
				return nil, err
			}
			cv.logger.Printf("exported cell preview (%d, %d) to %s", col, row, p)
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func loadImage(path string, o ImportOptions) (image.Image, error) {
	m, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	if o.MaxColors > 0 {
		m = quantizeColors(m, o.MaxColors)
	}
	return m, nil
}

// quantizeColors reduces m to at most n colors with a median cut palette.
func quantizeColors(m image.Image, n int) image.Image {
	q := quantize.MedianCutQuantizer{}
	b := m.Bounds()
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

func writeCanvas(c *canvas.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := canvas.Encode(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
