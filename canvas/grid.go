package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// RootUUID prefixes the name of every canvas written by this package.
	RootUUID = "d1ebe29f-f4e9-4572-83cd-8b2cdbfc2420"

	// maxRandomID bounds the random component of a painting root id,
	// inclusive.
	maxRandomID = 10000
)

// ErrDuplicateNames reports that two or more canvases in a grid share a
// name. The game keys canvases by name, so such a grid will not import
// cleanly.
var ErrDuplicateNames = errors.New("canvas: duplicate canvas names in grid")

// Identity produces the name identifiers stamped on new canvases. The zero
// value uses the real clock, a fresh random UUID per call and the shared
// math/rand source; tests substitute deterministic fields.
type Identity struct {
	NewUUID func() uuid.UUID
	Rand    *rand.Rand
	Now     func() time.Time
}

func (id *Identity) uuid() uuid.UUID {
	if id.NewUUID != nil {
		return id.NewUUID()
	}
	return uuid.New()
}

func (id *Identity) intn(n int) int {
	if id.Rand != nil {
		return id.Rand.Intn(n)
	}
	return rand.Intn(n)
}

func (id *Identity) now() time.Time {
	if id.Now != nil {
		return id.Now()
	}
	return time.Now()
}

// SingleName returns the default identity for a standalone canvas: the
// root UUID joined with the current unix timestamp.
func (id *Identity) SingleName() string {
	return Name(id.now().Unix())
}

// PaintingRoot derives the base painting id for a grid. The title/author
// sum ties the id to the picture, the UUID and random components keep ids
// from independently generated grids apart; cells then take strictly
// increasing offsets from the root, so names within one grid never collide.
func (id *Identity) PaintingRoot(title, author string) int64 {
	return asciiSum(title+" "+author) + asciiSum(id.uuid().String()) + int64(id.intn(maxRandomID+1))
}

// Name formats a painting id as a canvas name.
func Name(paintingID int64) string {
	return fmt.Sprintf("%s_%d", RootUUID, paintingID)
}

// asciiSum is the sum of the Unicode code points of s.
func asciiSum(s string) int64 {
	var sum int64
	for _, r := range s {
		sum += int64(r)
	}
	return sum
}

// Grid is a rectangular arrangement of canvases forming one composite
// picture at a higher resolution than a single canvas allows.
type Grid struct {
	Author string
	Title  string
	Cells  [][]*Canvas // indexed [row][col]
}

// GridFromImage decomposes m into a cols by rows grid of canvases of type
// t. The source is first normalized to power-of-two dimensions, then split
// into equal tiles by integer division; each tile becomes one canvas with
// title "<title> (<col>, <row>)" and a name offset row-major from a shared
// painting root id. A decomposition that would produce an empty tile
// yields a DimensionError.
func GridFromImage(m image.Image, cols, rows int, t Type, title, author string, id *Identity) (*Grid, error) {
	if id == nil {
		id = &Identity{}
	}

	norm := NormalizePowerOfTwo(m)
	b := norm.Bounds()
	if cols < 1 || rows < 1 || b.Dx()/cols < 1 || b.Dy()/rows < 1 {
		return nil, &DimensionError{Extent: image.Pt(b.Dx(), b.Dy()), Cells: image.Pt(cols, rows)}
	}
	tile := image.Pt(b.Dx()/cols, b.Dy()/rows)
	extent := image.Pt(tile.X*cols, tile.Y*rows)
	origins := GridIndices(extent, tile, true)

	root := id.PaintingRoot(title, author)
	cells := make([][]*Canvas, rows)
	index := 0
	for row := 0; row < rows; row++ {
		cells[row] = make([]*Canvas, cols)
		for col := 0; col < cols; col++ {
			origin := origins[row*cols+col]
			part := imaging.Crop(norm, image.Rectangle{Min: origin, Max: origin.Add(tile)})
			cell, err := FromImage(part, t,
				fmt.Sprintf("%s (%d, %d)", title, col, row), author, Name(root+int64(index)))
			if err != nil {
				return nil, err
			}
			cells[row][col] = cell
			index++
		}
	}

	return &Grid{Author: author, Title: title, Cells: cells}, nil
}

// Size returns the grid dimensions as (cols, rows).
func (g *Grid) Size() (cols, rows int) {
	rows = len(g.Cells)
	if rows > 0 {
		cols = len(g.Cells[0])
	}
	return cols, rows
}

// Names returns the cell names in row-major order.
func (g *Grid) Names() []string {
	var names []string
	for _, row := range g.Cells {
		for _, c := range row {
			names = append(names, c.Name)
		}
	}
	return names
}

// Validate reports whether every cell name in the grid is distinct. The
// check is advisory: a grid with duplicate names is still usable here,
// callers decide how loudly to complain.
func (g *Grid) Validate() error {
	seen := make(map[string]struct{})
	for _, name := range g.Names() {
		if _, ok := seen[name]; ok {
			return ErrDuplicateNames
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Composite stitches every cell, rendered at the given per-cell size, into
// one image of cell.X*cols by cell.Y*rows pixels. A zero cell size uses
// the native canvas size.
func (g *Grid) Composite(cell image.Point) image.Image {
	cols, rows := g.Size()
	if cols == 0 || rows == 0 {
		return nil
	}
	if cell == (image.Point{}) {
		cell = g.Cells[0][0].Type.Size()
	}
	out := imaging.New(cell.X*cols, cell.Y*rows, color.NRGBA{A: 0xff})
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			out = imaging.Paste(out, g.Cells[row][col].Image(cell), image.Pt(col*cell.X, row*cell.Y))
		}
	}
	return out
}
