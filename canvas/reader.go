package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/hollist/jopaint/nbt"
)

// FormatError reports that the data is not a valid .paint canvas.
type FormatError string

func (e FormatError) Error() string { return "canvas: invalid format: " + string(e) }

// Decode reads a canvas from r. Unknown extra fields in the compound are
// skipped; a missing required field, an unknown canvas type ordinal or a
// pixel array of the wrong length yields a FormatError. The generation and
// version constants are write-only and not read back.
func Decode(r io.Reader) (*Canvas, error) {
	root, err := nbt.Decode(r)
	if err != nil {
		var serr nbt.SyntaxError
		if errors.As(err, &serr) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, FormatError(err.Error())
		}
		return nil, err
	}

	ct, ok := root.Byte(fieldType)
	if !ok {
		return nil, FormatError("missing " + fieldType + " field")
	}
	t := Type(ct)
	if !t.valid() {
		return nil, FormatError(fmt.Sprintf("unknown canvas type ordinal %d", ct))
	}

	raw, ok := root.IntArray(fieldPixels)
	if !ok {
		return nil, FormatError("missing " + fieldPixels + " field")
	}
	size := t.Size()
	if len(raw) != size.X*size.Y {
		return nil, FormatError(fmt.Sprintf("%d pixels, want %d for a %s canvas",
			len(raw), size.X*size.Y, t))
	}

	author, ok := root.String(fieldAuthor)
	if !ok {
		return nil, FormatError("missing " + fieldAuthor + " field")
	}
	name, ok := root.String(fieldName)
	if !ok {
		return nil, FormatError("missing " + fieldName + " field")
	}
	title, ok := root.String(fieldTitle)
	if !ok {
		return nil, FormatError("missing " + fieldTitle + " field")
	}

	pixels := make([]color.RGBA, len(raw))
	for i, v := range raw {
		pixels[i] = unpackColor(v)
	}

	return &Canvas{
		Type:   t,
		Author: author,
		Title:  title,
		Name:   name,
		Pixels: pixels,
	}, nil
}
