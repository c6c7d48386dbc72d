package nbt

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r   io.Reader
	tmp [8]byte
}

func (d *decoder) readByte() (byte, error) {
	if err := readFull(d.r, d.tmp[:1]); err != nil {
		return 0, err
	}
	return d.tmp[0], nil
}

func (d *decoder) readInt16() (int16, error) {
	if err := readFull(d.r, d.tmp[:2]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(d.tmp[:2])), nil
}

func (d *decoder) readInt32() (int32, error) {
	if err := readFull(d.r, d.tmp[:4]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(d.tmp[:4])), nil
}

func (d *decoder) readInt64() (int64, error) {
	if err := readFull(d.r, d.tmp[:8]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(d.tmp[:8])), nil
}

func (d *decoder) readString() (string, error) {
	n, err := d.readInt16()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", SyntaxError("negative string length")
	}
	b := make([]byte, n)
	if err := readFull(d.r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

// payload reads the payload of a tag of the given kind.
func (d *decoder) payload(kind byte) (interface{}, error) {
	switch kind {
	case kindByte:
		b, err := d.readByte()
		return int8(b), err
	case kindShort:
		return d.readInt16()
	case kindInt:
		return d.readInt32()
	case kindLong:
		return d.readInt64()
	case kindFloat:
		v, err := d.readInt32()
		return math.Float32frombits(uint32(v)), err
	case kindDouble:
		v, err := d.readInt64()
		return math.Float64frombits(uint64(v)), err
	case kindByteArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, SyntaxError("negative array length")
		}
		b := make([]byte, n)
		if err := readFull(d.r, b); err != nil {
			return nil, err
		}
		return b, nil
	case kindString:
		return d.readString()
	case kindList:
		return d.list()
	case kindCompound:
		return d.compound()
	case kindIntArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, SyntaxError("negative array length")
		}
		a := make([]int32, n)
		for i := range a {
			if a[i], err = d.readInt32(); err != nil {
				return nil, err
			}
		}
		return a, nil
	case kindLongArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, SyntaxError("negative array length")
		}
		a := make([]int64, n)
		for i := range a {
			if a[i], err = d.readInt64(); err != nil {
				return nil, err
			}
		}
		return a, nil
	}
	return nil, SyntaxError(fmt.Sprintf("unknown tag kind %d", kind))
}

func (d *decoder) list() (*List, error) {
	kind, err := d.readByte()
	if err != nil {
		return nil, err
	}
	n, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, SyntaxError("negative list length")
	}
	if kind == kindEnd && n > 0 {
		return nil, SyntaxError("non-empty list of end tags")
	}
	l := &List{kind: kind}
	for i := int32(0); i < n; i++ {
		v, err := d.payload(kind)
		if err != nil {
			return nil, err
		}
		l.Elements = append(l.Elements, v)
	}
	return l, nil
}

func (d *decoder) compound() (*Compound, error) {
	c := NewCompound()
	for {
		kind, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if kind == kindEnd {
			return c, nil
		}
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		v, err := d.payload(kind)
		if err != nil {
			return nil, err
		}
		c.Set(name, v)
	}
}

// Decode reads an NBT document from r and returns its root compound.
// Gzip-compressed input, as written by the game itself, is detected by its
// magic bytes and unwrapped transparently.
func Decode(r io.Reader) (*Compound, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return decodeRoot(&decoder{r: zr})
	}
	return decodeRoot(&decoder{r: br})
}

func decodeRoot(d *decoder) (*Compound, error) {
	kind, err := d.readByte()
	if err != nil {
		return nil, err
	}
	if kind != kindCompound {
		return nil, SyntaxError(fmt.Sprintf("root tag kind %d, want compound", kind))
	}
	// The root tag carries a name, conventionally empty. It is read and
	// discarded; nothing in the canvas schema depends on it.
	if _, err := d.readString(); err != nil {
		return nil, err
	}
	return d.compound()
}
