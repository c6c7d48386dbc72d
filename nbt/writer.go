package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

type encoder struct {
	w   io.Writer
	tmp [8]byte
}

func (e *encoder) writeByte(b byte) error {
	e.tmp[0] = b
	_, err := e.w.Write(e.tmp[:1])
	return err
}

func (e *encoder) writeInt16(v int16) error {
	binary.BigEndian.PutUint16(e.tmp[:2], uint16(v))
	_, err := e.w.Write(e.tmp[:2])
	return err
}

func (e *encoder) writeInt32(v int32) error {
	binary.BigEndian.PutUint32(e.tmp[:4], uint32(v))
	_, err := e.w.Write(e.tmp[:4])
	return err
}

func (e *encoder) writeInt64(v int64) error {
	binary.BigEndian.PutUint64(e.tmp[:8], uint64(v))
	_, err := e.w.Write(e.tmp[:8])
	return err
}

func (e *encoder) writeString(s string) error {
	if len(s) > math.MaxInt16 {
		return SyntaxError("string too long")
	}
	if err := e.writeInt16(int16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

// kindOf maps a stored value to its wire tag kind.
func kindOf(v interface{}) (byte, error) {
	switch v.(type) {
	case int8:
		return kindByte, nil
	case int16:
		return kindShort, nil
	case int32:
		return kindInt, nil
	case int64:
		return kindLong, nil
	case float32:
		return kindFloat, nil
	case float64:
		return kindDouble, nil
	case []byte:
		return kindByteArray, nil
	case string:
		return kindString, nil
	case *List:
		return kindList, nil
	case *Compound:
		return kindCompound, nil
	case []int32:
		return kindIntArray, nil
	case []int64:
		return kindLongArray, nil
	}
	return kindEnd, SyntaxError(fmt.Sprintf("unsupported value type %T", v))
}

func (e *encoder) payload(v interface{}) error {
	switch v := v.(type) {
	case int8:
		return e.writeByte(byte(v))
	case int16:
		return e.writeInt16(v)
	case int32:
		return e.writeInt32(v)
	case int64:
		return e.writeInt64(v)
	case float32:
		return e.writeInt32(int32(math.Float32bits(v)))
	case float64:
		return e.writeInt64(int64(math.Float64bits(v)))
	case []byte:
		if err := e.writeInt32(int32(len(v))); err != nil {
			return err
		}
		_, err := e.w.Write(v)
		return err
	case string:
		return e.writeString(v)
	case *List:
		if err := e.writeByte(v.kind); err != nil {
			return err
		}
		if err := e.writeInt32(int32(len(v.Elements))); err != nil {
			return err
		}
		for _, el := range v.Elements {
			if err := e.payload(el); err != nil {
				return err
			}
		}
		return nil
	case *Compound:
		return e.compound(v)
	case []int32:
		if err := e.writeInt32(int32(len(v))); err != nil {
			return err
		}
		for _, n := range v {
			if err := e.writeInt32(n); err != nil {
				return err
			}
		}
		return nil
	case []int64:
		if err := e.writeInt32(int32(len(v))); err != nil {
			return err
		}
		for _, n := range v {
			if err := e.writeInt64(n); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := kindOf(v)
	return err
}

func (e *encoder) compound(c *Compound) error {
	for _, name := range c.names {
		v := c.values[name]
		kind, err := kindOf(v)
		if err != nil {
			return err
		}
		if err := e.writeByte(kind); err != nil {
			return err
		}
		if err := e.writeString(name); err != nil {
			return err
		}
		if err := e.payload(v); err != nil {
			return err
		}
	}
	return e.writeByte(kindEnd)
}

// Encode writes root to w as an uncompressed NBT document with an unnamed
// root compound.
func Encode(w io.Writer, root *Compound) error {
	e := encoder{w: w}
	if err := e.writeByte(kindCompound); err != nil {
		return err
	}
	if err := e.writeString(""); err != nil {
		return err
	}
	return e.compound(root)
}
