package nbt

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeGolden(t *testing.T) {
	c := NewCompound()
	c.Set("a", int32(1))
	c.Set("s", "hi")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c))

	want := []byte{
		10, 0, 0, // unnamed root compound
		3, 0, 1, 'a', 0, 0, 0, 1, // int "a" = 1
		8, 0, 1, 's', 0, 2, 'h', 'i', // string "s" = "hi"
		0, // end
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestRoundTrip(t *testing.T) {
	c := NewCompound()
	c.Set("byte", int8(-3))
	c.Set("short", int16(-1000))
	c.Set("int", int32(-65536))
	c.Set("long", int64(1<<40))
	c.Set("float", float32(1.5))
	c.Set("double", float64(-2.25))
	c.Set("bytes", []byte{1, 2, 3})
	c.Set("string", "héllo")
	c.Set("ints", []int32{-1, 0, 1})
	c.Set("longs", []int64{-1, 1})
	c.Set("list", &List{kind: kindInt, Elements: []interface{}{int32(7), int32(8)}})
	inner := NewCompound()
	inner.Set("x", int32(9))
	c.Set("compound", inner)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c))

	got, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, c.Len(), got.Len())
	b, ok := got.Byte("byte")
	assert.True(t, ok)
	assert.Equal(t, int8(-3), b)
	i, ok := got.Int("int")
	assert.True(t, ok)
	assert.Equal(t, int32(-65536), i)
	s, ok := got.String("string")
	assert.True(t, ok)
	assert.Equal(t, "héllo", s)
	ints, ok := got.IntArray("ints")
	assert.True(t, ok)
	assert.Equal(t, []int32{-1, 0, 1}, ints)

	v, ok := got.Lookup("list")
	require.True(t, ok)
	assert.Equal(t, []interface{}{int32(7), int32(8)}, v.(*List).Elements)

	v, ok = got.Lookup("compound")
	require.True(t, ok)
	x, ok := v.(*Compound).Int("x")
	assert.True(t, ok)
	assert.Equal(t, int32(9), x)
}

func TestEncodeOrderPreserved(t *testing.T) {
	c := NewCompound()
	c.Set("z", int32(1))
	c.Set("a", int32(2))
	c.Set("z", int32(3)) // replaced in place, not moved

	var one bytes.Buffer
	require.NoError(t, Encode(&one, c))

	want := []byte{
		10, 0, 0,
		3, 0, 1, 'z', 0, 0, 0, 3,
		3, 0, 1, 'a', 0, 0, 0, 2,
		0,
	}
	assert.Equal(t, want, one.Bytes())
}

func TestDecodeGzip(t *testing.T) {
	c := NewCompound()
	c.Set("n", int32(42))

	var raw bytes.Buffer
	require.NoError(t, Encode(&raw, c))

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got, err := Decode(&gz)
	require.NoError(t, err)
	n, ok := got.Int("n")
	assert.True(t, ok)
	assert.Equal(t, int32(42), n)
}

func TestDecodeTruncated(t *testing.T) {
	c := NewCompound()
	c.Set("ints", []int32{1, 2, 3, 4})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c))

	for _, n := range []int{1, 3, 10, buf.Len() - 1} {
		_, err := Decode(bytes.NewReader(buf.Bytes()[:n]))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "truncated to %d bytes", n)
	}
}

func TestDecodeBadRoot(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{3, 0, 1, 'x', 0, 0, 0, 1}))
	var serr SyntaxError
	assert.ErrorAs(t, err, &serr)
}

func TestDecodeNegativeLength(t *testing.T) {
	// int array "i" with length -1
	in := []byte{10, 0, 0, 11, 0, 1, 'i', 0xff, 0xff, 0xff, 0xff, 0}
	_, err := Decode(bytes.NewReader(in))
	var serr SyntaxError
	assert.ErrorAs(t, err, &serr)
}

func TestEncodeUnsupportedType(t *testing.T) {
	c := NewCompound()
	c.Set("bad", uint32(1))
	var buf bytes.Buffer
	err := Encode(&buf, c)
	var serr SyntaxError
	assert.ErrorAs(t, err, &serr)
}
