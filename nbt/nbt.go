/*
Package nbt implements the subset of the Minecraft named binary tag format
used by Joy of Painting canvas files.

An NBT document is a single named compound tag containing further named,
typed tags. All integers are big-endian and two's-complement, strings are
length-prefixed UTF-8. The canvas schema only ever writes byte, int, int
array and string tags inside the root compound, but a reader must be able
to step over any tag kind it encounters.
*/
package nbt

// Tag kind identifiers as they appear on the wire.
const (
	kindEnd byte = iota
	kindByte
	kindShort
	kindInt
	kindLong
	kindFloat
	kindDouble
	kindByteArray
	kindString
	kindList
	kindCompound
	kindIntArray
	kindLongArray
)

// SyntaxError reports that the input is not well-formed NBT.
type SyntaxError string

func (e SyntaxError) Error() string { return "nbt: " + string(e) }

// A List holds the payloads of a list tag. Every element shares the same
// kind; an empty list carries kindEnd.
type List struct {
	kind     byte
	Elements []interface{}
}

// A Compound is a set of named tags. Insertion order is preserved so that
// encoding a compound is deterministic.
type Compound struct {
	names  []string
	values map[string]interface{}
}

// NewCompound returns an empty compound.
func NewCompound() *Compound {
	return &Compound{values: make(map[string]interface{})}
}

// Set stores v under name, replacing any existing value in place. Accepted
// value types are int8, int16, int32, int64, float32, float64, []byte,
// string, []int32, []int64, *List and *Compound.
func (c *Compound) Set(name string, v interface{}) {
	if _, ok := c.values[name]; !ok {
		c.names = append(c.names, name)
	}
	c.values[name] = v
}

// Lookup returns the value stored under name.
func (c *Compound) Lookup(name string) (interface{}, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Len returns the number of tags in the compound.
func (c *Compound) Len() int { return len(c.names) }

// Byte returns the byte tag stored under name.
func (c *Compound) Byte(name string) (int8, bool) {
	v, ok := c.values[name].(int8)
	return v, ok
}

// Int returns the int tag stored under name.
func (c *Compound) Int(name string) (int32, bool) {
	v, ok := c.values[name].(int32)
	return v, ok
}

// String returns the string tag stored under name.
func (c *Compound) String(name string) (string, bool) {
	v, ok := c.values[name].(string)
	return v, ok
}

// IntArray returns the int array tag stored under name.
func (c *Compound) IntArray(name string) ([]int32, bool) {
	v, ok := c.values[name].([]int32)
	return v, ok
}
