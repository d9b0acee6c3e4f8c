package der

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks. All decode failures are
// recoverable input errors, never panics or out-of-bounds reads.
var (
	// ErrTruncated is returned when the buffer ends inside an element.
	ErrTruncated = errors.New("der: truncated input")

	// ErrUnknownTag is returned for an identifier octet outside the
	// supported tag set.
	ErrUnknownTag = errors.New("der: unknown tag")

	// ErrBadLength is returned for a malformed or non-minimal length field.
	ErrBadLength = errors.New("der: invalid length encoding")

	// ErrTrailingData is returned by Decode when bytes remain after the
	// first complete element.
	ErrTrailingData = errors.New("der: trailing data after element")
)

// cursor walks a byte buffer without ever indexing past its end.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) remaining() int { return len(c.buf) - c.off }

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || n > c.remaining() {
		return nil, ErrTruncated
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) byte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Decode parses a single DER element spanning the whole buffer.
func Decode(data []byte) (*Node, error) {
	c := &cursor{buf: data}
	n, err := c.node()
	if err != nil {
		return nil, err
	}
	if c.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, c.remaining())
	}
	return n, nil
}

func (c *cursor) node() (*Node, error) {
	tag, err := c.byte()
	if err != nil {
		return nil, err
	}
	kind := Kind(tag)
	switch kind {
	case KindSequence, KindInteger, KindObjectIdentifier, KindNull,
		KindBitString, KindOctetString:
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, tag)
	}

	length, err := c.length()
	if err != nil {
		return nil, err
	}
	value, err := c.take(length)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindSequence:
		children, err := decodeChildren(value)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: kind, Children: children}, nil
	case KindNull:
		if length != 0 {
			return nil, fmt.Errorf("%w: NULL with nonzero length", ErrBadLength)
		}
		return &Node{Kind: kind}, nil
	case KindBitString:
		// The first content octet counts unused trailing bits.
		if length < 1 {
			return nil, fmt.Errorf("%w: empty BIT STRING", ErrBadLength)
		}
		return &Node{Kind: kind, UnusedBits: value[0], Value: cloneBytes(value[1:])}, nil
	}
	return &Node{Kind: kind, Value: cloneBytes(value)}, nil
}

// decodeChildren parses nodes from a SEQUENCE value region until it is
// exhausted.
func decodeChildren(region []byte) ([]*Node, error) {
	c := &cursor{buf: region}
	var children []*Node
	for c.remaining() > 0 {
		child, err := c.node()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// length decodes a short (< 0x80) or long form length field. Long form
// lengths must use the minimal number of big-endian bytes.
func (c *cursor) length() (int, error) {
	first, err := c.byte()
	if err != nil {
		return 0, err
	}
	if first < 0x80 {
		return int(first), nil
	}
	n := int(first - 0x80)
	if n == 0 {
		return 0, fmt.Errorf("%w: indefinite length", ErrBadLength)
	}
	if n > 4 {
		return 0, fmt.Errorf("%w: %d length bytes", ErrBadLength, n)
	}
	b, err := c.take(n)
	if err != nil {
		return 0, err
	}
	if b[0] == 0 {
		return 0, fmt.Errorf("%w: leading zero length byte", ErrBadLength)
	}
	length := 0
	for _, d := range b {
		length = length<<8 | int(d)
	}
	if length < 0x80 {
		return 0, fmt.Errorf("%w: non-minimal long form", ErrBadLength)
	}
	return length, nil
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
