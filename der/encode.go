package der

// Encode serializes the tree rooted at n. Sequences concatenate their
// children's encodings before length-prefixing; long-form lengths use the
// minimal number of big-endian bytes.
func (n *Node) Encode() []byte {
	value := n.encodeValue()
	out := make([]byte, 0, 2+len(value))
	out = append(out, byte(n.Kind))
	out = appendLength(out, len(value))
	return append(out, value...)
}

func (n *Node) encodeValue() []byte {
	switch n.Kind {
	case KindSequence:
		var value []byte
		for _, child := range n.Children {
			value = append(value, child.Encode()...)
		}
		return value
	case KindBitString:
		value := make([]byte, 0, 1+len(n.Value))
		value = append(value, n.UnusedBits)
		return append(value, n.Value...)
	}
	return n.Value
}

func appendLength(out []byte, length int) []byte {
	if length < 0x80 {
		return append(out, byte(length))
	}
	var buf [8]byte
	i := len(buf)
	for v := length; v > 0; v >>= 8 {
		i--
		buf[i] = byte(v)
	}
	out = append(out, 0x80|byte(len(buf)-i))
	return append(out, buf[i:]...)
}
