package der

import "bytes"

// Kind identifies the ASN.1 type of a node. The values are the DER
// identifier octets themselves.
type Kind byte

const (
	KindInteger          Kind = 0x02
	KindBitString        Kind = 0x03
	KindOctetString      Kind = 0x04
	KindNull             Kind = 0x05
	KindObjectIdentifier Kind = 0x06
	KindSequence         Kind = 0x30
)

// Node is one element of a DER tree. A Sequence owns its children; leaf
// kinds carry their raw value bytes. The tree has no sharing or cycles, so
// copying a Node copies the whole subtree it roots.
type Node struct {
	Kind     Kind
	Value    []byte  // leaf payload; nil for Sequence and Null
	Children []*Node // Sequence only
	// UnusedBits is the BIT STRING unused-bits octet, kept so canonical
	// input re-encodes byte-identically.
	UnusedBits byte
}

// Seq returns a SEQUENCE node owning the given children.
func Seq(children ...*Node) *Node {
	return &Node{Kind: KindSequence, Children: children}
}

// Int returns an INTEGER node with the given content bytes.
func Int(value []byte) *Node {
	return &Node{Kind: KindInteger, Value: value}
}

// OID returns an OBJECT IDENTIFIER node with the given content bytes.
func OID(value []byte) *Node {
	return &Node{Kind: KindObjectIdentifier, Value: value}
}

// Null returns a NULL node.
func Null() *Node {
	return &Node{Kind: KindNull}
}

// BitStr returns a BIT STRING node with zero unused bits.
func BitStr(value []byte) *Node {
	return &Node{Kind: KindBitString, Value: value}
}

// OctStr returns an OCTET STRING node.
func OctStr(value []byte) *Node {
	return &Node{Kind: KindOctetString, Value: value}
}

// Equal reports whether two trees are structurally identical.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind || n.UnusedBits != o.UnusedBits {
		return false
	}
	if !bytes.Equal(n.Value, o.Value) {
		return false
	}
	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
