package distribution

import (
	"strings"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

// AncestorChain is the ordered list of nodes visited by a single donation.
// The first element is the donated node. A chain is never modified, Extend
// returns a new instance.
type AncestorChain struct {
	nodes []cascade.Address
}

// NewAncestorChain returns a chain that contains only the root node.
func NewAncestorChain(root cascade.Address) AncestorChain {
	return AncestorChain{nodes: []cascade.Address{root}}
}

// ChainFromBytes loads a chain from its serialized representation.
func ChainFromBytes(raw [][]byte) (AncestorChain, error) {
	nodes := make([]cascade.Address, len(raw))
	for i, r := range raw {
		a := cascade.Address(r)
		if err := a.Validate(); err != nil {
			return AncestorChain{}, errors.Wrapf(err, "chain node %d", i)
		}
		nodes[i] = a
	}
	c := AncestorChain{nodes: nodes}
	for i, a := range nodes {
		if (AncestorChain{nodes: nodes[:i]}).Contains(a) {
			return AncestorChain{}, errors.Wrapf(errors.ErrCircularCascade, "node %s repeats", a)
		}
	}
	return c, nil
}

// Contains returns true if given node was already visited.
func (c AncestorChain) Contains(node cascade.Address) bool {
	for _, n := range c.nodes {
		if n.Equals(node) {
			return true
		}
	}
	return false
}

// Extend returns a new chain with given node appended.
func (c AncestorChain) Extend(node cascade.Address) AncestorChain {
	nodes := make([]cascade.Address, len(c.nodes), len(c.nodes)+1)
	copy(nodes, c.nodes)
	return AncestorChain{nodes: append(nodes, node)}
}

// Len returns the number of visited nodes.
func (c AncestorChain) Len() int {
	return len(c.nodes)
}

// Last returns the most recently visited node or nil.
func (c AncestorChain) Last() cascade.Address {
	if len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[len(c.nodes)-1]
}

// Addresses returns a copy of the visited node addresses.
func (c AncestorChain) Addresses() []cascade.Address {
	out := make([]cascade.Address, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Bytes returns the serialized representation of the chain.
func (c AncestorChain) Bytes() [][]byte {
	out := make([][]byte, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = n.Clone()
	}
	return out
}

func (c AncestorChain) String() string {
	names := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		names[i] = n.String()
	}
	return strings.Join(names, " > ")
}
