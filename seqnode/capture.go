package seqnode

import "math/big"

// failSentinel is the literal string a Read node returns when its group id
// is absent from the environment. Not an error: the binding for a group
// not reached on a particular index path simply never fires, and callers
// are documented to expect this exact string.
const failSentinel = "fail"

// Save wraps a child node with a capture-group id. On Item, it forwards to
// the child, then records the produced string in the environment under
// its id before returning it.
type Save struct {
	child Node
	id    int
}

// NewSave builds a Save node for the given capture-group id.
func NewSave(child Node, id int) *Save {
	return &Save{child: child, id: id}
}

func (s *Save) Len() *big.Int {
	return s.child.Len()
}

func (s *Save) Item(i *big.Int, env Env) (string, error) {
	v, err := s.child.Item(i, env)
	if err != nil {
		return "", err
	}
	if env != nil {
		env[s.id] = v
	}
	return v, nil
}

// Read holds only a capture-group id. Its cardinality is always 1: a
// backreference contributes exactly one string to the language at a given
// index, namely whatever the referenced group most recently captured.
type Read struct {
	id int
}

// NewRead builds a Read node for the given capture-group id.
func NewRead(id int) *Read {
	return &Read{id: id}
}

func (r *Read) Len() *big.Int {
	return big.NewInt(1)
}

func (r *Read) Item(i *big.Int, env Env) (string, error) {
	if _, err := normalizeIndex(i, r.Len()); err != nil {
		return "", err
	}
	if env == nil {
		return failSentinel, nil
	}
	if v, ok := env[r.id]; ok {
		return v, nil
	}
	return failSentinel, nil
}
