package cascadetest

import (
	"github.com/cascadefund/cascade"
)

// Tx represents a transaction carrying a single message and the
// conditions that signed it.
type Tx struct {
	Msg     cascade.Msg
	Err     error
	Signers []cascade.Condition
}

var _ cascade.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (cascade.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) GetSigners() []cascade.Condition {
	return tx.Signers
}

// Msg is a message that only knows its route. Err, if set, is returned by
// Validate.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string
	Err       error
}

var _ cascade.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Reset() { *m = Msg{} }

func (m *Msg) String() string { return "test/" + m.RoutePath }

func (*Msg) ProtoMessage() {}
