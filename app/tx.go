package app

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/x"
)

// Tx is a transaction submitted to the Host. Signers are the conditions
// that the submitter proved to fulfil.
type Tx struct {
	Msg     cascade.Msg
	Signers []cascade.Condition
}

var _ x.SignedTx = (*Tx)(nil)

// NewTx returns a transaction carrying given message.
func NewTx(msg cascade.Msg, signers ...cascade.Condition) *Tx {
	return &Tx{Msg: msg, Signers: signers}
}

// GetMsg returns the message of this transaction.
func (tx *Tx) GetMsg() (cascade.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg, nil
}

// GetSigners returns the conditions that signed this transaction.
func (tx *Tx) GetSigners() []cascade.Condition {
	return tx.Signers
}
