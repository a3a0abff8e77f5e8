package distribution

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

const (
	pathInitializeMsg  = "distribution/initialize"
	pathDonateMsg      = "distribution/donate"
	pathContinueMsg    = "distribution/continue"
	pathSetChildrenMsg = "distribution/setChildren"
)

var (
	_ cascade.Msg = (*InitializeMsg)(nil)
	_ cascade.Msg = (*DonateMsg)(nil)
	_ cascade.Msg = (*ContinueMsg)(nil)
	_ cascade.Msg = (*SetChildrenMsg)(nil)
)

func (msg *InitializeMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "invalid metadata")
	}
	if !isNodeName(msg.Name) {
		return errors.Wrapf(errors.ErrMsg, "invalid node name %q", msg.Name)
	}
	if len(msg.Admin) != 0 {
		if err := msg.Admin.Validate(); err != nil {
			return errors.Wrap(err, "invalid admin address")
		}
	}
	if !isLedgerRef(msg.Ledger) {
		return errors.Wrapf(errors.ErrMsg, "invalid ledger %q", msg.Ledger)
	}
	return validateRecipients(msg.Recipients, errors.ErrMsg)
}

func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

func (msg *DonateMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "invalid metadata")
	}
	if err := msg.Node.Validate(); err != nil {
		return errors.Wrap(err, "invalid node address")
	}
	if err := msg.Donor.Validate(); err != nil {
		return errors.Wrap(err, "invalid donor address")
	}
	if msg.Amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "donation must be positive")
	}
	return nil
}

func (DonateMsg) Path() string {
	return pathDonateMsg
}

func (msg *ContinueMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "invalid metadata")
	}
	if err := msg.Node.Validate(); err != nil {
		return errors.Wrap(err, "invalid node address")
	}
	if msg.Share < 0 {
		return errors.Wrap(errors.ErrAmount, "negative share")
	}
	if len(msg.Chain) == 0 {
		return errors.Wrap(errors.ErrMsg, "empty chain")
	}
	if _, err := ChainFromBytes(msg.Chain); err != nil {
		return errors.Wrap(err, "invalid chain")
	}
	return nil
}

func (ContinueMsg) Path() string {
	return pathContinueMsg
}

func (msg *SetChildrenMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "invalid metadata")
	}
	if err := msg.Node.Validate(); err != nil {
		return errors.Wrap(err, "invalid node address")
	}
	return validateRecipients(msg.Recipients, errors.ErrMsg)
}

func (SetChildrenMsg) Path() string {
	return pathSetChildrenMsg
}
