package distribution

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/orm"
)

// RecipientRegistry stores the ordered list of recipients of every node.
// It does not check the recipients against cycles, those are detected only
// when a donation is distributed.
type RecipientRegistry struct {
	bucket orm.ModelBucket
}

func NewRecipientRegistry() RecipientRegistry {
	return RecipientRegistry{bucket: NewRecipientBucket()}
}

// SetChildren replaces the recipients of given node.
func (r RecipientRegistry) SetChildren(db cascade.KVStore, node cascade.Address, rs []*Recipient) error {
	if err := node.Validate(); err != nil {
		return errors.Wrap(err, "node")
	}
	if err := validateRecipients(rs, errors.ErrInput); err != nil {
		return err
	}
	list := &RecipientList{
		Metadata:   &cascade.Metadata{Schema: 1},
		Recipients: rs,
	}
	return r.bucket.Put(db, node, list)
}

// GetChildren returns the recipients of given node in the order they were
// set. A node that has no recipients returns an empty list.
func (r RecipientRegistry) GetChildren(db cascade.ReadOnlyKVStore, node cascade.Address) ([]*Recipient, error) {
	var list RecipientList
	switch err := r.bucket.One(db, node, &list); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return []*Recipient{}, nil
	case errors.ErrDatabase.Is(err):
		return nil, err
	default:
		return nil, errors.Wrapf(errors.ErrRegistryRead, "node %s: %s", node, err)
	}
	if list.Recipients == nil {
		return []*Recipient{}, nil
	}
	return list.Recipients, nil
}
