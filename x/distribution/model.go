package distribution

import (
	"regexp"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/orm"
)

const (
	// maxRecipients defines the maximum number of recipients allowed
	// within a single node. Having a sane limit allows us to avoid
	// attacks.
	maxRecipients = 200

	maxPercentage = 100
)

var (
	isRecipientName = regexp.MustCompile(`^[a-zA-Z0-9_]{1,32}$`).MatchString
	isNodeName      = regexp.MustCompile(`^[a-z0-9_\-]{3,32}$`).MatchString
	isLedgerRef     = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,7}$`).MatchString
)

// ConditionExt is the extension of all conditions nodes act with. It must
// never be accepted as a transaction signer.
const ConditionExt = "dist"

// NodeCondition returns the condition a node with given name acts with.
// Funds sent to the node are held by the address of this condition.
func NodeCondition(name string) cascade.Condition {
	return cascade.NewCondition(ConditionExt, "node", []byte(name))
}

// NodeAddress returns the address of a node with given name.
func NodeAddress(name string) cascade.Address {
	return NodeCondition(name).Address()
}

func (d *Destination) Validate() error {
	if d == nil {
		return errors.Wrap(errors.ErrEmpty, "destination")
	}
	var errs error
	if _, ok := destinationKindNames[d.Kind]; !ok {
		errs = errors.AppendField(errs, "Kind", errors.Wrapf(errors.ErrType, "unknown kind %d", d.Kind))
	}
	return errors.AppendField(errs, "Address", d.Address.Validate())
}

func (r *Recipient) Validate() error {
	if r == nil {
		return errors.Wrap(errors.ErrEmpty, "recipient")
	}
	var errs error
	if !isRecipientName(r.Name) {
		errs = errors.AppendField(errs, "Name", errors.Wrapf(errors.ErrInput, "invalid name %q", r.Name))
	}
	errs = errors.Append(errs, errors.Nest("Destination", r.Destination.Validate()))
	if r.Percentage > maxPercentage {
		errs = errors.AppendField(errs, "Percentage", errors.Wrapf(errors.ErrInput, "%d greater than %d", r.Percentage, maxPercentage))
	}
	return errs
}

// validateRecipients returns an error if given list of recipients is not
// valid. Model validation returns different class of error than message
// validation, that is why require base error class to be given. Every
// invalid recipient is reported under its Recipients.<index> field path.
//
// The sum of percentages is not limited. Recipients listed later
// receive nothing if the balance was already used.
func validateRecipients(rs []*Recipient, baseErr *errors.Error) error {
	if len(rs) > maxRecipients {
		return errors.Field("Recipients", baseErr, "%d recipients, at most %d allowed", len(rs), maxRecipients)
	}
	var errs error
	for i, r := range rs {
		errs = errors.Append(errs, errors.Nest(errors.FieldPath("Recipients", i), r.Validate()))
	}
	if errs == nil {
		return nil
	}
	return errors.Append(baseErr, errs)
}

func (l *RecipientList) Validate() error {
	if err := l.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return validateRecipients(l.Recipients, errors.ErrModel)
}

func (c *NodeConfiguration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	var errs error
	if !isNodeName(c.Name) {
		errs = errors.AppendField(errs, "Name", errors.Wrapf(errors.ErrModel, "invalid name %q", c.Name))
	}
	if len(c.Admin) != 0 {
		errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	}
	if !isLedgerRef(c.Ledger) {
		errs = errors.AppendField(errs, "Ledger", errors.Wrapf(errors.ErrModel, "invalid ledger %q", c.Ledger))
	}
	return errs
}

// Address returns the address of the configured node.
func (c *NodeConfiguration) Address() cascade.Address {
	return NodeAddress(c.Name)
}

func (r *Receipt) Validate() error {
	if err := r.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Wrap(r.Node.Validate(), "node")
}

// NewNodeBucket returns a bucket of node configurations indexed by the
// node address.
func NewNodeBucket() orm.ModelBucket {
	return orm.NewModelBucket("nodes", &NodeConfiguration{})
}

// NewRecipientBucket returns a bucket of recipient lists indexed by the
// node address.
func NewRecipientBucket() orm.ModelBucket {
	return orm.NewModelBucket("recipients", &RecipientList{})
}
