package distribution

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

const optKey = "distribution"

// GenesisRecipient is a recipient as declared in the genesis file. A node
// destination can be referenced by its name instead of the address.
type GenesisRecipient struct {
	Name       string          `json:"name"`
	Kind       string          `json:"kind"`
	Address    cascade.Address `json:"address"`
	Node       string          `json:"node"`
	Percentage uint32          `json:"percentage"`
}

// Recipient returns the recipient this declaration describes.
func (g GenesisRecipient) Recipient() (*Recipient, error) {
	dest := &Destination{Address: g.Address}
	switch g.Kind {
	case "account":
		dest.Kind = Account
	case "node":
		dest.Kind = Node
		if g.Node != "" {
			dest.Address = NodeAddress(g.Node)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown destination kind %q", g.Kind)
	}
	r := &Recipient{Name: g.Name, Destination: dest, Percentage: g.Percentage}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct {
	Ledgers LedgerResolver
}

var _ cascade.Initializer = (*Initializer)(nil)

// FromGenesis will initialize all declared nodes. Nodes are initialized
// in the declared order, ledgers must be created before.
func (i *Initializer) FromGenesis(opts cascade.Options, kv cascade.KVStore) error {
	var gen struct {
		Nodes []struct {
			Name       string             `json:"name"`
			Admin      cascade.Address    `json:"admin"`
			Ledger     string             `json:"ledger"`
			Recipients []GenesisRecipient `json:"recipients"`
		} `json:"nodes"`
	}
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	// Genesis does not act on behalf of anyone.
	ctrl := NewController(nil, i.Ledgers, nil)
	for n, node := range gen.Nodes {
		recipients := make([]*Recipient, 0, len(node.Recipients))
		for k, gr := range node.Recipients {
			r, err := gr.Recipient()
			if err != nil {
				return errors.Wrapf(err, "node %d recipient %d", n, k)
			}
			recipients = append(recipients, r)
		}
		if _, err := ctrl.Initialize(kv, node.Name, node.Admin, node.Ledger, recipients); err != nil {
			return errors.Wrapf(err, "cannot initialize #%d node", n)
		}
	}
	return nil
}
