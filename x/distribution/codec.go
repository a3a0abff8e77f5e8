package distribution

// The wire layout of all types in this file is declared in codec.proto.

import (
	"github.com/cascadefund/cascade"
	"github.com/gogo/protobuf/proto"
)

// DestinationKind declares what type of entity receives a share.
type DestinationKind int32

const (
	// Account is a terminal value holder.
	Account DestinationKind = 1
	// Node is a distribution node that continues the cascade.
	Node DestinationKind = 2
)

var destinationKindNames = map[DestinationKind]string{
	Account: "account",
	Node:    "node",
}

func (k DestinationKind) String() string {
	if n, ok := destinationKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Destination is the receiving side of a share.
type Destination struct {
	Kind    DestinationKind `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Address cascade.Address `protobuf:"bytes,2,opt,name=address,proto3" json:"address,omitempty"`
}

func (m *Destination) Reset()         { *m = Destination{} }
func (m *Destination) String() string { return proto.CompactTextString(m) }
func (*Destination) ProtoMessage()    {}

// Recipient is a single entry of the node recipient list.
type Recipient struct {
	Name        string       `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Destination *Destination `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	// Percentage of the node balance that is transferred. Must be in
	// [0, 100].
	Percentage uint32 `protobuf:"varint,3,opt,name=percentage,proto3" json:"percentage,omitempty"`
}

func (m *Recipient) Reset()         { *m = Recipient{} }
func (m *Recipient) String() string { return proto.CompactTextString(m) }
func (*Recipient) ProtoMessage()    {}

// RecipientList is how the recipients of a node are persisted.
type RecipientList struct {
	Metadata   *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Recipients []*Recipient      `protobuf:"bytes,2,rep,name=recipients,proto3" json:"recipients,omitempty"`
}

func (m *RecipientList) Reset()         { *m = RecipientList{} }
func (m *RecipientList) String() string { return proto.CompactTextString(m) }
func (*RecipientList) ProtoMessage()    {}

// NodeConfiguration is created when a node is initialized.
type NodeConfiguration struct {
	Metadata *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Name     string            `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	// Admin, if set, is the only one allowed to change the recipients.
	Admin cascade.Address `protobuf:"bytes,3,opt,name=admin,proto3" json:"admin,omitempty"`
	// Ledger is the ticker of the token this node distributes. It
	// cannot be changed.
	Ledger string `protobuf:"bytes,4,opt,name=ledger,proto3" json:"ledger,omitempty"`
}

func (m *NodeConfiguration) Reset()         { *m = NodeConfiguration{} }
func (m *NodeConfiguration) String() string { return proto.CompactTextString(m) }
func (*NodeConfiguration) ProtoMessage()    {}

// Payout is a single transfer executed during a donation.
type Payout struct {
	From      cascade.Address `protobuf:"bytes,1,opt,name=from,proto3" json:"from,omitempty"`
	To        cascade.Address `protobuf:"bytes,2,opt,name=to,proto3" json:"to,omitempty"`
	Recipient string          `protobuf:"bytes,3,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Amount    int64           `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// Depth is the number of nodes between the donated node and the
	// paying node.
	Depth uint32          `protobuf:"varint,5,opt,name=depth,proto3" json:"depth,omitempty"`
	Kind  DestinationKind `protobuf:"varint,6,opt,name=kind,proto3" json:"kind,omitempty"`
}

func (m *Payout) Reset()         { *m = Payout{} }
func (m *Payout) String() string { return proto.CompactTextString(m) }
func (*Payout) ProtoMessage()    {}

// Receipt lists all the payouts of a donation in the order they were
// executed.
type Receipt struct {
	Metadata   *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	DonationID string            `protobuf:"bytes,2,opt,name=donation_id,json=donationId,proto3" json:"donation_id,omitempty"`
	Node       cascade.Address   `protobuf:"bytes,3,opt,name=node,proto3" json:"node,omitempty"`
	Donor      cascade.Address   `protobuf:"bytes,4,opt,name=donor,proto3" json:"donor,omitempty"`
	Amount     int64             `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
	Payouts    []*Payout         `protobuf:"bytes,6,rep,name=payouts,proto3" json:"payouts,omitempty"`
}

func (m *Receipt) Reset()         { *m = Receipt{} }
func (m *Receipt) String() string { return proto.CompactTextString(m) }
func (*Receipt) ProtoMessage()    {}

// InitializeMsg creates a new node.
type InitializeMsg struct {
	Metadata   *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Name       string            `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Admin      cascade.Address   `protobuf:"bytes,3,opt,name=admin,proto3" json:"admin,omitempty"`
	Ledger     string            `protobuf:"bytes,4,opt,name=ledger,proto3" json:"ledger,omitempty"`
	Recipients []*Recipient      `protobuf:"bytes,5,rep,name=recipients,proto3" json:"recipients,omitempty"`
}

func (m *InitializeMsg) Reset()         { *m = InitializeMsg{} }
func (m *InitializeMsg) String() string { return proto.CompactTextString(m) }
func (*InitializeMsg) ProtoMessage()    {}

// DonateMsg pulls funds from the donor into the node and distributes
// them. The donor must approve the node address as a spender first.
type DonateMsg struct {
	Metadata *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Node     cascade.Address   `protobuf:"bytes,2,opt,name=node,proto3" json:"node,omitempty"`
	Donor    cascade.Address   `protobuf:"bytes,3,opt,name=donor,proto3" json:"donor,omitempty"`
	Amount   int64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *DonateMsg) Reset()         { *m = DonateMsg{} }
func (m *DonateMsg) String() string { return proto.CompactTextString(m) }
func (*DonateMsg) ProtoMessage()    {}

// ContinueMsg continues a distribution in a node that already received
// its share.
type ContinueMsg struct {
	Metadata *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Node     cascade.Address   `protobuf:"bytes,2,opt,name=node,proto3" json:"node,omitempty"`
	Share    int64             `protobuf:"varint,3,opt,name=share,proto3" json:"share,omitempty"`
	// Chain is the list of node addresses visited so far, starting
	// with the donated node.
	Chain [][]byte `protobuf:"bytes,4,rep,name=chain,proto3" json:"chain,omitempty"`
}

func (m *ContinueMsg) Reset()         { *m = ContinueMsg{} }
func (m *ContinueMsg) String() string { return proto.CompactTextString(m) }
func (*ContinueMsg) ProtoMessage()    {}

// SetChildrenMsg replaces the recipients of a node.
type SetChildrenMsg struct {
	Metadata   *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Node       cascade.Address   `protobuf:"bytes,2,opt,name=node,proto3" json:"node,omitempty"`
	Recipients []*Recipient      `protobuf:"bytes,3,rep,name=recipients,proto3" json:"recipients,omitempty"`
}

func (m *SetChildrenMsg) Reset()         { *m = SetChildrenMsg{} }
func (m *SetChildrenMsg) String() string { return proto.CompactTextString(m) }
func (*SetChildrenMsg) ProtoMessage()    {}
