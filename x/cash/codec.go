package cash

// The wire layout of all types in this file is declared in codec.proto.

import (
	"github.com/cascadefund/cascade"
	"github.com/gogo/protobuf/proto"
)

// Token declares a fungible token and who may mint it.
type Token struct {
	Metadata *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Ticker   string            `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Issuer   cascade.Address   `protobuf:"bytes,3,opt,name=issuer,proto3" json:"issuer,omitempty"`
}

func (m *Token) Reset()         { *m = Token{} }
func (m *Token) String() string { return proto.CompactTextString(m) }
func (*Token) ProtoMessage()    {}

// Wallet is the state of a single account for a single token.
type Wallet struct {
	Metadata *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Ticker   string            `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Owner    cascade.Address   `protobuf:"bytes,3,opt,name=owner,proto3" json:"owner,omitempty"`
	Balance  int64             `protobuf:"varint,4,opt,name=balance,proto3" json:"balance,omitempty"`
	// Nonce is the sequence expected with the next call authorized by
	// the owner.
	Nonce int64 `protobuf:"varint,5,opt,name=nonce,proto3" json:"nonce,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Allowance is the amount a spender may move out of the owner's wallet.
type Allowance struct {
	Metadata *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Ticker   string            `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Owner    cascade.Address   `protobuf:"bytes,3,opt,name=owner,proto3" json:"owner,omitempty"`
	Spender  cascade.Address   `protobuf:"bytes,4,opt,name=spender,proto3" json:"spender,omitempty"`
	Amount   int64             `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Allowance) Reset()         { *m = Allowance{} }
func (m *Allowance) String() string { return proto.CompactTextString(m) }
func (*Allowance) ProtoMessage()    {}

// MintMsg creates new tokens. It must be authorized by the token issuer.
type MintMsg struct {
	Metadata    *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Ticker      string            `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Destination cascade.Address   `protobuf:"bytes,3,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      int64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *MintMsg) Reset()         { *m = MintMsg{} }
func (m *MintMsg) String() string { return proto.CompactTextString(m) }
func (*MintMsg) ProtoMessage()    {}

// ApproveMsg sets the allowance of a spender. It must be authorized by the
// owner.
type ApproveMsg struct {
	Metadata *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Ticker   string            `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Nonce    int64             `protobuf:"varint,3,opt,name=nonce,proto3" json:"nonce,omitempty"`
	Owner    cascade.Address   `protobuf:"bytes,4,opt,name=owner,proto3" json:"owner,omitempty"`
	Spender  cascade.Address   `protobuf:"bytes,5,opt,name=spender,proto3" json:"spender,omitempty"`
	Amount   int64             `protobuf:"varint,6,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}

// TransferMsg moves tokens between two accounts. It must be authorized by
// the source.
type TransferMsg struct {
	Metadata    *cascade.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Ticker      string            `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Nonce       int64             `protobuf:"varint,3,opt,name=nonce,proto3" json:"nonce,omitempty"`
	Source      cascade.Address   `protobuf:"bytes,4,opt,name=source,proto3" json:"source,omitempty"`
	Destination cascade.Address   `protobuf:"bytes,5,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      int64             `protobuf:"varint,6,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}
