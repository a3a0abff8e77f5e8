package distribution

import (
	"testing"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/cascadetest"
	"github.com/cascadefund/cascade/cascadetest/assert"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/store"
)

func TestRegistryRoundTrip(t *testing.T) {
	a := cascadetest.NewCondition().Address()
	b := cascadetest.NewCondition().Address()
	n := NodeAddress("child")

	cases := map[string][]*Recipient{
		"empty": {},
		"single": {
			toAccount("a", a, 100),
		},
		"order is kept": {
			toAccount("zzz", a, 1),
			toNode("child", n, 0),
			toAccount("aaa", b, 99),
			toAccount("a_dup", a, 5),
		},
		"sum above hundred": {
			toAccount("a", a, 80),
			toAccount("b", b, 80),
		},
	}

	for testName, list := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			reg := NewRecipientRegistry()
			node := NodeAddress("root")

			assert.Nil(t, reg.SetChildren(db, node, list))
			got, err := reg.GetChildren(db, node)
			assert.Nil(t, err)
			assert.Equal(t, len(list), len(got))
			for i := range list {
				assert.Equal(t, list[i], got[i])
			}
		})
	}
}

func TestRegistryReplacesList(t *testing.T) {
	db := store.MemStore()
	reg := NewRecipientRegistry()
	node := NodeAddress("root")
	a := cascadetest.NewCondition().Address()

	assert.Nil(t, reg.SetChildren(db, node, []*Recipient{toAccount("a", a, 1), toAccount("b", a, 2)}))
	assert.Nil(t, reg.SetChildren(db, node, []*Recipient{toAccount("c", a, 3)}))
	got, err := reg.GetChildren(db, node)
	assert.Nil(t, err)
	assert.Equal(t, []*Recipient{toAccount("c", a, 3)}, got)
}

func TestRegistryValidation(t *testing.T) {
	a := cascadetest.NewCondition().Address()
	tooMany := make([]*Recipient, maxRecipients+1)
	for i := range tooMany {
		tooMany[i] = toAccount("a", a, 0)
	}

	cases := map[string]struct {
		list       []*Recipient
		wantFields map[string]*errors.Error
	}{
		"percentage above hundred": {
			list:       []*Recipient{toAccount("a", a, 100), toAccount("b", a, 101)},
			wantFields: map[string]*errors.Error{"Recipients.1.Percentage": errors.ErrInput},
		},
		"invalid name": {
			list:       []*Recipient{toAccount("a b", a, 1)},
			wantFields: map[string]*errors.Error{"Recipients.0.Name": errors.ErrInput},
		},
		"missing destination": {
			list:       []*Recipient{{Name: "a", Percentage: 1}},
			wantFields: map[string]*errors.Error{"Recipients.0.Destination": errors.ErrEmpty},
		},
		"unknown kind": {
			list:       []*Recipient{{Name: "a", Destination: &Destination{Kind: 3, Address: a}}},
			wantFields: map[string]*errors.Error{"Recipients.0.Destination.Kind": errors.ErrType},
		},
		"invalid address": {
			list:       []*Recipient{toAccount("a", cascade.Address("short"), 1)},
			wantFields: map[string]*errors.Error{"Recipients.0.Destination.Address": errors.ErrInput},
		},
		"every invalid recipient is reported": {
			list: []*Recipient{
				toAccount("ok", a, 10),
				toAccount("a b", a, 200),
				toNode("ok", nil, 10),
			},
			wantFields: map[string]*errors.Error{
				"Recipients.1.Name":                errors.ErrInput,
				"Recipients.1.Percentage":          errors.ErrInput,
				"Recipients.2.Destination.Address": errors.ErrInput,
			},
		},
		"too many": {
			list:       tooMany,
			wantFields: map[string]*errors.Error{"Recipients": errors.ErrInput},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := NewRecipientRegistry().SetChildren(store.MemStore(), NodeAddress("root"), tc.list)
			assert.IsErr(t, errors.ErrInput, err)
			assert.FieldErrors(t, err, tc.wantFields)
		})
	}
}

func TestRegistryReadError(t *testing.T) {
	a := cascadetest.NewCondition().Address()
	node := NodeAddress("root")
	bucket := NewRecipientBucket()

	unknownKind, err := cascade.Marshal(&RecipientList{
		Metadata:   &cascade.Metadata{Schema: 1},
		Recipients: []*Recipient{{Name: "a", Destination: &Destination{Kind: 9, Address: a}}},
	})
	assert.Nil(t, err)

	cases := map[string][]byte{
		"garbage":      []byte("not a protobuf message"),
		"unknown kind": unknownKind,
		"no metadata":  {0x12, 0x00},
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, db.Set(bucket.DBKey(node), raw))
			_, err := NewRecipientRegistry().GetChildren(db, node)
			assert.IsErr(t, errors.ErrRegistryRead, err)
		})
	}
}
