package app

import (
	"encoding/binary"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

// _cs: is a prefix for host internal data
const (
	heightKey = "_cs:height"
	nameKey   = "_cs:name"
)

// CommitStore handles loading from a persistent store, maintaining
// different CacheWraps for Deliver and Check, and returning useful state
// info.
type CommitStore struct {
	committed cascade.CacheableKVStore
	deliver   cascade.KVCacheWrap
	check     cascade.KVCacheWrap
	height    int64
}

// NewCommitStore loads the last committed height and sets up the deliver
// and check caches.
func NewCommitStore(store cascade.CacheableKVStore) (*CommitStore, error) {
	height, err := loadHeight(store)
	if err != nil {
		return nil, err
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
		height:    height,
	}, nil
}

// Height returns the number of commits done so far.
func (cs *CommitStore) Height() int64 {
	return cs.height
}

// Commit will flush deliver to the underlying store. It then regenerates
// new deliver/check caches and returns the new height.
func (cs *CommitStore) Commit() (int64, error) {
	height := cs.height + 1
	if err := cs.deliver.Set([]byte(heightKey), encodeHeight(height)); err != nil {
		return cs.height, errors.Wrap(err, "save height")
	}

	// flush deliver to store and discard check
	if err := cs.deliver.Write(); err != nil {
		return cs.height, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()

	// set up new caches
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	cs.height = height
	return height, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() cascade.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() cascade.CacheableKVStore {
	return cs.deliver
}

// CommittedStore gives read access to the state as of the last commit.
func (cs *CommitStore) CommittedStore() cascade.ReadOnlyKVStore {
	return cs.committed
}

func loadHeight(db cascade.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get([]byte(heightKey))
	if err != nil {
		return 0, errors.Wrap(err, "load height")
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrState, "malformed height: %X", raw)
	}
	return int64(binary.BigEndian.Uint64(raw)), nil
}

func encodeHeight(h int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(h))
	return raw
}

//------- storing host name ---------

// loadName returns the host name stored if any.
func loadName(kv cascade.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(nameKey))
	if err != nil {
		return "", errors.Wrap(err, "load name")
	}
	return string(v), nil
}

// saveName stores a host name in the kv store.
// Returns error if already set, or invalid name
func saveName(kv cascade.KVStore, name string) error {
	if !IsValidName(name) {
		return errors.Wrapf(errors.ErrInput, "name: %q", name)
	}
	k := []byte(nameKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load name")
	}
	if exists {
		return errors.Wrap(errors.ErrState, "genesis already loaded")
	}
	if err := kv.Set(k, []byte(name)); err != nil {
		return errors.Wrap(err, "save name")
	}
	return nil
}
