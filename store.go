package cascade

// ReadOnlyKVStore is the read side of the state. Ledger balances, node
// configurations and recipient lists are all read through it.
type ReadOnlyKVStore interface {
	// Get returns nil if the key is not set.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks the keys of [start, end) in ascending order. A nil
	// bound is unlimited. The range must not be modified until the
	// iterator is released.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator is Iterator in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by stores and batches. Callers must
// not modify key or value after passing them.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the state as seen by handlers.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes to apply them at once.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator returns models one by one until Next fails with
// errors.ErrIteratorDone:
//
//	defer itr.Release()
//	for {
//		key, value, err := itr.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		...
//	}
type Iterator interface {
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can stage writes in a cache.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds writes that are visible to its readers but reach the
// parent store only on Write. Discard drops them.
//
// Every transaction runs in such a cache, and a donation with all the
// transfers of its cascade is applied or dropped as a whole.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// Model is a stored key and value.
type Model struct {
	Key   []byte
	Value []byte
}
