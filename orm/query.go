package orm

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

// ConsumeIterator reads all remaining models and releases the iterator.
func ConsumeIterator(itr cascade.Iterator) ([]cascade.Model, error) {
	defer itr.Release()

	var res []cascade.Model
	for {
		key, value, err := itr.Next()
		switch {
		case err == nil:
			res = append(res, cascade.Model{Key: key, Value: value})
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// queryPrefix returns all models whose key starts with prefix, ordered by
// key.
func queryPrefix(db cascade.ReadOnlyKVStore, prefix []byte) ([]cascade.Model, error) {
	start, end := prefixRange(prefix)
	itr, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// prefixRange returns the [start, end) range holding every key with the
// given prefix. A nil end is unbounded, which happens for an empty prefix
// or one made only of 0xFF bytes.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end
		}
	}
	return prefix, nil
}
