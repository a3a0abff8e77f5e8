package store

import (
	"bytes"

	"github.com/cascadefund/cascade/errors"
	"github.com/google/btree"
)

// collectRange returns the cached entries within [start, end) in
// ascending order. A nil bound is unlimited.
func collectRange(tree *btree.BTree, start, end []byte) []cacheEntry {
	var entries []cacheEntry
	collect := func(item btree.Item) bool {
		entries = append(entries, item.(cacheEntry))
		return true
	}
	switch {
	case start == nil && end == nil:
		tree.Ascend(collect)
	case start == nil:
		tree.AscendLessThan(cacheEntry{key: end}, collect)
	case end == nil:
		tree.AscendGreaterOrEqual(cacheEntry{key: start}, collect)
	default:
		tree.AscendRange(cacheEntry{key: start}, cacheEntry{key: end}, collect)
	}
	return entries
}

// cacheIterator merges the items cached in a btree with the iterator of
// the parent store. Cached items shadow parent entries with the same key and
// deleted items hide them.
type cacheIterator struct {
	items   []cacheEntry
	parent  Iterator
	reverse bool

	// lookahead of the parent iterator
	pKey, pValue []byte
	pLoaded      bool
	pDone        bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []cacheEntry, parent Iterator, reverse bool) *cacheIterator {
	return &cacheIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

// Next returns the next visible key/value pair.
func (c *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if err := c.loadParent(); err != nil {
			return nil, nil, err
		}

		if len(c.items) == 0 {
			if c.pDone {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
			}
			return c.takeParent()
		}

		item := c.items[0]
		if !c.pDone {
			cmp := bytes.Compare(item.key, c.pKey)
			if c.reverse {
				cmp = -cmp
			}
			if cmp > 0 {
				return c.takeParent()
			}
			if cmp == 0 {
				// Cached value shadows the parent one.
				c.pLoaded = false
			}
		}

		c.items = c.items[1:]
		if !item.deleted {
			return item.key, item.value, nil
		}
	}
}

func (c *cacheIterator) takeParent() ([]byte, []byte, error) {
	c.pLoaded = false
	return c.pKey, c.pValue, nil
}

func (c *cacheIterator) loadParent() error {
	if c.pLoaded || c.pDone {
		return nil
	}
	key, value, err := c.parent.Next()
	if err != nil {
		if errors.ErrIteratorDone.Is(err) {
			c.pDone = true
			return nil
		}
		return err
	}
	c.pKey, c.pValue, c.pLoaded = key, value, true
	return nil
}

// Release releases the parent iterator and the cached snapshot.
func (c *cacheIterator) Release() {
	c.parent.Release()
	c.items = nil
}
