package store

import "github.com/cascadefund/cascade"

// Aliases of the state interfaces, so that store implementations read
// naturally.

type (
	ReadOnlyKVStore  = cascade.ReadOnlyKVStore
	SetDeleter       = cascade.SetDeleter
	KVStore          = cascade.KVStore
	Batch            = cascade.Batch
	Iterator         = cascade.Iterator
	CacheableKVStore = cascade.CacheableKVStore
	KVCacheWrap      = cascade.KVCacheWrap
	Model            = cascade.Model
)
