package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/gogo/protobuf/proto"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelBucket is a prefixed subspace of the DB that holds models of a
// single type.
type ModelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

var _ cascade.QueryHandler = ModelBucket{}

// NewModelBucket creates a bucket to store models of the same type as the
// given one. The name is used as the key prefix.
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return ModelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  reflect.TypeOf(m),
	}
}

// Name returns the name of the bucket.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consequetive calls to overwrite the same byte array.
func (b ModelBucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One query the database for a single model instance. Result is loaded
// into given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database. If given model type cannot be used to contain stored entity,
// ErrType is returned.
func (b ModelBucket) One(db cascade.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != b.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot load %T", b.name, dest)
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := cascade.Unmarshal(raw, dest); err != nil {
		return err
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrapf(err, "stored %T", dest)
	}
	return nil
}

// Has returns true if a model is stored under given key.
func (b ModelBucket) Has(db cascade.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, "cannot read from the database")
	}
	return ok, nil
}

// Put saves given model in the database. Only valid models are stored.
func (b ModelBucket) Put(db cascade.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != b.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot store %T", b.name, m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := cascade.Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db cascade.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s bucket", b.name)
	}
	return db.Delete(b.DBKey(key))
}

// Keys returns the primary keys of all stored models in ascending order.
func (b ModelBucket) Keys(db cascade.ReadOnlyKVStore) ([][]byte, error) {
	models, err := queryPrefix(db, b.prefix)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, len(models))
	for i, m := range models {
		keys[i] = m.Key[len(b.prefix):]
	}
	return keys, nil
}

// Register registers this bucket for queries. You can define a name here
// for queries, which is different than the bucket name used to prefix the
// data.
func (b ModelBucket) Register(name string, r cascade.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter
func (b ModelBucket) Query(db cascade.ReadOnlyKVStore, mod string, data []byte) ([]cascade.Model, error) {
	switch mod {
	case cascade.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []cascade.Model{{Key: key, Value: value}}, nil
	case cascade.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
