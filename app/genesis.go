package app

import (
	"encoding/json"
	"os"
	"regexp"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

// IsValidName is the RegExp to ensure valid host names
var IsValidName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// Genesis file format.
type Genesis struct {
	Name       string          `json:"name"`
	AppOptions cascade.Options `json:"app_options"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrEncoding, "genesis file: %s", err)
	}
	return gen, nil
}

//------ init state -----

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...cascade.Initializer) cascade.Initializer {
	return chainInitializers{inits}
}

type chainInitializers struct {
	inits []cascade.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializers) FromGenesis(opts cascade.Options, kv cascade.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
