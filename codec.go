package cascade

import (
	"github.com/cascadefund/cascade/errors"
	"github.com/gogo/protobuf/proto"
)

// Marshal serializes a model or a message with the protobuf wire format.
// All state written by the extensions goes through this function.
func Marshal(m proto.Message) ([]byte, error) {
	bz, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrEncoding, "marshal %T", m)
	}
	return bz, nil
}

// Unmarshal is the counterpart of Marshal. The destination is reset before
// decoding.
func Unmarshal(bz []byte, dest proto.Message) error {
	if err := proto.Unmarshal(bz, dest); err != nil {
		return errors.Wrapf(errors.ErrEncoding, "unmarshal %T: %s", dest, err)
	}
	return nil
}
