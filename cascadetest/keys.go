package cascadetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/cascadefund/cascade"
)

var sequence uint64

// NewCondition returns a new, unique condition. Conditions are created from
// a global sequence so they never repeat within a test binary.
func NewCondition() cascade.Condition {
	n := atomic.AddUint64(&sequence, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, n)
	return cascade.NewCondition("test", "seq", data)
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation.
func ParseAddress(t interface {
	Helper()
	Fatalf(string, ...interface{})
}, encodedAddress string) cascade.Address {
	t.Helper()

	addr, err := cascade.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
