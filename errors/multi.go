package errors

import (
	"fmt"
	"strings"
)

// Append combines the given errors into a single one. Nil values are
// ignored. If there is nothing to combine nil is returned, a single error is
// returned as it is.
//
// The result can be tested with (*Error).Is, which matches if any of the
// combined errors matches.
func Append(errs ...error) error {
	var flat multiError
	for _, err := range errs {
		if errIsNil(err) {
			continue
		}
		// Flatten nested groups to keep the message readable.
		if m, ok := err.(multiError); ok {
			flat = append(flat, m...)
			continue
		}
		flat = append(flat, err)
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return flat
	}
}

// unpacker is implemented by errors that group several errors together.
type unpacker interface {
	Unpack() []error
}

type multiError []error

func (m multiError) Unpack() []error {
	return m
}

func (m multiError) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}
