package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Field marks err as caused by the value of a single field. The path uses
// Go field names joined with dots, list elements are addressed by their
// index, for example Recipients.2.Percentage. Use FieldPath to build it.
//
// Field returns nil if err is nil.
func Field(path string, err error, description string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, path: path, desc: description}
}

// AppendField adds the field error to errs. Nothing is added if fieldErr
// is nil.
func AppendField(errs error, path string, fieldErr error) error {
	return Append(errs, Field(path, fieldErr, ""))
}

// FieldPath joins the elements of a field path. Integers are list indexes.
func FieldPath(elems ...interface{}) string {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		switch v := e.(type) {
		case string:
			if v != "" {
				parts = append(parts, v)
			}
		case int:
			parts = append(parts, strconv.Itoa(v))
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return strings.Join(parts, ".")
}

// Nest moves all field errors of err under the prefix path. It is used
// when a value validates its own fields and is itself a field of another
// value: a recipient reporting Percentage becomes Recipients.2.Percentage.
// Errors that are not bound to any field are bound to the prefix.
func Nest(prefix string, err error) error {
	if errIsNil(err) {
		return nil
	}
	switch e := err.(type) {
	case multiError:
		nested := make([]error, len(e))
		for i, inner := range e {
			nested[i] = Nest(prefix, inner)
		}
		return Append(nested...)
	case *fieldError:
		return &fieldError{parent: e.parent, path: FieldPath(prefix, e.path), desc: e.desc}
	default:
		return Field(prefix, err, "")
	}
}

type fieldError struct {
	parent error
	path   string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("%s: %s", e.path, e.parent)
	}
	return fmt.Sprintf("%s: %s: %s", e.path, e.desc, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Unwrap() error { return e.parent }

func (e *fieldError) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.Error())
	if verb == 'v' && s.Flag('+') {
		if st := stackTrace(e); st != nil {
			fmt.Fprintf(s, "%+v", st.StackTrace())
		}
	}
}

// FieldErrors returns all errors reported for the field with given path.
func FieldErrors(err error, path string) []error {
	var res []error
	walkFields(err, func(fe *fieldError) bool {
		if fe.path == path {
			res = append(res, fe)
			return false
		}
		return true
	})
	return res
}

// Fields returns the paths of all fields reported by err, in the order
// they were reported. Fields nested in another reported field are not
// listed.
func Fields(err error) []string {
	var res []string
	walkFields(err, func(fe *fieldError) bool {
		res = append(res, fe.path)
		return false
	})
	return res
}

// walkFields calls fn for every field error found in err. fn returns
// whether errors wrapped by the field error should be inspected too.
func walkFields(err error, fn func(*fieldError) bool) {
	for !errIsNil(err) {
		if fe, ok := err.(*fieldError); ok && !fn(fe) {
			return
		}
		if u, ok := err.(unpacker); ok {
			for _, inner := range u.Unpack() {
				walkFields(inner, fn)
			}
			return
		}
		c, ok := err.(causer)
		if !ok {
			return
		}
		err = c.Cause()
	}
}
