// Package assert is a small set of test assertions built around the
// errors package: errors are compared by their registered kind and
// validation errors by the field paths they report.
package assert

import (
	"reflect"
	"sort"
	"strings"

	"github.com/cascadefund/cascade/errors"
)

// Tester is the part of testing.TB the assertions use.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless value is nil or a typed nil. Errors are printed with
// their stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails if want and got are not deeply equal. Values of different
// types are never equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails if fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	panicked := func() (p bool) {
		defer func() { p = recover() != nil }()
		fn()
		return false
	}()
	if !panicked {
		t.Fatal("panic expected")
	}
}

// IsErr fails unless got is of the kind of want. A nil want expects no
// error at all.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Fatalf("want no error, got %+v", got)
		}
		return
	}
	if !errors.Is(got, want) {
		t.Fatalf("want %q, got %+v", want, got)
	}
}

// FieldErrors fails unless err reports exactly the given field paths, each
// with an error of the given kind. An empty want expects no field errors.
func FieldErrors(t Tester, err error, want map[string]*errors.Error) {
	t.Helper()
	got := errors.Fields(err)
	sort.Strings(got)
	paths := make([]string, 0, len(want))
	for p := range want {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	if strings.Join(paths, ",") != strings.Join(got, ",") {
		t.Fatalf("want fields %q, got %q: %v", paths, got, err)
	}
	for path, kind := range want {
		for _, e := range errors.FieldErrors(err, path) {
			if !kind.Is(e) {
				t.Fatalf("field %s: want %q, got %q", path, kind, e)
			}
		}
	}
}
