package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("leveldb: closed")

	cases := map[string]struct {
		err  error
		root error
	}{
		"kind is its own cause": {
			err:  ErrRegistryRead,
			root: ErrRegistryRead,
		},
		"cause of a failure deep in a cascade": {
			err:  Wrapf(Wrapf(ErrCircularCascade, "node %q", "b"), "node %q", "a"),
			root: ErrCircularCascade,
		},
		"field error reveals its kind": {
			err:  Nest("Recipients.0", Field("Name", ErrEmpty, "")),
			root: ErrEmpty,
		},
		"stdlib root": {
			err:  Wrap(std, "store"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatalf("want %v, got %v", tc.root, got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	// A donation that failed two levels below the root node.
	deep := Wrap(Wrap(ErrInsufficientAmount, "payout to grandchild"), "node child")

	cases := map[string]struct {
		kind   *Error
		err    error
		wantIs bool
	}{
		"same kind": {
			kind:   ErrCircularCascade,
			err:    ErrCircularCascade,
			wantIs: true,
		},
		"different kinds": {
			kind:   ErrCircularCascade,
			err:    ErrConfiguration,
			wantIs: false,
		},
		"ledger failure seen through every node": {
			kind:   ErrInsufficientAmount,
			err:    deep,
			wantIs: true,
		},
		"ledger failure is not a cascade failure": {
			kind:   ErrCircularCascade,
			err:    deep,
			wantIs: false,
		},
		"wrapped by pkg/errors": {
			kind:   ErrNotFound,
			err:    errors.Wrap(ErrNotFound, "ledger usd"),
			wantIs: true,
		},
		"stdlib error": {
			kind:   ErrNotFound,
			err:    fmt.Errorf("not found"),
			wantIs: false,
		},
		"nil kind matches nil": {
			kind:   nil,
			err:    nil,
			wantIs: true,
		},
		"nil kind matches typed nil": {
			kind:   nil,
			err:    (*customError)(nil),
			wantIs: true,
		},
		"nil kind does not match an error": {
			kind:   nil,
			err:    ErrRegistryRead,
			wantIs: false,
		},
		"kind does not match nil": {
			kind:   ErrRegistryRead,
			err:    nil,
			wantIs: false,
		},
		"any member of a group": {
			kind:   ErrAmount,
			err:    Append(ErrInput, Wrap(ErrAmount, "recipient 2")),
			wantIs: true,
		},
		"field of a group": {
			kind:   ErrAmount,
			err:    Append(ErrInput, Field("Percentage", ErrAmount, "")),
			wantIs: true,
		},
		"no member of a group": {
			kind:   ErrAmount,
			err:    Append(ErrInput, ErrEmpty),
			wantIs: false,
		},
		"empty group": {
			kind:   ErrAmount,
			err:    Append(nil, nil),
			wantIs: false,
		},
		"nil kind and a group": {
			kind:   nil,
			err:    Append(ErrInput, ErrEmpty),
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantIs {
				t.Fatalf("want %v, got %v", tc.wantIs, got)
			}
		})
	}
}

type customError struct {
}

func (customError) Error() string {
	return "custom error"
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestStdlibCompatibility(t *testing.T) {
	err := Wrap(Wrap(ErrCircularCascade, "node b"), "node a")
	if !stdlib.Is(err, ErrCircularCascade) {
		t.Fatal("stdlib errors.Is must see through wrapping")
	}
	if !Is(err, ErrCircularCascade) {
		t.Fatal("want circular cascade")
	}
	if Is(err, ErrConfiguration) {
		t.Fatal("unexpected configuration error match")
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}

func TestRegisterDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("registering an existing code must panic")
		}
	}()
	Register(ErrCircularCascade.Code(), "again")
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Append(nil, ErrEmpty); err != ErrEmpty {
		t.Fatalf("single error must be returned unchanged, got %v", err)
	}
	err := Append(Append(ErrEmpty, ErrAmount), ErrInput)
	m, ok := err.(multiError)
	if !ok {
		t.Fatalf("want multi error, got %T", err)
	}
	if len(m) != 3 {
		t.Fatalf("nested groups must be flattened, got %d", len(m))
	}
}

func TestInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil is success": {
			err:      nil,
			wantCode: SuccessCode,
			wantLog:  "",
		},
		"registered error keeps its code": {
			err:      Wrap(ErrInsufficientAmount, "balance"),
			wantCode: ErrInsufficientAmount.Code(),
			wantLog:  "balance: insufficient amount",
		},
		"stdlib error is redacted": {
			err:      fmt.Errorf("disk on fire"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
		"stdlib error is exposed in debug mode": {
			err:      fmt.Errorf("disk on fire"),
			debug:    true,
			wantCode: internalCode,
			wantLog:  "disk on fire",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Info(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Fatalf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Fatalf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(Wrap(ErrPanic, "secret"), false); ErrPanic.Is(err) {
		t.Fatal("panic must be redacted")
	}
	if err := Redact(ErrNotFound, false); !ErrNotFound.Is(err) {
		t.Fatal("registered error must be kept")
	}
	if err := Redact(fmt.Errorf("internal"), true); err.Error() != "internal" {
		t.Fatal("debug mode must not redact")
	}
}
