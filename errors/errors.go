package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Generic errors, used by the host, the stores and every extension.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	// ErrMsg is returned by message validation.
	ErrMsg = Register(4, "invalid message")
	// ErrModel is returned by the validation of a stored model.
	ErrModel     = Register(5, "invalid model")
	ErrDuplicate = Register(6, "duplicate")
	ErrEmpty     = Register(9, "value is empty")
	ErrState     = Register(10, "invalid state")
	ErrType      = Register(11, "invalid type")
	// ErrInsufficientAmount is raised by the ledger when a balance or an
	// allowance is too small.
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrOverflow           = Register(15, "an operation cannot be completed due to value overflow")
	ErrDatabase           = Register(16, "database error")
	ErrEncoding           = Register(17, "encoding error")
	ErrIteratorDone       = Register(18, "iterator done")
	ErrMetadata           = Register(19, "invalid metadata")
)

// Distribution errors.
var (
	// ErrConfiguration is returned when a node is used before its
	// configuration (ledger reference, recipients) was initialized.
	ErrConfiguration = Register(30, "node not configured")

	// ErrCircularCascade is returned when a node address appears twice in
	// the chain of nodes visited by a single donation.
	ErrCircularCascade = Register(31, "circular cascade")

	// ErrRegistryRead is returned when a stored recipient list cannot be
	// decoded or is invalid. It signals state corruption.
	ErrRegistryRead = Register(32, "malformed recipient registry")
)

// ErrPanic wraps a recovered panic. Its message can contain anything, so
// it is always redacted outside of debug mode.
var ErrPanic = Register(111222, "panic")

// registered holds every code in use. Code 1 belongs to errors that were
// not registered and is never handed out.
var registered = map[uint32]*Error{1: nil}

// Register declares a new kind of error. It panics if the code is taken,
// so call it only when declaring package level variables.
func Register(code uint32, description string) *Error {
	if prev, ok := registered[code]; ok {
		name := "reserved"
		if prev != nil {
			name = prev.desc
		}
		panic(fmt.Sprintf("error code %d is already used by %q", code, name))
	}
	e := &Error{code: code, desc: description}
	registered[code] = e
	return e
}

// Error is a kind of error. Runtime errors wrap one of the registered
// kinds so that they keep a stable code when returned to a client.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

// Code returns the registered code.
func (e Error) Code() uint32 { return e.code }

// Is reports whether err is of this kind. Wrapped errors and groups
// created with Append are inspected as well. A nil kind matches only nil
// errors, including typed nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		if group, ok := err.(unpacker); ok {
			for _, member := range group.Unpack() {
				if e.Is(member) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Is reports whether err is of the target kind. Unlike the method, it
// accepts any target and falls back to the standard library comparison.
func Is(err, target error) bool {
	if kind, ok := target.(*Error); ok {
		return kind.Is(err)
	}
	return stderrors.Is(err, target)
}

// Wrap adds context to err. The innermost wrap records a stack trace.
// Wrapping nil returns nil, so the result of a call can be wrapped
// unconditionally:
//
//	return errors.Wrap(ledger.Transfer(...), "payout")
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error  { return e.parent }
func (e *wrappedError) Unwrap() error { return e.parent }

// Format adds the recorded stack trace when printed with %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.Error())
	if verb != 'v' || !s.Flag('+') {
		return
	}
	if st := stackTrace(e); st != nil {
		fmt.Fprintf(s, "%+v", st.StackTrace())
	}
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found when unwrapping err.
func stackTrace(err error) stackTracer {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
