/*
Package errors defines the error kinds shared by the cascade host and its
extensions, and the helpers to wrap, group and report them.

Every kind carries a registered code that is returned to clients together
with the error message. Distribution failures use their own kinds
(ErrConfiguration, ErrCircularCascade, ErrRegistryRead) while ledger
failures surface as ErrInsufficientAmount, ErrUnauthorized or ErrNotFound
and travel unchanged through every node of a cascade.

Errors are never created from scratch. Wrap a kind where the failure is
detected:

	return errors.Wrapf(errors.ErrCircularCascade, "node %q", name)

The first wrap records a stack trace, printed with %+v. Validation code
reports problems per field with Field and Nest, and combines them with
Append so that a client learns about every invalid field at once.
*/
package errors
