/*
Package x contains the extensions of cascade

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together by the app package to construct
a host.

x/cash is the token ledger every distribution node moves value
through, x/distribution implements the cascading fan-out itself.
This package holds what they share: authentication of the conditions
that fulfill a transaction.

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `cash.TransferMsg` in place of `cash.CashTransferMsg`.
*/
package x
