/*
Package cash implements a fungible token ledger.

Every token is identified by its ticker and has an issuer that is allowed
to mint it. Accounts hold a balance per token, and every account that
authorizes a transfer or an approval has a nonce that must be provided with
the call and is incremented on success.

The ledger is consumed by the distribution extension through TokenLedger,
a view of the ledger restricted to a single token.
*/
package cash
