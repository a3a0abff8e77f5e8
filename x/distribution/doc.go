/*
Package distribution implements cascading donations.

A node is a named distribution unit with its own account on a token
ledger and an ordered list of recipients. Every donation to a node is
pulled from the donor and immediately split between the recipients, each
receiving a fixed percentage of the node balance rounded down. A recipient
can be a plain account or another node, in which case the node continues
the distribution with its own list of recipients.

All the transfers of a single donation are executed depth first within
one transaction. A node can appear only once in a single cascade. Reaching
a node for the second time aborts the whole donation with
ErrCircularCascade and no transfer is persisted.

Nodes act on the ledger using their own condition, see NodeCondition.
*/
package distribution
