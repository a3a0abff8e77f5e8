/*
Package cascade defines the interfaces shared by every part of the
cascading distribution service: storage, messages, handlers, addresses and
the request context.

Extensions live under x/. The distribution extension implements the
recursive fan-out of donations between nodes, the cash extension is the
reference token ledger those nodes settle in. The app package ties handlers
together and runs every message inside a single atomic transaction.
*/
package cascade
