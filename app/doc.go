/*
Package app contains the building blocks that turn extension handlers into
a running service.

A Router dispatches messages to the handlers registered by the extensions,
ChainDecorators wraps the router with the common middleware and a Host
executes transactions against a CommitStore. Every transaction runs in its
own cache, so a failing donation leaves no trace in the state.
*/
package app
