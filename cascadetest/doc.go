// Package cascadetest provides mocks and helpers for testing handlers,
// decorators and extensions.
package cascadetest
