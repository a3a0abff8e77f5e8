/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are protobuf messages that can validate themselves.
* Easy queries for one and iteration over a key prefix.

A bucket never stores an invalid model, and a model read back is
validated again so that corrupted state is detected on load.
*/
package orm
