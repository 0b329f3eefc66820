// Package core defines the shared types used across the NLog framework.
//
// It provides the Level type for severity filtering, the Entry type that
// represents a single log event, the Field type for zero-allocation
// structured key-value pairs, and the Message payloads an Entry can
// carry.
//
// Entry objects are pooled via sync.Pool to keep the hot path
// allocation-free. Callers get an Entry with GetEntry and must
// return it with PutEntry once the handler has consumed it.
//
// Message is a closed set of two variants. TextMessage is a plain
// string; *MapMessage is an immutable, key-sorted set of string pairs.
// Consumers never type-switch on the payload: they ask for its
// key/value view through KeyValues (or Entry.MapData) and skip the
// entry when there is none.
//
// MapMessage renders as {k1=v1, k2=v2} in ascending key order. The
// rendering is a pure function of the contents, which is what lets the
// pattern converters cache it.
package core
