package di

import "strconv"

// Key identifies a logical dependency slot.
//
// Keys are typically defined as package-level constants to avoid typos.
// A key must be stable and unique per logical dependency; reusing one key
// for two unrelated dependencies is a caller error and is not detected.
//
// Example:
//
//	const (
//	  KeyDB     di.Key = "db"
//	  KeyLogger di.Key = "logger"
//	)
type Key string

// NewKey converts a string into a Key.
//
// This is a small convenience for defining keys (often as constants).
func NewKey(name string) Key { return Key(name) }

// NilProducerError is the panic value raised when a builder or override is
// constructed with a nil producer.
type NilProducerError struct{ Key Key }

// Error implements the error interface.
func (e NilProducerError) Error() string {
	// Example: di: nil producer for key "db"
	return "di: nil producer for key " + strconv.Quote(string(e.Key))
}

// NilTransformError is the panic value raised when Wrap is called with a nil
// transform, or when a transform returns a nil producer.
type NilTransformError struct{ Key Key }

// Error implements the error interface.
func (e NilTransformError) Error() string {
	// Example: di: nil transform for key "db"
	return "di: nil transform for key " + strconv.Quote(string(e.Key))
}

// TypeMismatchError is the panic value raised when a key resolves to a stored
// builder of a different value type than the caller declared.
//
// This is always a programming error (one string key reused across two
// types), never a recoverable condition, so the engine fails loudly instead
// of returning a silently wrong value.
type TypeMismatchError struct {
	// Key is the dependency key that was resolved.
	Key Key

	// GotType is reflect.TypeOf(stored).String() for the stored builder.
	GotType string

	// WantType is reflect.TypeOf(requested).String() for the caller's builder.
	WantType string
}

// Error implements the error interface.
func (e TypeMismatchError) Error() string {
	// Example: di: builder for key "db" has wrong type (di.Builder[string]), want di.Builder[int]
	return "di: builder for key " + strconv.Quote(string(e.Key)) +
		" has wrong type (" + e.GotType + "), want " + e.WantType
}
