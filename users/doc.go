// Package users defines the user record model shared by the storage adapter, the
// cache adapter and the record coordinator.
//
// # Records
//
// A User is the fully resolved record returned to callers: city and country are
// labels, never lookup identifiers. A PartialUser carries optional fields for
// PATCH-style updates; a nil field means "leave unchanged".
//
// # Errors
//
// The package owns the error taxonomy used across the module:
//
//   - *ValidationError: malformed input, reported before any write
//   - ErrDuplicateEmail, ErrDuplicateMobile: uniqueness conflicts
//   - ErrNoFields: an update that names no updatable field
//   - ErrCreateFailed: the store accepted an insert but returned no row
//
// Absence is not an error. Lookups that match nothing return a nil *User and a
// nil error.
//
// # Payload decoding
//
// DecodeUser and DecodePartial turn an already parsed JSON object into typed
// records. Only the keys listed in UpdatableFields are read; every other key is
// dropped, which keeps caller supplied keys away from statement construction.
// A present value that is falsy (null, false, 0) and not a string is treated
// as absent. Strings are always kept, including "".
//
// In particular null never clears a field: {"city": null} leaves the city
// unchanged. To clear mobile, city or country send an empty string instead.
package users
