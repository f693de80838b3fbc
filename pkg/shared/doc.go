// Package shared provides runtime value predicates and route path normalization
// used across routekit.
//
// All functions are pure and total: they never panic, never return errors and
// never mutate their input. Normalization is idempotent - applying it multiple
// times produces the same result.
//
// Value model:
//   - Undefined: the untyped nil interface (no value supplied at all)
//   - Null: the Null sentinel or a typed nil reference (pointer, map, slice, func, chan)
//   - Object: a non-null map, slice, array, struct, pointer or chan
//   - Plain object: a string-keyed map or struct whose type chain carries no
//     exported methods (unexported methods are invisible to reflection)
//
// Canonical path: starts with a single "/", contains no "//", and does not end
// with "/" unless it is the root "/".
package shared
