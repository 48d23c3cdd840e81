// Package model holds the typed xAPI entities produced and consumed by the
// converters in package normalizer. Values are constructed fresh per
// conversion and treated as immutable; optional fields are pointers, nil
// slices/maps or empty strings when absent.
package model
