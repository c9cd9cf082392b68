// Package conv provides safe integer type conversion utilities.
//
// Unit identifiers are uint32; collections whose size does not fit are
// rejected at construction instead of silently wrapping.
package conv
