// Package abi provides internal arithmetic and naming helpers for the
// transcoder: overflow-checked size math, alignment, and Go type names for
// error messages.
package abi
