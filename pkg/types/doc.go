// Package types defines the public data model shared by the class-file
// decoder and its callers: constant pool tags and entry variants, the
// constant pool itself, the decoded ClassFile, typed errors and decode
// options.
//
// Design goals:
//   - Closed tag enumeration; unknown tags are an explicit error kind.
//   - The constant pool is the sole owner of its entries.
//   - Paranoid bounds checking on every index; never panic on malformed input.
//   - Typed errors with stable categories (truncated/unknown tag/reference/...).
//
// This package has no dependencies beyond the standard library.
package types
