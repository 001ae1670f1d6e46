// Package alloc provides payload accounting for decoded constant pools.
//
// # Overview
//
// Go manages the memory of decoded constants, but the decoder still treats
// every payload as owned by exactly one pool: it is reserved once when the
// constant is stored and released once when the pool is torn down, on both
// success and failure paths. Implementations of types.Allocator observe
// that lifecycle.
//
// # Implementations
//
// Heap: accepts every allocation; the default when no limits apply.
//
// Budget: refuses allocations once the summed payload size would exceed a
// byte budget. A refusal surfaces as an AllocationFailure from the decoder.
// One Budget serves one decode at a time.
//
// Tracking: records every Alloc and Release per slot and reports leaks and
// double releases. Used by tests to prove ownership discipline.
package alloc
