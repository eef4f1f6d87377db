// Package vm executes IR functions.
//
// Execution is driven by an explicit (function, block, ip) program counter
// per frame, so language-level recursion never grows the Go stack. Blocks
// run in order: when a block's instructions run out, control falls through
// to the next block, and running past the last block returns no value.
package vm
