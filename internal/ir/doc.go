// Package ir defines the block-structured stack IR, lowers checked syntax
// trees into it, and validates, prints and packs the result.
//
// A function is a list of labelled blocks; the first is the entry. Control
// leaves a block through jump or return, or falls through to the next block
// in layout order, which is the order the generator started them in.
package ir
