// Package universe merges compiled sections into the single symbol table that
// every resolution stage reads.
//
// # Merge
//
// Merge concatenates the symbols, simple references and group records of its
// sections, section by section and in declaration order within each section.
// Each symbol receives a merge ordinal, its position in that concatenation.
// Later stages break ties on the ordinal, so merge order is part of the
// contract. Merge never validates anything; duplicates, dangling references
// and cycles are found by the stages that follow.
//
// # Index
//
// A Universe indexes symbols by (definition name, id). Before deduplication a
// key may map to several rows. Retain builds the post-deduplication universe
// from the surviving rows; it keeps their original ordinals and rebuilds the
// index, after which Lookup returns the single surviving row.
//
// A Universe is not safe for concurrent mutation. Concurrent readers are fine
// once it is built.
package universe
