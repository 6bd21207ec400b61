// Package dag is a small directed-graph toolkit shared by the reference
// resolver and the sequencer.
//
// Nodes are string ids kept in insertion order, and edges remember the order
// they were added in, so every traversal is deterministic for a given
// sequence of AddNode and AddEdge calls. Sort performs a Kahn topological
// sort whose ready set is ordered by a caller-supplied comparison. Cycles
// returns the strongly connected components that contain a cycle, each one
// exactly once.
package dag
