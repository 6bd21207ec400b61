// Package workpool runs independent jobs on a bounded set of goroutines and
// returns their results in input order.
package workpool
