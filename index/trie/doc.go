// Package trie implements an exact similarity index over z-normalized series.
//
// Every indexable unit is reduced to a symbolic word by a symbolic.Transform
// and inserted into a trie that branches on one word position per level.
// Leaves hold up to LeafThreshold entries; an overflowing leaf becomes an
// inner node keyed by the next word position. Leaves at the full word length
// cannot split and grow without bound.
//
// Every node keeps an envelope: the smallest and largest symbol seen at each
// word position below it. The squared distance from the query's own
// coefficients to the envelope's reconstruction cell never exceeds the true
// squared distance to any series below the node, so searches visit nodes
// best-first by that bound and prune whole subtrees without losing answers.
// Candidates that survive are confirmed against the raw samples with an
// early-abandoning distance.
//
// # Building
//
//	sfa, _ := symbolic.TrainSFA(sample, 8, 4)
//	idx, err := trie.BuildWholeMatching(data, sfa, func(o *trie.Options) {
//	    o.LeafThreshold = 10
//	})
//
//	idx, err := trie.BuildSubsequenceMatching(long, 256, sfa)
//
// # Searching
//
//	matches, costs, err := idx.SearchKNN(query, 10)
//	ids, costs, err := idx.SearchRange(query, 2.5)
//
// An Index is built once and is read-only afterwards; concurrent searches are
// safe, building is not.
package trie
