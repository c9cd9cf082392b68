// Package sfatrie provides exact similarity search over z-normalized time series.
//
// Series are summarized as symbolic words (SFA by default, SAX optionally, or
// any symbolic.Transform) and organized in a trie keyed by one symbol per
// level. Searches traverse the trie best-first by an admissible lower bound,
// so results are exact: pruning never discards a true answer.
//
// # Quick Start
//
// Whole matching, one unit per series:
//
//	ctx := context.Background()
//	ix, _ := sfatrie.BuildWholeMatching(ctx, data, sfatrie.WithNormalization())
//	matches, costs, _ := ix.KNN(ctx, query, 10)
//	for _, m := range matches {
//	    fmt.Println(m.ID, m.Distance)
//	}
//	fmt.Println("exact distances computed:", costs.EntriesExamined)
//
// Subsequence matching, one unit per sliding window of a long series:
//
//	ix, _ := sfatrie.BuildSubsequenceMatching(ctx, raw, 256)
//	matches, _, _ := ix.KNN(ctx, query, 1) // matches[0].ID is the window offset
//
// Range queries return a roaring bitmap of IDs:
//
//	ids, _, _ := ix.Range(ctx, query, 2.5)
//	fmt.Println(ids.GetCardinality())
//
// # Distances
//
// Distances are Euclidean distances between z-normalized units. Subsequence
// windows are normalized with their own mean and standard deviation; windows
// with a standard deviation below series.MinStd normalize to zeros.
//
// # Configuration
//
// Word length, alphabet size, and leaf threshold are set with functional
// options:
//
//	ix, _ := sfatrie.BuildWholeMatching(ctx, data,
//	    sfatrie.WithWordLength(16),
//	    sfatrie.WithAlphabetSize(8),
//	    sfatrie.WithLeafThreshold(50),
//	)
//
// # Observability
//
// Builds and searches report to a MetricsCollector and a structured Logger.
// Every search also returns its own IOCosts; the index keeps running totals
// that ResetIOCosts zeroes.
package sfatrie
