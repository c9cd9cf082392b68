// Package series provides the sample-space primitives the indexes are built on.
//
// # Normalization
//
//	mean, std := series.MeanStd(x)
//	z := series.ZNormalize(nil, x)
//
// # Sliding Windows
//
// Mean and standard deviation of every window of a long series are computed
// in a single linear pass with a running sum and sum of squares:
//
//	means, stds := series.SlidingStats(x, 256)
//
// # Distance
//
// All distances are squared Euclidean. The early-abandoning variants stop as
// soon as the partial sum exceeds a bound:
//
//	d, ok := series.SquaredL2EarlyAbandon(q, c, bound)
//	d, ok := series.SquaredL2WindowEarlyAbandon(q, x[off:off+w], mean, std, bound)
package series
