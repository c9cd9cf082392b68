// Package symbolic turns normalized series into short symbolic words.
//
// A Transform maps a series of length n to WordLength approximation
// coefficients and quantizes each coefficient into one of AlphabetSize
// symbols. Every implementation guarantees two properties the index relies
// on for exact search:
//
//   - the squared distance between the coefficients of two series never
//     exceeds their squared Euclidean distance, and
//   - every coefficient lies inside the reconstruction interval
//     Bounds(pos, symbol) of the symbol it is quantized to.
//
// # SFA
//
// Symbolic Fourier Approximation keeps the first non-DC Fourier
// coefficients and learns one set of breakpoints per coefficient from
// training data (equi-depth binning):
//
//	sfa, err := symbolic.TrainSFA(samples, 8, 4)
//	word := symbolic.Encode(sfa, z)
//
// # SAX
//
// Symbolic Aggregate approXimation uses piecewise aggregate means and the
// quantiles of the standard normal distribution. It needs no training:
//
//	sax, err := symbolic.NewSAX(256, 8, 4)
package symbolic
