package sfatrie

import (
	"log/slog"

	"github.com/hupe1980/sfatrie/symbolic"
)

type options struct {
	wordLength         int
	alphabetSize       int
	leafThreshold      int
	transform          symbolic.Transform
	sax                bool
	trainingSampleSize int
	normalize          bool
	metricsCollector   MetricsCollector
	logger             *Logger
}

// Option configures index construction.
type Option func(*options)

// WithWordLength sets the number of symbols per word, which is also the
// maximum depth of the trie. Default 8.
func WithWordLength(l int) Option {
	return func(o *options) {
		o.wordLength = l
	}
}

// WithAlphabetSize sets the number of symbols per word position (2..256).
// Default 4.
func WithAlphabetSize(a int) Option {
	return func(o *options) {
		o.alphabetSize = a
	}
}

// WithLeafThreshold sets the number of entries a leaf holds before it splits.
// Default 100.
func WithLeafThreshold(t int) Option {
	return func(o *options) {
		o.leafThreshold = t
	}
}

// WithTransform supplies the symbolic transform used to key the trie.
// Word length and alphabet size are taken from t; the other transform
// options are ignored.
//
// By default an SFA transform is trained on a sample of the input.
func WithTransform(t symbolic.Transform) Option {
	return func(o *options) {
		o.transform = t
	}
}

// WithSAX keys the trie with SAX words instead of trained SFA words.
// SAX needs no training.
func WithSAX() Option {
	return func(o *options) {
		o.sax = true
	}
}

// WithTrainingSampleSize caps the number of series (or windows) the default
// SFA transform learns its breakpoints from. Default 10,000.
func WithTrainingSampleSize(n int) Option {
	return func(o *options) {
		o.trainingSampleSize = n
	}
}

// WithNormalization makes the index z-normalize a copy of every input series
// and every query. Without it whole-matching input and all queries must
// already be z-normalized.
func WithNormalization() Option {
	return func(o *options) {
		o.normalize = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &sfatrie.BasicMetricsCollector{}
//	ix, _ := sfatrie.BuildWholeMatching(ctx, data, sfatrie.WithMetricsCollector(metrics))
//	// ... perform searches ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging (uses NoopLogger).
//
// Example:
//
//	logger := sfatrie.NewJSONLogger(slog.LevelInfo)
//	ix, _ := sfatrie.BuildWholeMatching(ctx, data, sfatrie.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel configures a text logger at the given level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		wordLength:         8,
		alphabetSize:       4,
		leafThreshold:      100,
		trainingSampleSize: 10000,
		metricsCollector:   NoopMetricsCollector{},
		logger:             NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
