package trie

// Options contains configuration options for the trie index.
type Options struct {
	// LeafThreshold is the number of entries a leaf may hold before it splits.
	LeafThreshold int

	// Progress, if set, is called while building with the number of entries
	// inserted so far and the total.
	Progress func(done, total int)
}

// DefaultOptions contains the default configuration options for the trie index.
var DefaultOptions = Options{
	LeafThreshold: 100,
}

// progressInterval is the number of inserts between Progress calls.
const progressInterval = 1 << 12
