// Package hwt provides a Hamming weight tree: an exact nearest neighbor and
// radius search index for 128-bit binary features under Hamming distance.
//
// Features are routed by their Hamming weight, then by the weights of their
// halves, quarters and so on down to single bits. Leaves hold features
// directly until they grow past a threshold and split into branches.
// Searches prune whole subtrees by the distance between these weight
// summaries, which never exceeds the true Hamming distance.
//
// # Quick Start
//
//	t := hwt.New()
//	t.Insert(hwt.FeatureFrom64(0b1001))
//	t.Insert(hwt.NewFeature(lo, hi))
//
//	// Exact nearest neighbors, closest first.
//	nn := t.Nearest(query, make([]hwt.Feature, 10))
//
//	// Everything within 8 bits, lazily.
//	for f := range t.SearchRadius(8, query) {
//	    fmt.Println(f)
//	}
//
// # Concurrency
//
// Insert needs exclusive access. All other methods only read and may run in
// parallel with each other. The tree performs no locking; serialize writes
// against reads externally.
//
// # Configuration
//
//	t := hwt.New(
//	    hwt.WithLeafThreshold(512),
//	    hwt.WithLogger(hwt.NewTextLogger(slog.LevelDebug)),
//	    hwt.WithMetricsCollector(&hwt.BasicMetricsCollector{}),
//	)
package hwt
