package hmsearch

// Stats is a point-in-time snapshot of an Index's structural size,
// useful for logging and for tests asserting the bucket-partition law.
type Stats struct {
	Length           int
	AlphabetSize     uint32
	Buckets          int
	Keys             int
	VerticalLevels   int
	BucketLengths    []int
	BucketSignatures []uint32
	BucketTableSizes []int
}

// Stats returns a snapshot of idx's current structural size. Calling it
// before Build completes returns a zero Stats.
func (idx *Index) Stats() Stats {
	if !idx.built {
		return Stats{}
	}
	lengths := make([]int, idx.buckets)
	sigs := make([]uint32, idx.buckets)
	tableSizes := make([]int, idx.buckets)
	for b, bucketIdx := range idx.odvs {
		lengths[b] = idx.boundaries[b+1] - idx.boundaries[b]
		sigs[b] = bucketIdx.NumSignatures()
		tableSizes[b] = bucketIdx.TableSize()
	}
	return Stats{
		Length:           idx.length,
		AlphabetSize:     idx.alphabet,
		Buckets:          idx.buckets,
		Keys:             idx.n,
		VerticalLevels:   idx.VerticalLevels(),
		BucketLengths:    lengths,
		BucketSignatures: sigs,
		BucketTableSizes: tableSizes,
	}
}
