// Package scratch provides the pooled, per-query mutable state Search
// needs: each candidate's per-bucket hit pattern, reusable across calls so
// a query never allocates on the hot path.
//
// State is cleared lazily via dirty lists instead of being zeroed
// wholesale between searches or between buckets — the same trick a
// visited-set bitset uses, generalized here to carry a count (per
// bucket) and a pair of flags (across buckets) per id instead of a
// single presence bit.
package scratch

import "sync"

// Query holds per-search scratch state: the running bucket-local hit
// count used to classify a bucket as strong/weak evidence for a
// candidate, the first two such flags recorded for each candidate (all
// the enhanced filter ever inspects), and a reusable buffer for building
// ODV signatures.
type Query struct {
	// bucket-local: reset by FinishBucket after each bucket is folded in.
	bucketCount []int32
	bucketDirty []uint32

	// cross-bucket candidate state.
	k     []int32 // number of buckets with >=1 hit, per id
	flag0 []int8  // flag of the first bucket that hit id; -1 if unset
	flag1 []int8  // flag of the second bucket that hit id; -1 if unset
	dirty []uint32

	sigBuf []uint32
}

var pool = sync.Pool{
	New: func() interface{} { return &Query{} },
}

// Get retrieves a Query from the pool, already reset.
func Get() *Query {
	return pool.Get().(*Query)
}

// Put returns a Query to the pool after clearing its candidate state.
func Put(q *Query) {
	q.Reset()
	pool.Put(q)
}

// Reset clears every candidate touched since the last Reset, without
// rescanning the whole (potentially large) backing arrays.
func (q *Query) Reset() {
	for _, id := range q.bucketDirty {
		q.bucketCount[id] = 0
	}
	q.bucketDirty = q.bucketDirty[:0]

	for _, id := range q.dirty {
		q.k[id] = 0
		q.flag0[id] = -1
		q.flag1[id] = -1
	}
	q.dirty = q.dirty[:0]
}

// EnsureCapacity grows the backing arrays to cover ids in [0, n) if needed.
func (q *Query) EnsureCapacity(n int) {
	if len(q.k) >= n {
		return
	}
	grownCount := make([]int32, n)
	copy(grownCount, q.bucketCount)
	q.bucketCount = grownCount

	grownK := make([]int32, n)
	copy(grownK, q.k)
	q.k = grownK

	grownF0 := make([]int8, n)
	grownF1 := make([]int8, n)
	for i := range grownF0 {
		grownF0[i] = -1
		grownF1[i] = -1
	}
	copy(grownF0, q.flag0)
	copy(grownF1, q.flag1)
	q.flag0 = grownF0
	q.flag1 = grownF1
}

// AddBucketHit records one more ODV hit for id within the bucket
// currently being searched.
func (q *Query) AddBucketHit(id uint32) {
	if q.bucketCount[id] == 0 {
		q.bucketDirty = append(q.bucketDirty, id)
	}
	q.bucketCount[id]++
}

// FinishBucket folds every id touched by the current bucket into the
// cross-bucket candidate state: a bucket is strong evidence (flag 0) for
// a candidate if it recorded more than 2 hits there, weak (flag 1)
// otherwise. Only the first two bucket flags per candidate are kept,
// since the enhanced filter never inspects more than that.
// Clears the bucket-local state for reuse by the next bucket.
func (q *Query) FinishBucket() {
	for _, id := range q.bucketDirty {
		c := q.bucketCount[id]
		var flag int8 = 1
		if c > 2 {
			flag = 0
		}

		if q.k[id] == 0 {
			q.dirty = append(q.dirty, id)
		}
		switch q.k[id] {
		case 0:
			q.flag0[id] = flag
		case 1:
			q.flag1[id] = flag
		}
		q.k[id]++

		q.bucketCount[id] = 0
	}
	q.bucketDirty = q.bucketDirty[:0]
}

// K returns the number of buckets that hit id at least once.
func (q *Query) K(id uint32) int { return int(q.k[id]) }

// Flags returns the first two per-bucket flags recorded for id (-1 if
// fewer than that many buckets hit it).
func (q *Query) Flags(id uint32) (flag0, flag1 int8) {
	return q.flag0[id], q.flag1[id]
}

// Dirty returns every candidate id hit by at least one bucket, in the
// order first added. The returned slice aliases internal storage and
// must not be retained past the next Reset.
func (q *Query) Dirty() []uint32 {
	return q.dirty
}

// SigScratch returns a reusable buffer of exactly length n, growing the
// backing array if needed. The contents are undefined; callers (odv.Index
// via signature.Build) always overwrite every element before reading it.
func (q *Query) SigScratch(n int) []uint32 {
	if cap(q.sigBuf) < n {
		q.sigBuf = make([]uint32, n)
	}
	return q.sigBuf[:n]
}
