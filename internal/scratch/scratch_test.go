package scratch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingleBucketFlags(t *testing.T) {
	q := Get()
	defer Put(q)
	q.EnsureCapacity(10)

	q.AddBucketHit(3)
	q.AddBucketHit(3)
	q.AddBucketHit(3) // 3 hits in this bucket -> strong (flag 0)
	q.AddBucketHit(7) // 1 hit -> weak (flag 1)
	q.FinishBucket()

	assert.Equal(t, 1, q.K(3))
	f0, f1 := q.Flags(3)
	assert.EqualValues(t, 0, f0)
	assert.EqualValues(t, -1, f1)

	assert.Equal(t, 1, q.K(7))
	f0, f1 = q.Flags(7)
	assert.EqualValues(t, 1, f0)
	assert.EqualValues(t, -1, f1)

	assert.Equal(t, 0, q.K(5))
	assert.ElementsMatch(t, []uint32{3, 7}, q.Dirty())
}

func TestMultiBucketKeepsFirstTwoFlagsOnly(t *testing.T) {
	q := Get()
	defer Put(q)
	q.EnsureCapacity(5)

	// bucket 0: weak hit for id 1
	q.AddBucketHit(1)
	q.FinishBucket()

	// bucket 1: strong hit for id 1
	q.AddBucketHit(1)
	q.AddBucketHit(1)
	q.AddBucketHit(1)
	q.FinishBucket()

	// bucket 2: weak hit for id 1 again -- must not overwrite flag1
	q.AddBucketHit(1)
	q.FinishBucket()

	assert.Equal(t, 3, q.K(1))
	f0, f1 := q.Flags(1)
	assert.EqualValues(t, 1, f0)
	assert.EqualValues(t, 0, f1)
}

func TestBucketLocalStateDoesNotLeakAcrossBuckets(t *testing.T) {
	q := Get()
	defer Put(q)
	q.EnsureCapacity(5)

	q.AddBucketHit(2)
	q.AddBucketHit(2)
	q.FinishBucket()

	// a fresh bucket with no hits for id 2 must not count towards it.
	q.FinishBucket()

	assert.Equal(t, 1, q.K(2))
}

func TestResetClearsCandidateState(t *testing.T) {
	q := Get()
	q.EnsureCapacity(5)
	q.AddBucketHit(1)
	q.AddBucketHit(4)
	q.FinishBucket()
	q.Reset()

	assert.Empty(t, q.Dirty())
	assert.Equal(t, 0, q.K(1))
	assert.Equal(t, 0, q.K(4))
	f0, f1 := q.Flags(1)
	assert.EqualValues(t, -1, f0)
	assert.EqualValues(t, -1, f1)

	// reused after reset without reallocating capacity
	q.AddBucketHit(1)
	q.FinishBucket()
	assert.Equal(t, 1, q.K(1))
	Put(q)
}

func TestEnsureCapacityPreservesExistingState(t *testing.T) {
	q := Get()
	defer Put(q)
	q.EnsureCapacity(4)
	q.AddBucketHit(2)
	q.FinishBucket()
	q.EnsureCapacity(100)
	assert.Equal(t, 1, q.K(2))
}

func TestSigScratchReusesBackingArray(t *testing.T) {
	q := Get()
	defer Put(q)

	a := q.SigScratch(4)
	assert.Len(t, a, 4)
	b := q.SigScratch(2)
	assert.Len(t, b, 2)
	c := q.SigScratch(4)
	assert.Len(t, c, 4)
}

func TestPoolRoundTrip(t *testing.T) {
	q := Get()
	q.EnsureCapacity(3)
	q.AddBucketHit(0)
	q.FinishBucket()
	Put(q)

	q2 := Get()
	defer Put(q2)
	assert.Empty(t, q2.Dirty())
}
