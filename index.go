package hmsearch

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hmsearch/bitpack"
	"github.com/hupe1980/hmsearch/internal/core"
	"github.com/hupe1980/hmsearch/internal/scratch"
	"github.com/hupe1980/hmsearch/odv"
	"github.com/hupe1980/hmsearch/vertical"
)

// ProperBuckets returns the number of buckets B that guarantees every id
// within Hamming distance R of a query is found: B = ceil((R+2)/2),
// computed without floating point as (R+3)/2. Pass its result as Build's
// bucket-count argument, and Search with the same radius R afterward.
func ProperBuckets(radius int) int {
	return (radius + 3) / 2
}

// Index answers Hamming-range queries over a fixed-length, fixed-alphabet
// dictionary. The zero value is not usable; construct with New. An Index
// is immutable and safe for concurrent Search calls once Build returns
// successfully; it must not be mutated (re-Build) concurrently with, or
// after, any Search.
type Index struct {
	opts options

	built      bool
	length     int
	alphabet   core.Symbol
	buckets    int
	boundaries []int
	n          int

	keys   [][]core.Symbol
	odvs   []*odv.Index
	vkeys  *vertical.Keys
	packed *bitpack.Vector
}

// New constructs an unbuilt Index configured with the given options.
func New(opts ...Option) *Index {
	return &Index{opts: applyOptions(opts)}
}

// Build indexes N keys, each of length length over an alphabet of size
// alphabet, partitioned into buckets contiguous position ranges (see
// ProperBuckets). Build may be called at most once per Index.
func (idx *Index) Build(keys [][]uint32, length int, alphabet uint32, buckets int) error {
	start := time.Now()
	err := idx.build(keys, length, alphabet, buckets)
	idx.opts.logger.LogBuild(len(keys), length, alphabet, buckets, time.Since(start), err)
	idx.opts.metricsCollector.RecordBuild(len(keys), time.Since(start), err)
	return err
}

func (idx *Index) build(keys [][]core.Symbol, length int, alphabet core.Symbol, buckets int) error {
	if alphabet == core.ReservedAlphabet {
		return ErrReservedAlphabet
	}
	if len(keys) == 0 {
		return ErrEmptyDictionary
	}
	if length > 64 {
		return ErrKeyTooLong
	}
	if buckets < 1 {
		return ErrRadiusMismatch
	}

	for i, key := range keys {
		if len(key) != length {
			return &ErrKeyLengthMismatch{Expected: length, Actual: len(key)}
		}
		for p, s := range key {
			if s >= alphabet {
				return &ErrSymbolOutOfRange{KeyIndex: i, Position: p, Symbol: s, Alphabet: alphabet}
			}
		}
	}

	boundaries := partitionBoundaries(length, buckets)
	odvs := make([]*odv.Index, buckets)

	buildBucket := func(b int) error {
		lo, hi := boundaries[b], boundaries[b+1]
		bucketKeys := make([][]core.Symbol, len(keys))
		for i, key := range keys {
			bucketKeys[i] = key[lo:hi]
		}
		bucketIdx, err := odv.Build(bucketKeys, alphabet)
		if err != nil {
			return translateOdvError(err)
		}
		odvs[b] = bucketIdx
		return nil
	}

	if idx.opts.parallelBuild {
		g := new(errgroup.Group)
		for b := 0; b < buckets; b++ {
			b := b
			g.Go(func() error { return buildBucket(b) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for b := 0; b < buckets; b++ {
			if err := buildBucket(b); err != nil {
				return err
			}
		}
	}

	var vkeys *vertical.Keys
	var packed *bitpack.Vector
	if idx.opts.vertical {
		vk, err := vertical.Build(keys, alphabet)
		if err != nil {
			return translateVerticalError(err)
		}
		vkeys = vk
	} else {
		width := bitpack.WidthFor(maxSymbolValue(alphabet))
		packed = bitpack.NewWithWidth(uint64(len(keys))*uint64(length), width)
		for i, key := range keys {
			packed.CopyFromSymbols(uint64(i)*uint64(length), key)
		}
	}

	idx.length = length
	idx.alphabet = alphabet
	idx.buckets = buckets
	idx.boundaries = boundaries
	idx.n = len(keys)
	idx.keys = keys
	idx.odvs = odvs
	idx.vkeys = vkeys
	idx.packed = packed
	idx.built = true
	return nil
}

// Search returns every id within radius of query to sink, plus the number
// of candidates that passed the enhanced filter and were sent on to exact
// distance verification (whether or not that verification succeeded),
// for cost accounting. radius must match the bucket count Build was
// called with (ProperBuckets(radius) == idx.Buckets()).
func (idx *Index) Search(query []uint32, radius int, sink IdSink) (int, error) {
	start := time.Now()
	verified, err := idx.search(query, radius, sink)
	idx.opts.logger.LogSearch(radius, verified, time.Since(start), err)
	idx.opts.metricsCollector.RecordSearch(verified, time.Since(start), err)
	return verified, err
}

func (idx *Index) search(query []core.Symbol, radius int, sink IdSink) (int, error) {
	if !idx.built {
		return 0, ErrNotBuilt
	}
	if len(query) != idx.length {
		return 0, &ErrKeyLengthMismatch{Expected: idx.length, Actual: len(query)}
	}
	for p, s := range query {
		if s >= idx.alphabet {
			return 0, &ErrSymbolOutOfRange{KeyIndex: -1, Position: p, Symbol: s, Alphabet: idx.alphabet}
		}
	}
	if ProperBuckets(radius) != idx.buckets {
		return 0, ErrRadiusMismatch
	}

	q := scratch.Get()
	defer scratch.Put(q)
	q.EnsureCapacity(idx.n)

	for b, bucketIdx := range idx.odvs {
		lo, hi := idx.boundaries[b], idx.boundaries[b+1]
		sigBuf := q.SigScratch(hi - lo)
		bucketIdx.Search(query[lo:hi], sigBuf, func(id core.ID) {
			q.AddBucketHit(id)
		})
		q.FinishBucket()
	}

	var queryPlanes []uint64
	if idx.opts.vertical {
		queryPlanes = idx.vkeys.QueryPlanes(query)
	}

	verified := 0
	for _, id := range q.Dirty() {
		k := q.K(id)
		flag0, flag1 := q.Flags(id)
		pass := passesEnhancedFilter(k, flag0, flag1, radius)
		idx.opts.logger.LogFilter(id, k, pass)
		if !pass {
			continue
		}
		verified++

		var within bool
		if idx.opts.vertical {
			within = vertical.WithinRadius(idx.vkeys.Planes(id), queryPlanes, radius)
		} else {
			within = idx.verifyPacked(id, query, radius)
		}
		if within {
			sink.Accept(id)
		}
	}

	return verified, nil
}

func (idx *Index) verifyPacked(id core.ID, query []core.Symbol, radius int) bool {
	base := uint64(id) * uint64(idx.length)
	dist := 0
	for p := 0; p < idx.length; p++ {
		if idx.packed.Get(base+uint64(p)) != uint64(query[p]) {
			dist++
			if dist > radius {
				return false
			}
		}
	}
	return true
}

// Length returns L, the shared key length.
func (idx *Index) Length() int { return idx.length }

// AlphabetSize returns A.
func (idx *Index) AlphabetSize() uint32 { return idx.alphabet }

// Buckets returns B, the number of position-range buckets.
func (idx *Index) Buckets() int { return idx.buckets }

// VerticalLevels returns V, the number of bit-planes per key, or 0 if the
// index was built with WithVerticalKeys(false).
func (idx *Index) VerticalLevels() int {
	if idx.vkeys == nil {
		return 0
	}
	return idx.vkeys.PlaneCount()
}

// Len returns N, the number of indexed keys.
func (idx *Index) Len() int { return idx.n }

// partitionBoundaries returns B+1 cut points p_0=0 .. p_B=length, with
// p_{b+1} - p_b = floor((length+b)/B), distributing the remainder across
// the later buckets.
func partitionBoundaries(length, buckets int) []int {
	p := make([]int, buckets+1)
	for b := 0; b < buckets; b++ {
		p[b+1] = p[b] + (length+b)/buckets
	}
	return p
}

func maxSymbolValue(alphabet core.Symbol) uint64 {
	if alphabet == 0 {
		return 0
	}
	return uint64(alphabet - 1)
}

func translateOdvError(err error) error {
	switch e := err.(type) {
	case *odv.ErrSymbolOutOfRange:
		return &ErrSymbolOutOfRange{KeyIndex: e.KeyIndex, Position: e.Position, Symbol: e.Symbol, Alphabet: e.Alphabet, cause: err}
	}
	if err == odv.ErrReservedAlphabet {
		return ErrReservedAlphabet
	}
	if err == odv.ErrTooManySignatures {
		return ErrTooManySignatures
	}
	return err
}

func translateVerticalError(err error) error {
	if err == vertical.ErrKeyTooLong {
		return ErrKeyTooLong
	}
	return err
}
