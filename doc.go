// Package hmsearch implements HmSearch, an index that answers Hamming-range
// queries over a static dictionary of fixed-length symbol strings.
//
// Given a query string q of length L over an alphabet of size A and a
// radius R, the index returns every dictionary id i whose key k_i satisfies
// Hamming(k_i, q) <= R.
//
// # Architecture
//
// The dictionary's key positions are partitioned into B = ProperBuckets(R)
// contiguous ranges. Each range is indexed independently by a one-deletion-
// variant (ODV) signature table (package odv): two strings agree on at
// least one ODV signature iff their Hamming distance restricted to that
// range is <= 1. Searching a query therefore recovers, per bucket, the set
// of candidate ids whose range-restricted distance is small.
//
// Search aggregates per-bucket hit counts into a strong/weak flag per
// candidate, applies the "enhanced filter" (a pigeonhole argument that
// rejects candidates whose bucket evidence cannot possibly add up to a true
// match within R), and verifies survivors against a column-major bit-plane
// store (package vertical) that computes exact Hamming distance with an
// early exit once the running distance exceeds R.
//
// # Lifecycle
//
// An Index is built once via Build and is immutable and safe for
// concurrent Search calls thereafter; all per-query mutable state lives on
// a pooled scratch object, never on the Index itself.
//
// # Quick start
//
//	idx := hmsearch.New()
//	if err := idx.Build(keys, L, A, hmsearch.ProperBuckets(R)); err != nil {
//		log.Fatal(err)
//	}
//	var got []uint32
//	_, err := idx.Search(query, R, hmsearch.IdSinkFunc(func(id uint32) {
//		got = append(got, id)
//	}))
package hmsearch
