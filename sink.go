package hmsearch

import "github.com/RoaringBitmap/roaring/v2"

// IdSink receives one accepted id per call, in no particular order. A
// single Search call may invoke Accept zero or more times, never
// concurrently.
type IdSink interface {
	Accept(id uint32)
}

// IdSinkFunc adapts a plain function to IdSink.
type IdSinkFunc func(id uint32)

// Accept implements IdSink.
func (f IdSinkFunc) Accept(id uint32) { f(id) }

// RoaringSink accumulates accepted ids into a compressed roaring bitmap,
// useful when the caller wants cheap set operations (union, intersection,
// cardinality) over a large result set instead of a plain slice.
type RoaringSink struct {
	Bitmap *roaring.Bitmap
}

// NewRoaringSink returns a RoaringSink backed by a fresh, empty bitmap.
func NewRoaringSink() *RoaringSink {
	return &RoaringSink{Bitmap: roaring.New()}
}

// Accept implements IdSink.
func (s *RoaringSink) Accept(id uint32) {
	s.Bitmap.Add(id)
}
