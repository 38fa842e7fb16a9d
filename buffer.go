package displaylist

import (
	"iter"

	"github.com/gogpu/displaylist/paint"
)

// Buffer is an ordered, append-only sequence of paint operations.
// Insertion order is raster order. Items can be removed only from the tail
// or all at once.
//
// The zero value is an empty buffer ready to use.
type Buffer struct {
	ops []paint.Op
}

// Append adds op to the tail.
func (b *Buffer) Append(op paint.Op) {
	b.ops = append(b.ops, op)
}

// RemoveLast drops the tail item. It reports false if the buffer is empty.
func (b *Buffer) RemoveLast() bool {
	if len(b.ops) == 0 {
		return false
	}
	b.ops[len(b.ops)-1] = nil
	b.ops = b.ops[:len(b.ops)-1]
	return true
}

// Clear drops every item and releases the backing storage.
func (b *Buffer) Clear() {
	b.ops = nil
}

// Len returns the number of items.
func (b *Buffer) Len() int {
	return len(b.ops)
}

// At returns the i-th item.
func (b *Buffer) At(i int) paint.Op {
	return b.ops[i]
}

// All iterates over the items in insertion order. Each call starts over.
func (b *Buffer) All() iter.Seq[paint.Op] {
	return func(yield func(paint.Op) bool) {
		for _, op := range b.ops {
			if !yield(op) {
				return
			}
		}
	}
}

// from iterates over the items starting at index i.
func (b *Buffer) from(i int) iter.Seq[paint.Op] {
	return func(yield func(paint.Op) bool) {
		for j := i; j < len(b.ops); j++ {
			if !yield(b.ops[j]) {
				return
			}
		}
	}
}

// CapacityInBytes estimates the storage reserved by the buffer.
func (b *Buffer) CapacityInBytes() int64 {
	return int64(cap(b.ops)) * int64(paint.OpSlotSize)
}
