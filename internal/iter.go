package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// Bit reports whether bit n of value is set.
func Bit(value uint32, n int) bool {
	return (value>>n)&1 != 0
}

// Field extracts width bits of value starting at bit n.
func Field(value uint32, n int, width int) uint32 {
	return (value >> n) & ((1 << width) - 1)
}
