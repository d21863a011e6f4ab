package internal

import (
	"iter"
)

// IterSeq2Concat concatenates key/value iterators, in order.
// Duplicate keys are yielded as many times as they appear.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
