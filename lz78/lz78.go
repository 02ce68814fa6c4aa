// Package lz78 splits a symbol sequence into its Lempel-Ziv 78 phrases.
//
// Parsing starts at the beginning of the input and repeatedly emits the
// shortest prefix of the remaining input that has not been emitted before.
// Every phrase of length n > 1 therefore extends an earlier phrase of length
// n-1 by one symbol, which is the property the grammar builder relies on.
//
// The only exception is the last phrase: when the input ends while the
// candidate still matches an earlier phrase, that repeated phrase is emitted
// as is. "aaaa" parses to [a aa a].
package lz78

import (
	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
)

// Phrase is one non-empty piece of an LZ78 parse.
type Phrase[S format.CodeUnit] []S

// Last returns the final symbol of the phrase.
func (p Phrase[S]) Last() S {
	return p[len(p)-1]
}

// Prefix returns the phrase without its final symbol.
func (p Phrase[S]) Prefix() Phrase[S] {
	return p[:len(p)-1]
}

// edge identifies a dictionary entry by the entry it extends and the symbol
// appended to it. The root entry has index 0.
type edge[S format.CodeUnit] struct {
	parent int
	sym    S
}

// Parse returns the LZ78 phrases of input in order of appearance.
// An empty input yields an empty, non-nil list.
//
// The returned phrases share memory with input.
func Parse[S format.CodeUnit](input []S) []Phrase[S] {
	phrases := make([]Phrase[S], 0, estimatePhrases(len(input)))
	dict := make(map[edge[S]]int, cap(phrases))

	for i := 0; i < len(input); {
		node := 0
		j := i
		for j < len(input) {
			next, ok := dict[edge[S]{parent: node, sym: input[j]}]
			j++
			if !ok {
				dict[edge[S]{parent: node, sym: input[j-1]}] = len(phrases) + 1
				break
			}
			node = next
		}
		phrases = append(phrases, Phrase[S](input[i:j:j]))
		i = j
	}

	return phrases
}

// ParseStrict is Parse for callers that treat empty input as an error.
func ParseStrict[S format.CodeUnit](input []S) ([]Phrase[S], error) {
	if len(input) == 0 {
		return nil, errs.ErrEmptyInput
	}

	return Parse(input), nil
}

// Join concatenates phrases back into the parsed sequence.
func Join[S format.CodeUnit](phrases []Phrase[S]) []S {
	n := 0
	for _, p := range phrases {
		n += len(p)
	}

	out := make([]S, 0, n)
	for _, p := range phrases {
		out = append(out, p...)
	}

	return out
}

// estimatePhrases sizes the phrase list; a parse of n symbols has O(n / log n) phrases.
func estimatePhrases(n int) int {
	if n < 64 {
		return n
	}

	return n / 4
}
