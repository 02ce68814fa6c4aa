package grammar

import (
	"fmt"

	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
	"github.com/arloliu/lzgram/lz78"
)

// edge keys the phrase dictionary: the rule a phrase extends plus the symbol
// appended to it. Phrases of length one extend the start rule.
type edge[S format.CodeUnit] struct {
	parent int
	sym    S
}

// Build converts an LZ78 phrase list into a grammar.
//
// Phrase i (1-based) becomes rule i: a single terminal for one-symbol phrases,
// otherwise the rule of its prefix followed by its last symbol. The start rule
// lists rules 1..n in order.
//
// A phrase whose prefix was never emitted before it yields an error wrapping
// errs.ErrMissingPrefix. A repeated final phrase, as produced by lz78.Parse
// when input ends mid-match, gets its own rule with the same body as the
// first occurrence.
func Build[S format.CodeUnit](phrases []lz78.Phrase[S]) (*Grammar[S], error) {
	g := New[S](len(phrases) + 1)
	dict := make(map[edge[S]]int, len(phrases))
	start := make([]Item[S], 0, len(phrases))
	items := make([]Item[S], 0, 2*len(phrases))

	for i, p := range phrases {
		index := i + 1
		if len(p) == 0 {
			return nil, fmt.Errorf("%w: phrase %d", errs.ErrEmptyInput, index)
		}

		parent := StartRule
		for _, sym := range p.Prefix() {
			next, ok := dict[edge[S]{parent: parent, sym: sym}]
			if !ok {
				return nil, fmt.Errorf("%w: phrase %d of length %d", errs.ErrMissingPrefix, index, len(p))
			}
			parent = next
		}

		body := items[len(items):len(items)]
		if parent != StartRule {
			body = append(body, NonTerminal[S](parent))
		}
		body = append(body, Terminal(p.Last()))
		items = items[:len(items)+len(body)]

		key := edge[S]{parent: parent, sym: p.Last()}
		if _, seen := dict[key]; !seen {
			dict[key] = index
		}

		g.bodies[index] = body[:len(body):len(body)]
		g.present[index] = true
		start = append(start, NonTerminal[S](index))
	}

	g.bodies[StartRule] = start
	g.present[StartRule] = true

	return g, nil
}

// BuildFrom parses input with lz78.Parse and builds its grammar.
func BuildFrom[S format.CodeUnit](input []S) (*Grammar[S], error) {
	return Build(lz78.Parse(input))
}
