package grammar

import (
	"fmt"
	"math"

	"github.com/arloliu/lzgram/errs"
)

// ExpandedLen returns the number of symbols rule index expands to, without
// materializing the expansion. Lengths saturate at math.MaxUint64.
func (g *Grammar[S]) ExpandedLen(index int) (uint64, error) {
	lens, err := g.expandedLens(index)
	if err != nil {
		return 0, err
	}

	return lens[index], nil
}

// expandedLens computes the expansion length of every rule up to index, and of
// the start rule when index is StartRule. Rules other than the start rule only
// reference smaller indices, so a single ascending pass suffices.
func (g *Grammar[S]) expandedLens(index int) ([]uint64, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(g.bodies) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", errs.ErrRuleOutOfRange, index, len(g.bodies))
	}

	last := index
	if index == StartRule {
		last = len(g.bodies) - 1
	}

	lens := make([]uint64, len(g.bodies))
	for k := 1; k <= last; k++ {
		lens[k] = g.bodyLen(g.bodies[k], lens)
	}
	if index == StartRule {
		lens[StartRule] = g.bodyLen(g.bodies[StartRule], lens)
	}

	return lens, nil
}

func (g *Grammar[S]) bodyLen(body []Item[S], lens []uint64) uint64 {
	var n uint64
	for _, it := range body {
		add := uint64(1)
		if it.kind == KindNonTerminal {
			add = lens[it.index]
		}
		if n > math.MaxUint64-add {
			return math.MaxUint64
		}
		n += add
	}

	return n
}

// span locates the first expansion of a rule inside the output buffer.
type span struct {
	start, end int
	done       bool
}

// frame is one pending rule on the expansion stack.
type frame struct {
	rule  int
	pos   int
	start int
}

// Expand returns the symbols rule index derives.
//
// maxSymbols bounds the output length; 0 means no bound. The length is
// computed before any symbol is produced, so an oversized expansion fails with
// errs.ErrExpansionLimit without allocating it.
//
// Expansion walks the grammar with an explicit stack. The first expansion of
// each rule is recorded as a span of the output, and later references to the
// same rule copy that span, so the cost is linear in the output length.
func (g *Grammar[S]) Expand(index int, maxSymbols uint64) ([]S, error) {
	n, err := g.ExpandedLen(index)
	if err != nil {
		return nil, err
	}
	if (maxSymbols > 0 && n > maxSymbols) || n > uint64(math.MaxInt) {
		return nil, fmt.Errorf("%w: rule %d expands to %d symbols, limit %d", errs.ErrExpansionLimit, index, n, maxSymbols)
	}

	out := make([]S, 0, n)
	spans := make([]span, len(g.bodies))
	stack := []frame{{rule: index}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		body := g.bodies[top.rule]
		if top.pos == len(body) {
			spans[top.rule] = span{start: top.start, end: len(out), done: true}
			stack = stack[:len(stack)-1]

			continue
		}

		it := body[top.pos]
		top.pos++

		switch it.kind {
		case KindTerminal:
			out = append(out, it.sym)
		case KindNonTerminal:
			if sp := spans[it.index]; sp.done {
				out = append(out, out[sp.start:sp.end]...)
				continue
			}
			stack = append(stack, frame{rule: it.index, start: len(out)})
		}
	}

	return out, nil
}

// ExpandAll expands the start rule, reproducing the original input.
func (g *Grammar[S]) ExpandAll(maxSymbols uint64) ([]S, error) {
	return g.Expand(StartRule, maxSymbols)
}
