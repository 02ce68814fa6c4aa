// Package grammar builds, validates and expands straight-line context-free
// grammars derived from LZ78 parses.
//
// A Grammar holds one production per non-terminal, addressed by a dense index.
// Rule 0 is the start rule and lists every other rule in creation order. Every
// other rule has a body of either one terminal, or one non-terminal followed by
// one terminal, and may only reference rules with a smaller index. The
// reference graph is therefore acyclic and each rule has exactly one finite
// expansion.
//
// Grammars produced by Build satisfy these invariants by construction.
// Grammars assembled with New and SetRule (for example by a decoder) must pass
// Validate before they are expanded; Expand validates on first use.
package grammar

import (
	"fmt"
	"iter"
	"strings"

	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
)

// StartRule is the index of the start rule.
const StartRule = 0

// Validation failure reasons.
const (
	ReasonMissingStartRule = "missing start rule"
	ReasonMissingRule      = "missing rule"
	ReasonOutOfRange       = "reference out of range"
	ReasonForwardReference = "forward or self reference"
	ReasonStartReference   = "reference to start rule"
)

// ValidationError reports a grammar that violates the straight-line invariants.
type ValidationError struct {
	Reason string
	Rule   int // rule holding the offending reference, or the missing rule
	Ref    int // referenced index, -1 when not applicable
}

func (e *ValidationError) Error() string {
	if e.Ref < 0 {
		return fmt.Sprintf("%v: rule %d: %s", errs.ErrValidation, e.Rule, e.Reason)
	}

	return fmt.Sprintf("%v: rule %d: %s to rule %d", errs.ErrValidation, e.Rule, e.Reason, e.Ref)
}

// Unwrap makes errors.Is(err, errs.ErrValidation) hold.
func (e *ValidationError) Unwrap() error {
	return errs.ErrValidation
}

// Rule is a production: the non-terminal Index rewrites to Body.
type Rule[S format.CodeUnit] struct {
	Index int
	Body  []Item[S]
}

func (r Rule[S]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "R%d ->", r.Index)
	for _, it := range r.Body {
		sb.WriteByte(' ')
		sb.WriteString(it.String())
	}

	return sb.String()
}

// Grammar is a straight-line grammar with densely indexed rules.
//
// SetRule must not run concurrently with other methods. Validate, Expand and
// the other read methods never modify the grammar and may run concurrently.
type Grammar[S format.CodeUnit] struct {
	bodies  [][]Item[S]
	present []bool
}

// New creates an empty grammar with room for numRules rules, all unset.
func New[S format.CodeUnit](numRules int) *Grammar[S] {
	if numRules < 0 {
		numRules = 0
	}

	return &Grammar[S]{
		bodies:  make([][]Item[S], numRules),
		present: make([]bool, numRules),
	}
}

// SetRule stores the body of rule index. Each index may be set once.
func (g *Grammar[S]) SetRule(index int, body []Item[S]) error {
	if index < 0 || index >= len(g.bodies) {
		return fmt.Errorf("%w: %d not in [0, %d)", errs.ErrRuleOutOfRange, index, len(g.bodies))
	}
	if g.present[index] {
		return fmt.Errorf("%w: %d", errs.ErrDuplicateRule, index)
	}

	g.bodies[index] = body
	g.present[index] = true

	return nil
}

// Len returns the number of rules, including the start rule.
func (g *Grammar[S]) Len() int {
	return len(g.bodies)
}

// Rule returns the rule with the given index. ok is false for unset or
// out-of-range indices. The body must not be modified.
func (g *Grammar[S]) Rule(index int) (Rule[S], bool) {
	if index < 0 || index >= len(g.bodies) || !g.present[index] {
		return Rule[S]{}, false
	}

	return Rule[S]{Index: index, Body: g.bodies[index]}, true
}

// Rules iterates over the set rules in increasing index order.
func (g *Grammar[S]) Rules() iter.Seq2[int, []Item[S]] {
	return func(yield func(int, []Item[S]) bool) {
		for i, body := range g.bodies {
			if !g.present[i] {
				continue
			}
			if !yield(i, body) {
				return
			}
		}
	}
}

// NumItems returns the total number of right-hand-side items.
func (g *Grammar[S]) NumItems() int {
	n := 0
	for _, body := range g.bodies {
		n += len(body)
	}

	return n
}

// Validate checks the straight-line invariants: the start rule exists, every
// index is set, every reference is in range, no rule references the start rule,
// and rules other than the start rule only reference smaller indices.
//
// The first violation is returned as a *ValidationError. Every call checks
// the whole grammar.
func (g *Grammar[S]) Validate() error {
	if len(g.bodies) == 0 || !g.present[StartRule] {
		return &ValidationError{Reason: ReasonMissingStartRule, Rule: StartRule, Ref: -1}
	}

	for k, body := range g.bodies {
		if !g.present[k] {
			return &ValidationError{Reason: ReasonMissingRule, Rule: k, Ref: -1}
		}
		for _, it := range body {
			switch it.kind {
			case KindTerminal:
			case KindNonTerminal:
				if err := g.checkRef(k, it.index); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: rule %d: item of unknown kind %d", errs.ErrValidation, k, it.kind)
			}
		}
	}

	return nil
}

func (g *Grammar[S]) checkRef(k, ref int) error {
	switch {
	case ref < 0 || ref >= len(g.bodies):
		return &ValidationError{Reason: ReasonOutOfRange, Rule: k, Ref: ref}
	case k == StartRule && ref == StartRule:
		return &ValidationError{Reason: ReasonForwardReference, Rule: k, Ref: ref}
	case ref == StartRule:
		return &ValidationError{Reason: ReasonStartReference, Rule: k, Ref: ref}
	case k != StartRule && ref >= k:
		return &ValidationError{Reason: ReasonForwardReference, Rule: k, Ref: ref}
	}

	return nil
}

// String renders the grammar one rule per line.
func (g *Grammar[S]) String() string {
	var sb strings.Builder
	for i, body := range g.Rules() {
		sb.WriteString(Rule[S]{Index: i, Body: body}.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}
