package grammar

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/arloliu/lzgram/format"
)

// Kind tags the variant held by an Item.
type Kind uint8

const (
	KindTerminal    Kind = 0x1 // KindTerminal is a literal alphabet symbol.
	KindNonTerminal Kind = 0x2 // KindNonTerminal is a reference to another rule.
)

func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "Terminal"
	case KindNonTerminal:
		return "NonTerminal"
	default:
		return "Unknown"
	}
}

// Item is one right-hand-side entry of a rule: either a terminal symbol or a
// non-terminal rule index. The zero Item is invalid.
type Item[S format.CodeUnit] struct {
	kind  Kind
	sym   S
	index int
}

// Terminal returns an item holding the symbol s.
func Terminal[S format.CodeUnit](s S) Item[S] {
	return Item[S]{kind: KindTerminal, sym: s}
}

// NonTerminal returns an item referencing the rule with the given index.
func NonTerminal[S format.CodeUnit](index int) Item[S] {
	return Item[S]{kind: KindNonTerminal, index: index}
}

// Kind returns the variant of the item.
func (it Item[S]) Kind() Kind {
	return it.kind
}

// Symbol returns the terminal symbol. It is zero for non-terminals.
func (it Item[S]) Symbol() S {
	return it.sym
}

// Index returns the referenced rule index. It is zero for terminals.
func (it Item[S]) Index() int {
	return it.index
}

// IsTerminal reports whether the item is a terminal.
func (it Item[S]) IsTerminal() bool {
	return it.kind == KindTerminal
}

func (it Item[S]) String() string {
	switch it.kind {
	case KindTerminal:
		return symbolString(it.sym)
	case KindNonTerminal:
		return "R" + strconv.Itoa(it.index)
	default:
		return "?"
	}
}

func symbolString[S format.CodeUnit](s S) string {
	if s < 0x80 && unicode.IsPrint(rune(s)) {
		return strconv.QuoteRune(rune(s))
	}

	return fmt.Sprintf("0x%02x", uint32(s))
}
