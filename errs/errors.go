// Package errs defines the sentinel errors shared by the lzgram packages.
//
// Errors returned by the parser, builder, codec and container wrap one of these
// sentinels, so callers can classify failures with errors.Is regardless of the
// package that produced them.
package errs

import "errors"

// Pipeline errors.
var (
	// ErrEmptyInput is returned when a caller requires non-empty input and gets none.
	ErrEmptyInput = errors.New("empty input")
	// ErrMissingPrefix means a multi-symbol phrase has no earlier phrase equal to its prefix.
	ErrMissingPrefix = errors.New("missing phrase prefix")
	// ErrFormat means a bit string does not follow the grammar wire format.
	ErrFormat = errors.New("malformed grammar bit string")
	// ErrValidation means a grammar violates the straight-line invariants.
	ErrValidation = errors.New("invalid grammar")
	// ErrExpansionLimit means expanding a grammar would exceed the caller's limit.
	ErrExpansionLimit = errors.New("expansion exceeds limit")
	// ErrSymbolOverflow means a terminal does not fit the configured symbol width.
	ErrSymbolOverflow = errors.New("symbol does not fit symbol width")
	// ErrInvalidSymbolWidth means a symbol width outside the supported range.
	ErrInvalidSymbolWidth = errors.New("invalid symbol width")
	// ErrDuplicateRule means a rule index was assigned twice.
	ErrDuplicateRule = errors.New("duplicate rule index")
	// ErrRuleOutOfRange means a rule index outside [0, rule count).
	ErrRuleOutOfRange = errors.New("rule index out of range")
)

// Container errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrRuleCountMismatch  = errors.New("rule count mismatch")
	ErrSymbolCountTooBig  = errors.New("symbol count exceeds limit")
	ErrRuleCountTooBig    = errors.New("rule count exceeds limit")
)
