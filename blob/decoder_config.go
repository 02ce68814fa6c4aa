package blob

import "github.com/arloliu/lzgram/internal/options"

// DefaultMaxSymbols is the default bound on the number of symbols a Decoder
// will produce.
const DefaultMaxSymbols = 64 << 20

// DecoderConfig holds the limits applied by a Decoder.
type DecoderConfig struct {
	maxSymbols uint64
	maxRules   int
}

// NewDecoderConfig creates a config with DefaultMaxSymbols and no rule limit.
func NewDecoderConfig() *DecoderConfig {
	return &DecoderConfig{maxSymbols: DefaultMaxSymbols}
}

// MaxSymbols returns the configured symbol limit, 0 means unlimited.
func (c *DecoderConfig) MaxSymbols() uint64 {
	return c.maxSymbols
}

// MaxRules returns the configured rule limit, 0 means unlimited.
func (c *DecoderConfig) MaxRules() int {
	return c.maxRules
}

// DecoderOption is a functional option for configuring a Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithMaxSymbols bounds the expanded output; 0 disables the bound.
// Blobs declaring more symbols are rejected before decoding.
func WithMaxSymbols(n uint64) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.maxSymbols = n
	})
}

// WithMaxRules bounds the rule count; 0 disables the bound.
func WithMaxRules(n int) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.maxRules = max(n, 0)
	})
}
