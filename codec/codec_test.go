package codec

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lzgram/errs"
	"github.com/arloliu/lzgram/format"
	"github.com/arloliu/lzgram/grammar"
)

// bitsOf packs a string of '0' and '1' characters.
func bitsOf(s string) Bits {
	data := make([]byte, (len(s)+7)/8)
	for i, c := range s {
		if c == '1' {
			data[i/8] |= 0x80 >> (i % 8)
		}
	}

	return Bits{Data: data, Len: uint64(len(s))}
}

func encodeInput(t testing.TB, input string, opts ...Option) Bits {
	t.Helper()

	g, err := grammar.BuildFrom([]byte(input))
	require.NoError(t, err)
	enc, err := NewEncoder[byte](opts...)
	require.NoError(t, err)
	bits, err := enc.Encode(g)
	require.NoError(t, err)

	return bits
}

func decodeBytes(t testing.TB, bits Bits, opts ...Option) (*grammar.Grammar[byte], error) {
	t.Helper()

	dec, err := NewDecoder[byte](opts...)
	require.NoError(t, err)

	return dec.Decode(bits)
}

func TestEncode_Golden(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bits  string
	}{
		{
			// 2 rules | R0: N1 | R1: 'a'
			name:  "single symbol",
			input: "a",
			bits:  "110" + "0" + "110" + "10" + "10" + "001100001" + "10",
		},
		{
			name:  "two symbols",
			input: "ab",
			bits:  "11100110111010100011000011011000110001010",
		},
		{
			// 1 rule | R0 with an empty body
			name:  "empty input",
			input: "",
			bits:  "10010",
		},
		{
			name:  "repeated final phrase",
			input: "aaaa",
			bits:  "11110011011101111010100011000011011011000110000110111000110000110",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits := encodeInput(t, tt.input)
			require.Equal(t, tt.bits, bits.String())
			require.Equal(t, uint64(len(tt.bits)), bits.Len)
			require.Len(t, bits.Data, (len(tt.bits)+7)/8)

			g, err := decodeBytes(t, bitsOf(tt.bits))
			require.NoError(t, err)
			out, err := g.ExpandAll(0)
			require.NoError(t, err)
			require.Equal(t, tt.input, string(out))
		})
	}
}

func TestEncode_PaddingIsZero(t *testing.T) {
	bits := encodeInput(t, "a")
	require.Equal(t, []byte{0xCD, 0x46, 0x18}, bits.Data)
}

func TestEncode_Deterministic(t *testing.T) {
	input := strings.Repeat("the quick brown fox jumps over the lazy dog ", 50)
	first := encodeInput(t, input)
	second := encodeInput(t, input)

	require.Equal(t, first.Len, second.Len)
	require.Equal(t, first.Data, second.Data)
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(2024, 78))

	for round := range 100 {
		input := make([]byte, r.IntN(4000))
		alphabet := 1 + r.IntN(256)
		for i := range input {
			input[i] = byte(r.IntN(alphabet))
		}

		built, err := grammar.BuildFrom(input)
		require.NoError(t, err)

		enc, err := NewEncoder[byte]()
		require.NoError(t, err)
		bits, err := enc.Encode(built)
		require.NoError(t, err)

		dec, err := NewDecoder[byte]()
		require.NoError(t, err)
		g, err := dec.Decode(bits)
		require.NoError(t, err, "round %d", round)
		require.Equal(t, bits.Len, dec.Consumed())
		require.Equal(t, built.String(), g.String(), "round %d: same rules", round)

		out, err := g.ExpandAll(uint64(len(input)))
		require.NoError(t, err)
		require.Equal(t, input, out, "round %d", round)

		// index density: every index in [0, n) is present exactly once
		seen := 0
		for k := range g.Rules() {
			require.Equal(t, seen, k)
			seen++
		}
		require.Equal(t, g.Len(), seen)
	}
}

func TestRoundTrip_SymbolWidth(t *testing.T) {
	t.Run("seven bit ascii", func(t *testing.T) {
		input := "hello, hello, hello world"
		narrow := encodeInput(t, input, WithSymbolWidth(7))
		wide := encodeInput(t, input)
		require.Less(t, narrow.Len, wide.Len)

		g, err := decodeBytes(t, narrow, WithSymbolWidth(7))
		require.NoError(t, err)
		out, err := g.ExpandAll(0)
		require.NoError(t, err)
		require.Equal(t, input, string(out))
	})

	t.Run("symbol does not fit", func(t *testing.T) {
		g, err := grammar.BuildFrom([]byte{0x80})
		require.NoError(t, err)
		enc, err := NewEncoder[byte](WithSymbolWidth(7))
		require.NoError(t, err)
		_, err = enc.Encode(g)
		require.ErrorIs(t, err, errs.ErrSymbolOverflow)
	})

	t.Run("utf16 code units", func(t *testing.T) {
		input := []uint16{0x3053, 0x3093, 0x306b, 0x3061, 0x306f, 0x3053, 0x3093, 0x3053, 0x3093}
		g, err := grammar.BuildFrom(input)
		require.NoError(t, err)

		enc, err := NewEncoder[uint16]()
		require.NoError(t, err)
		require.Equal(t, format.SymbolWidth(16), enc.Config().SymbolWidth())
		bits, err := enc.Encode(g)
		require.NoError(t, err)

		dec, err := NewDecoder[uint16]()
		require.NoError(t, err)
		back, err := dec.Decode(bits)
		require.NoError(t, err)
		out, err := back.ExpandAll(0)
		require.NoError(t, err)
		require.Equal(t, input, out)
	})

	t.Run("decoded symbol wider than unit", func(t *testing.T) {
		g, err := grammar.BuildFrom([]uint16{0x1FF})
		require.NoError(t, err)
		enc, err := NewEncoder[uint16](WithSymbolWidth(9))
		require.NoError(t, err)
		bits, err := enc.Encode(g)
		require.NoError(t, err)

		_, err = decodeBytes(t, bits, WithSymbolWidth(9))
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		require.Equal(t, ReasonSymbolOverflow, ferr.Reason)
	})

	t.Run("invalid width", func(t *testing.T) {
		_, err := NewEncoder[byte](WithSymbolWidth(0))
		require.ErrorIs(t, err, errs.ErrInvalidSymbolWidth)
		_, err = NewDecoder[byte](WithSymbolWidth(33))
		require.ErrorIs(t, err, errs.ErrInvalidSymbolWidth)
	})
}

func TestDecode_Truncated(t *testing.T) {
	inputs := []string{"", "a", "abaabaaaaaab", "aaaa", "mississippi river"}

	for _, input := range inputs {
		bits := encodeInput(t, input)
		for n := range bits.Len {
			_, err := decodeBytes(t, bits.Truncate(n))
			require.ErrorIs(t, err, errs.ErrFormat, "input %q cut at bit %d", input, n)

			var ferr *FormatError
			require.ErrorAs(t, err, &ferr)
			require.LessOrEqual(t, ferr.BitOffset, n)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		bits   string
		reason string
		rule   int
	}{
		{"empty", "", ReasonMissingRuleCount, -1},
		{"unterminated count", "111", ReasonMissingRuleCount, -1},
		{"count larger than stream", "1110" + "010", ReasonRuleCountExceedsInput, -1},
		// 2 rules, second rule declares index 2
		{"index out of range", "110" + "0" + "110" + "10" + "110" + "001100001" + "10", ReasonIndexOutOfRange, -1},
		// 2 rules, both declare index 0
		{"duplicate rule index", "110" + "0" + "110" + "10" + "0" + "001100001" + "10", ReasonDuplicateIndex, 0},
		// terminal cut after four bits
		{"truncated terminal", "110" + "0" + "110" + "10" + "10" + "00110", ReasonTruncatedRule, 1},
		{"missing terminator", "110" + "0" + "110" + "10" + "10" + "001100001", ReasonTruncatedRule, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeBytes(t, bitsOf(tt.bits))
			require.ErrorIs(t, err, errs.ErrFormat)

			var ferr *FormatError
			require.ErrorAs(t, err, &ferr)
			require.Equal(t, tt.reason, ferr.Reason)
			require.Equal(t, tt.rule, ferr.Rule)
			require.Contains(t, ferr.Error(), tt.reason)
		})
	}
}

func TestDecode_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		bits   string
		reason string
	}{
		{"no rules", "0", grammar.ReasonMissingStartRule},
		// R0: N1 | R1: N1 'a'
		{"self reference", "110" + "0" + "110" + "10" + "10" + "110" + "001100001" + "10", grammar.ReasonForwardReference},
		// R0: N1 N2 | R1: N2 'a' | R2: 'a'
		{"forward reference", "1110" + "0" + "110" + "1110" + "10" + "10" + "1110" + "001100001" + "10" + "110" + "001100001" + "10", grammar.ReasonForwardReference},
		// R0: N5 | R1: 'a'
		{"reference out of range", "110" + "0" + "1111110" + "10" + "10" + "001100001" + "10", grammar.ReasonOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeBytes(t, bitsOf(tt.bits))
			require.ErrorIs(t, err, errs.ErrValidation)
			require.NotErrorIs(t, err, errs.ErrFormat)

			var verr *grammar.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestDecode_RulesOutOfOrder(t *testing.T) {
	// R1 written before R0; indices come from the stream, not from position.
	bits := bitsOf("110" + "10" + "001100001" + "10" + "0" + "110" + "110" + "10")
	g, err := decodeBytes(t, bits)
	require.NoError(t, err)

	out, err := g.ExpandAll(0)
	require.NoError(t, err)
	require.Equal(t, "aa", string(out))
}

func TestDecode_TrailingBits(t *testing.T) {
	bits := encodeInput(t, "abc")
	padded := Bits{Data: append(append([]byte{}, bits.Data...), 0xFF, 0xFF), Len: bits.Len + 16}

	dec, err := NewDecoder[byte]()
	require.NoError(t, err)
	_, err = dec.Decode(padded)
	require.NoError(t, err)
	require.Equal(t, bits.Len, dec.Consumed(), "decoder stops at the last terminator")

	_, err = dec.Decode(BitsFromBytes(bits.Data))
	require.NoError(t, err, "zero padding is ignored")
}

func TestDecode_MaxRules(t *testing.T) {
	bits := encodeInput(t, "abcdefgh")

	_, err := decodeBytes(t, bits, WithMaxRules(9))
	require.NoError(t, err)

	_, err = decodeBytes(t, bits, WithMaxRules(8))
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, ReasonTooManyRules, ferr.Reason)
}

func TestDecode_Context(t *testing.T) {
	bits := encodeInput(t, "abaabaaaaaab")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dec, err := NewDecoder[byte]()
	require.NoError(t, err)
	g, err := dec.DecodeContext(ctx, bits)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, g)
}

func TestEncode_InvalidGrammar(t *testing.T) {
	g := grammar.New[byte](2)
	require.NoError(t, g.SetRule(0, []grammar.Item[byte]{grammar.NonTerminal[byte](1)}))

	enc, err := NewEncoder[byte]()
	require.NoError(t, err)
	_, err = enc.Encode(g)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestBits(t *testing.T) {
	b := bitsOf("1011001")
	require.Equal(t, "1011001", b.String())
	require.Equal(t, "101", b.Truncate(3).String())
	require.Len(t, b.Truncate(3).Data, 1)
	require.Equal(t, b, b.Truncate(100))
	require.Equal(t, uint64(16), BitsFromBytes([]byte{0, 1}).Len)
}

func BenchmarkEncode(b *testing.B) {
	input := []byte(strings.Repeat("abracadabra alakazam ", 4096))
	g, err := grammar.BuildFrom(input)
	require.NoError(b, err)
	enc, err := NewEncoder[byte]()
	require.NoError(b, err)

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for b.Loop() {
		_, _ = enc.Encode(g)
	}
}

func BenchmarkDecode(b *testing.B) {
	input := strings.Repeat("abracadabra alakazam ", 4096)
	bits := encodeInput(b, input)
	dec, err := NewDecoder[byte]()
	require.NoError(b, err)

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for b.Loop() {
		_, _ = dec.Decode(bits)
	}
}
