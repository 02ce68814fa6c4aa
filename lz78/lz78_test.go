package lz78

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lzgram/errs"
)

func strs(phrases []Phrase[byte]) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = string(p)
	}

	return out
}

func TestParse_Golden(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single symbol", "a", []string{"a"}},
		{"reference example", "abaabaaaaaab", []string{"a", "b", "aa", "ba", "aaa", "aab"}},
		// The last phrase repeats "a": input ends while it still matches.
		{"repeated final phrase", "aaaa", []string{"a", "aa", "a"}},
		{"repeated final multi-symbol phrase", "aaaaa", []string{"a", "aa", "aa"}},
		{"all distinct", "abcd", []string{"a", "b", "c", "d"}},
		{"two symbols alternating", "abababab", []string{"a", "b", "ab", "aba", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.input))
			require.NotNil(t, got)
			require.Equal(t, tt.want, strs(got))
			require.Equal(t, tt.input, string(Join(got)))
		})
	}
}

func TestParse_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 78))

	for round := range 200 {
		n := r.IntN(2000)
		alphabet := 1 + r.IntN(8)
		input := make([]byte, n)
		for i := range input {
			input[i] = byte('a' + r.IntN(alphabet))
		}

		phrases := Parse(input)
		require.Equal(t, input, Join(phrases), "round %d: concatenation", round)

		seen := make(map[string]int, len(phrases))
		for i, p := range phrases {
			require.NotEmpty(t, p)
			if prev, dup := seen[string(p)]; dup {
				require.Equal(t, len(phrases)-1, i, "round %d: only the final phrase may repeat (first at %d)", round, prev)
			} else {
				seen[string(p)] = i
			}
			if len(p) > 1 {
				_, ok := seen[string(p.Prefix())]
				require.True(t, ok, "round %d: prefix of phrase %d must be an earlier phrase", round, i)
			}
		}
	}
}

func TestParse_WideUnits(t *testing.T) {
	input := []uint16{0x3042, 0x3044, 0x3042, 0x3042, 0x3044, 0x3042}
	phrases := Parse(input)

	require.Len(t, phrases, 4)
	require.Equal(t, Phrase[uint16]{0x3042}, phrases[0])
	require.Equal(t, Phrase[uint16]{0x3044}, phrases[1])
	require.Equal(t, Phrase[uint16]{0x3042, 0x3042}, phrases[2])
	require.Equal(t, Phrase[uint16]{0x3044, 0x3042}, phrases[3])
	require.Equal(t, input, Join(phrases))
}

func TestParseStrict(t *testing.T) {
	_, err := ParseStrict([]byte{})
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	phrases, err := ParseStrict([]byte("ab"))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, strs(phrases))
}

func TestPhrase(t *testing.T) {
	p := Phrase[byte]("aab")
	require.Equal(t, byte('b'), p.Last())
	require.Equal(t, "aa", string(p.Prefix()))
}

func BenchmarkParse(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 1))
	input := make([]byte, 64*1024)
	for i := range input {
		input[i] = byte('a' + r.IntN(4))
	}

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for b.Loop() {
		_ = Parse(input)
	}
}
