// Package ident produces the short random tokens used as QTI identifiers.
// Tokens are not cryptographically random; they only need to be unlikely to
// collide within one exported package.
package ident

import "math/rand"

const (
	HexAlphabet     = "0123456789abcdef"
	structuralLen   = 30
	optionDigits    = "0123456789"
	optionLeadDigit = "123456789"
)

// New returns a token of the given length drawn uniformly from alphabet.
func New(length int, alphabet string) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// Batch returns n mutually distinct tokens. Implemented by repeated sampling
// with set dedup; fine for the option counts we deal with (at most six or so).
func Batch(n, length int, alphabet string) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		tok := New(length, alphabet)
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// Assessment returns a structural identifier: "g" plus 30 hex characters.
// The leading letter matters, the schema rejects identifiers starting with
// a digit.
func Assessment() string {
	return "g" + New(structuralLen, HexAlphabet)
}

// CrossRef returns an identifier for the metadata-to-scoring cross reference.
// Same shape as Assessment; the two namespaces are linked by value only.
func CrossRef() string {
	return "g" + New(structuralLen, HexAlphabet)
}

// Option returns a four-digit response-option id with a nonzero first digit.
func Option() string {
	return New(1, optionLeadDigit) + New(3, optionDigits)
}

// OptionBatch returns n distinct option ids. Uniqueness is guaranteed within
// one call only; cross-item collisions are possible and accepted.
func OptionBatch(n int) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		tok := Option()
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
