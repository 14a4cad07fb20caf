package qtoken

import (
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultTokenLength is the number of characters every word is truncated
	// or padded to.
	DefaultTokenLength = 20

	// DefaultFiller pads words shorter than the token length.
	DefaultFiller = 'X'

	// referenceLetter anchors the context component of every triple.
	referenceLetter = 'E'
)

/*
Triple is the numeric encoding of a single character.

  - ASCII: the code point divided by 255
  - Position: the index of the character's first occurrence in the prepared
    word, divided by the token length
  - Context: ASCII relative to the encoding of the letter 'E'
*/
type Triple struct {
	ASCII    float64
	Position float64
	Context  float64
}

// Token is a word encoded as a fixed-length sequence of triples.
type Token []Triple

/*
Matrix returns the token transposed into a 3xL matrix. Row 0 holds the ASCII
components, row 1 the positions and row 2 the context ratios, so column i
carries the three phase angles for the i-th token qubit.
*/
func (token Token) Matrix() *mat.Dense {
	m := mat.NewDense(3, max(len(token), 1), nil)

	for i, triple := range token {
		m.Set(0, i, triple.ASCII)
		m.Set(1, i, triple.Position)
		m.Set(2, i, triple.Context)
	}

	return m
}

// TokenizerOption configures a Tokenizer.
type TokenizerOption func(*Tokenizer)

// WithTokenLength overrides the token length. Non-positive lengths are ignored.
func WithTokenLength(length int) TokenizerOption {
	return func(t *Tokenizer) {
		if length > 0 {
			t.length = length
		}
	}
}

// WithFiller overrides the padding character.
func WithFiller(filler rune) TokenizerOption {
	return func(t *Tokenizer) {
		t.filler = filler
	}
}

/*
Tokenizer converts words into tokens. Every word is first normalized to the
token length, then each character is mapped to a Triple. Tokenize is total:
any string, including the empty one, produces a token of exactly the
configured length.
*/
type Tokenizer struct {
	length int
	filler rune
}

func NewTokenizer(opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{
		length: DefaultTokenLength,
		filler: DefaultFiller,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Length returns the fixed token length.
func (t *Tokenizer) Length() int {
	return t.length
}

// Prepare truncates the word to the token length or right-pads it with the filler.
func (t *Tokenizer) Prepare(word string) string {
	return string(t.prepare(word))
}

func (t *Tokenizer) prepare(word string) []rune {
	runes := []rune(word)

	if len(runes) > t.length {
		return runes[:t.length]
	}

	for len(runes) < t.length {
		runes = append(runes, t.filler)
	}

	return runes
}

/*
CharToFloats encodes one character of a prepared word. The position component
uses the first occurrence of the character, so repeated characters (and all
filler characters) share one position value.
*/
func (t *Tokenizer) CharToFloats(char rune, prepared string) Triple {
	return t.charToFloats(char, []rune(prepared))
}

func (t *Tokenizer) charToFloats(char rune, prepared []rune) Triple {
	ascii := float64(char) / 255.0

	position := 0.0
	if len(prepared) > 0 {
		position = float64(firstIndex(prepared, char)) / float64(len(prepared))
	}

	return Triple{
		ASCII:    ascii,
		Position: position,
		Context:  ascii / (float64(referenceLetter) / 255.0),
	}
}

// Tokenize prepares the word and encodes each of its characters in order.
func (t *Tokenizer) Tokenize(word string) Token {
	prepared := t.prepare(word)
	token := make(Token, 0, len(prepared))

	for _, char := range prepared {
		token = append(token, t.charToFloats(char, prepared))
	}

	return token
}

func firstIndex(runes []rune, char rune) int {
	for i, r := range runes {
		if r == char {
			return i
		}
	}

	// Characters outside the word have no position of their own.
	return 0
}
