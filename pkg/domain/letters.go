package domain

import (
	"fmt"
	"unicode"
)

// Alphabet is the set of letters covered by every LetterTable.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// LetterTable maps uppercase letters to their digit value and knows which of
// them are vowels. The zero value maps every letter to 0.
type LetterTable struct {
	values map[rune]int
	vowels map[rune]struct{}
}

// Pythagorean is the canonical cipher: A=1..I=9, J=1..R=9, S=1..Z=8,
// with vowels A, E, I, O and U.
var Pythagorean = mustPythagorean()

func mustPythagorean() LetterTable {
	values := make(map[string]int, len(Alphabet))
	for i, r := range Alphabet {
		values[string(r)] = i%9 + 1
	}
	t, err := NewLetterTable(values, []string{"A", "E", "I", "O", "U"})
	if err != nil {
		panic(err)
	}
	return t
}

// NewLetterTable builds a table from letter→value pairs and a vowel list.
// Every letter of Alphabet must be present with a value in 1..9, and every
// vowel must be a letter. Keys are case-insensitive.
func NewLetterTable(values map[string]int, vowels []string) (LetterTable, error) {
	t := LetterTable{
		values: make(map[rune]int, len(Alphabet)),
		vowels: make(map[rune]struct{}, len(vowels)),
	}

	for key, v := range values {
		r, err := singleLetter(key)
		if err != nil {
			return LetterTable{}, err
		}
		if v < 1 || v > 9 {
			return LetterTable{}, fmt.Errorf("letter %q: value %d out of range 1..9", key, v)
		}
		t.values[r] = v
	}
	for _, r := range Alphabet {
		if _, ok := t.values[r]; !ok {
			return LetterTable{}, fmt.Errorf("letter %q missing from table", string(r))
		}
	}

	for _, key := range vowels {
		r, err := singleLetter(key)
		if err != nil {
			return LetterTable{}, fmt.Errorf("vowel: %w", err)
		}
		t.vowels[r] = struct{}{}
	}
	return t, nil
}

func singleLetter(key string) (rune, error) {
	runes := []rune(key)
	if len(runes) != 1 {
		return 0, fmt.Errorf("key %q is not a single letter", key)
	}
	r := unicode.ToUpper(runes[0])
	if r < 'A' || r > 'Z' {
		return 0, fmt.Errorf("key %q is not in A-Z", key)
	}
	return r, nil
}

// ValueOf returns the digit for a letter, case-insensitive.
// Anything outside the table yields 0 so that name sums stay total.
func (t LetterTable) ValueOf(r rune) int {
	return t.values[unicode.ToUpper(r)]
}

// IsVowel reports whether r is one of the table's vowels, case-insensitive.
func (t LetterTable) IsVowel(r rune) bool {
	_, ok := t.vowels[unicode.ToUpper(r)]
	return ok
}

// Values returns a copy of the table keyed by the letter as a string.
func (t LetterTable) Values() map[string]int {
	out := make(map[string]int, len(t.values))
	for r, v := range t.values {
		out[string(r)] = v
	}
	return out
}

// Vowels returns the vowel letters in alphabetical order.
func (t LetterTable) Vowels() []string {
	var out []string
	for _, r := range Alphabet {
		if t.IsVowel(r) {
			out = append(out, string(r))
		}
	}
	return out
}

// LetterFilter selects which characters of a name contribute to a sum.
type LetterFilter int

const (
	// AllLetters counts every non-space character.
	AllLetters LetterFilter = iota
	// VowelsOnly counts vowels.
	VowelsOnly
	// ConsonantsOnly counts every non-space character that is not a vowel.
	ConsonantsOnly
)

// NameSum adds the letter values of name, skipping spaces and applying f.
// The sum is unreduced.
func (t LetterTable) NameSum(name string, f LetterFilter) int {
	sum := 0
	for _, r := range name {
		if r == ' ' {
			continue
		}
		switch f {
		case VowelsOnly:
			if !t.IsVowel(r) {
				continue
			}
		case ConsonantsOnly:
			if t.IsVowel(r) {
				continue
			}
		}
		sum += t.ValueOf(r)
	}
	return sum
}
