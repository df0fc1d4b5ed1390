package feedback

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// LetterSet is a set of lowercase letters a–z.
// The zero value is an empty set. Copies made after the first Add share
// storage, so build a set fully before handing it out.
type LetterSet struct {
	b *bitset.BitSet
}

// NewLetterSet returns a set holding the given letters; non a–z bytes are ignored.
func NewLetterSet(letters ...byte) LetterSet {
	var s LetterSet
	for _, c := range letters {
		s.Add(c)
	}
	return s
}

// Add inserts c. Bytes outside a–z are ignored.
func (s *LetterSet) Add(c byte) {
	c = toLower(c)
	if !isLower(c) {
		return
	}
	if s.b == nil {
		s.b = bitset.New(26)
	}
	s.b.Set(uint(c - 'a'))
}

// Has reports whether c is in the set.
func (s LetterSet) Has(c byte) bool {
	if s.b == nil || !isLower(c) {
		return false
	}
	return s.b.Test(uint(c - 'a'))
}

// Len returns the number of letters in the set.
func (s LetterSet) Len() int {
	if s.b == nil {
		return 0
	}
	return int(s.b.Count())
}

// Minus returns a new set with the letters of o removed.
func (s LetterSet) Minus(o LetterSet) LetterSet {
	if s.b == nil {
		return LetterSet{}
	}
	if o.b == nil {
		return LetterSet{b: s.b.Clone()}
	}
	return LetterSet{b: s.b.Difference(o.b)}
}

// Letters lists the members in alphabetical order.
func (s LetterSet) Letters() []byte {
	if s.b == nil {
		return nil
	}
	out := make([]byte, 0, s.b.Count())
	for i, ok := s.b.NextSet(0); ok; i, ok = s.b.NextSet(i + 1) {
		out = append(out, byte('a'+i))
	}
	return out
}

// String returns the members as a sorted string, e.g. "aer".
func (s LetterSet) String() string {
	var sb strings.Builder
	sb.Write(s.Letters())
	return sb.String()
}
