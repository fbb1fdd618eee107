// Package core defines the central types of the bayes module: variable
// Keys and sorted KeySets, elimination Orderings, the Factor and
// Conditional collaborator interfaces, and the FactorGraph and BayesNet
// containers that every algorithm package consumes.
//
// All containers iterate deterministically (keys are kept sorted), so
// identical inputs always produce identical elimination results.
//
// This file declares Key, Sym, KeySet, Ordering, sentinel errors,
// and the KeySet constructors.
//
// Errors:
//
//	ErrNilFactor          - a nil Factor was handed to a container.
//	ErrNilGraph           - a nil *FactorGraph was handed to an algorithm.
//	ErrDuplicateKey       - an Ordering lists the same key twice.
//	ErrFactorKindMismatch - factors of different concrete kinds were combined.
package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for core containers and collaborator contracts.
var (
	// ErrNilFactor indicates a nil Factor reference was supplied.
	ErrNilFactor = errors.New("core: nil factor")

	// ErrNilGraph indicates a nil *FactorGraph was supplied.
	ErrNilGraph = errors.New("core: nil factor graph")

	// ErrDuplicateKey indicates an Ordering contains a repeated key.
	ErrDuplicateKey = errors.New("core: duplicate key in ordering")

	// ErrFactorKindMismatch indicates factors of incompatible concrete
	// kinds were combined during elimination.
	ErrFactorKindMismatch = errors.New("core: factor kind mismatch")
)

// Key identifies a variable. Keys are opaque to every structural
// algorithm; only equality and the externally supplied Ordering matter.
// The numeric order of keys is used solely to keep iteration
// deterministic.
type Key uint64

// symShift positions the symbol character in the top byte of a Key.
const symShift = 56

// symIndexMask selects the index part of a symbol Key.
const symIndexMask = (Key(1) << symShift) - 1

// Sym packs a printable one-letter variable name and an index into a
// Key, e.g. Sym('x', 1) for a pose or Sym('l', 2) for a landmark.
// Plain integer Keys and symbol Keys may be mixed freely.
func Sym(c byte, index uint64) Key {
	return Key(c)<<symShift | (Key(index) & symIndexMask)
}

// String renders a symbol Key as "x1" and a plain Key as its decimal
// value.
func (k Key) String() string {
	c := byte(k >> symShift)
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
		return fmt.Sprintf("%c%d", c, uint64(k&symIndexMask))
	}

	return fmt.Sprintf("%d", uint64(k))
}

// KeySet is a sorted slice of distinct Keys. The zero value is the
// empty set. KeySets returned by methods are fresh copies; callers may
// retain them without aliasing concerns.
type KeySet []Key

// NewKeySet builds a KeySet from the given keys, sorting and removing
// duplicates.
//
// Complexity: O(n log n).
func NewKeySet(keys ...Key) KeySet {
	if len(keys) == 0 {
		return nil
	}
	s := make(KeySet, len(keys))
	copy(s, keys)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	// Compact duplicates in place.
	out := s[:1]
	for _, k := range s[1:] {
		if k != out[len(out)-1] {
			out = append(out, k)
		}
	}

	return out
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int { return len(s) }

// Contains reports whether k is a member of the set.
//
// Complexity: O(log n) via binary search.
func (s KeySet) Contains(k Key) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= k })

	return i < len(s) && s[i] == k
}

// Equal reports whether two sets hold exactly the same keys.
func (s KeySet) Equal(other KeySet) bool {
	if len(s) != len(other) {
		return false
	}
	for i, k := range s {
		if other[i] != k {
			return false
		}
	}

	return true
}

// Union returns a new set holding every key of s and other.
//
// Complexity: O(n+m) merge of two sorted slices.
func (s KeySet) Union(other KeySet) KeySet {
	if len(other) == 0 {
		return s.Clone()
	}
	if len(s) == 0 {
		return other.Clone()
	}
	out := make(KeySet, 0, len(s)+len(other))
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] < other[j]:
			out = append(out, s[i])
			i++
		case s[i] > other[j]:
			out = append(out, other[j])
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	out = append(out, s[i:]...)
	out = append(out, other[j:]...)

	return out
}

// Difference returns a new set holding the keys of s absent from other.
func (s KeySet) Difference(other KeySet) KeySet {
	if len(s) == 0 || len(other) == 0 {
		return s.Clone()
	}
	out := make(KeySet, 0, len(s))
	for _, k := range s {
		if !other.Contains(k) {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return nil
	}

	return out
}

// Without returns a new set with k removed (a plain copy if k is not a
// member).
func (s KeySet) Without(k Key) KeySet {
	if !s.Contains(k) {
		return s.Clone()
	}
	out := make(KeySet, 0, len(s)-1)
	for _, x := range s {
		if x != k {
			out = append(out, x)
		}
	}
	if len(out) == 0 {
		return nil
	}

	return out
}

// Clone returns an independent copy of the set.
func (s KeySet) Clone() KeySet {
	if len(s) == 0 {
		return nil
	}
	out := make(KeySet, len(s))
	copy(out, s)

	return out
}

// String renders the set as "{x1 x2 l1}" for diagnostics.
func (s KeySet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k.String())
	}
	b.WriteByte('}')

	return b.String()
}

// Ordering is a sequence of distinct Keys fixing the order in which
// variables are eliminated. Keys absent from the Ordering are never
// eliminated: the Ordering strictly defines the scope of an
// elimination pass.
type Ordering []Key

// Validate returns ErrDuplicateKey (wrapped with the offending key) if
// the ordering lists any key more than once.
func (o Ordering) Validate() error {
	seen := make(map[Key]struct{}, len(o))
	for _, k := range o {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("ordering key %v: %w", k, ErrDuplicateKey)
		}
		seen[k] = struct{}{}
	}

	return nil
}

// Index returns a map from each key to its position in the ordering.
// Lower positions are eliminated earlier.
func (o Ordering) Index() map[Key]int {
	idx := make(map[Key]int, len(o))
	for i, k := range o {
		idx[k] = i
	}

	return idx
}

// Contains reports whether k appears in the ordering.
//
// Complexity: O(n); orderings are short-lived and usually small.
func (o Ordering) Contains(k Key) bool {
	for _, x := range o {
		if x == k {
			return true
		}
	}

	return false
}
