package kv

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

// Pair is a single entry. Null marks an entry, which is present but holds no value at all,
// which differs from holding an empty one.
type Pair struct {
	Key, Value string
	Null       bool
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a map but
// uses linear search instead, which proves to be more efficient on relatively low amount of
// entries, which often enough is the case. Keys are compared case-insensitively, however
// stored as-is, and the insertion order is preserved.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// NewFromMap returns a new instance with already inserted values from given map.
// Note: as maps are unordered, resulting underlying structure will also contain unordered
// pairs.
func NewFromMap(m map[string]string) *Storage {
	kv := NewPrealloc(len(m))

	for key, value := range m {
		kv.Add(key, value)
	}

	return kv
}

// Add adds a new pair of key and value, regardless of whether the key is already presented.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Set replaces the value of an existing key, or adds a new pair otherwise. The entry keeps
// both the position and the key spelling of the first insertion, and any other entries with
// the same key are dropped.
func (s *Storage) Set(key, value string) *Storage {
	return s.set(Pair{Key: key, Value: value})
}

// SetNull does the same as Set, but the entry is marked as holding no value.
func (s *Storage) SetNull(key string) *Storage {
	return s.set(Pair{Key: key, Null: true})
}

func (s *Storage) set(pair Pair) *Storage {
	idx := s.index(pair.Key)
	if idx == -1 {
		s.pairs = append(s.pairs, pair)
		return s
	}

	pair.Key = s.pairs[idx].Key
	s.pairs[idx] = pair
	s.deleteFrom(idx+1, pair.Key)

	return s
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is returned
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom value, defined
// via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. If it wasn't, or
// the entry is null, the value is an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	if idx := s.index(key); idx != -1 {
		return s.pairs[idx].Value, true
	}

	return "", false
}

// IsNull reports whether the key is presented and holds no value.
func (s *Storage) IsNull(key string) bool {
	idx := s.index(key)
	return idx != -1 && s.pairs[idx].Null
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	return s.index(key) != -1
}

// Delete removes all the entries of the key.
func (s *Storage) Delete(key string) *Storage {
	s.deleteFrom(0, key)
	return s
}

// Pairs returns an iterator over the non-null pairs in insertion order.
func (s *Storage) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if pair.Null {
				continue
			}

			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Keys returns an iterator over all unique keys, null entries included.
func (s *Storage) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i, pair := range s.pairs {
			if s.indexBefore(i, pair.Key) != -1 {
				continue
			}

			if !yield(pair.Key) {
				break
			}
		}
	}
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func (s *Storage) index(key string) int {
	return s.indexBefore(len(s.pairs), key)
}

func (s *Storage) indexBefore(n int, key string) int {
	for i, pair := range s.pairs[:n] {
		if strcomp.EqualFold(key, pair.Key) {
			return i
		}
	}

	return -1
}

func (s *Storage) deleteFrom(start int, key string) {
	kept := s.pairs[:start]

	for _, pair := range s.pairs[start:] {
		if !strcomp.EqualFold(key, pair.Key) {
			kept = append(kept, pair)
		}
	}

	s.pairs = kept
}
