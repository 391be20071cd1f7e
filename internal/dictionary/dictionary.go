// Package dictionary implements the atlas string dictionary: a mapping
// from small non-negative integer indices to the UTF-8 strings they
// stand for, shared by every entity kind's tag store and by relation
// member roles.
package dictionary

import "fmt"

// ErrUnknownIndex indicates a tag/role integer that does not resolve via
// the dictionary.
type ErrUnknownIndex struct {
	Index int32
}

func (e *ErrUnknownIndex) Error() string {
	return fmt.Sprintf("unknown dictionary index: %d", e.Index)
}

// StringDictionary is an integer->string map, built once per atlas from
// a pair of parallel arrays. Only the index-to-string direction is
// stored; there is no string-to-index lookup.
type StringDictionary struct {
	words map[int32]string
}

// New builds a StringDictionary from parallel index/word arrays. The
// caller is responsible for verifying the arrays are the same length
// (internal/wire's decoder already enforces this).
func New(indexes []int32, words []string) *StringDictionary {
	d := &StringDictionary{words: make(map[int32]string, len(indexes))}
	for i, idx := range indexes {
		d.words[idx] = words[i]
	}
	return d
}

// Word resolves an index to its string. Fails with ErrUnknownIndex on a
// miss.
func (d *StringDictionary) Word(index int32) (string, error) {
	w, ok := d.words[index]
	if !ok {
		return "", &ErrUnknownIndex{Index: index}
	}
	return w, nil
}

// Len returns the number of entries in the dictionary.
func (d *StringDictionary) Len() int {
	return len(d.words)
}
