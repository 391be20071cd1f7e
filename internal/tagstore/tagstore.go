// Package tagstore implements the packed tag store: for each entity
// kind, a pair of ragged integer arrays indexing into the shared string
// dictionary, resolved into an ordinary key/value map on demand.
package tagstore

import (
	"fmt"

	"github.com/atlasgo/atlas/internal/dictionary"
)

// ErrRaggedMismatch indicates a row's parallel keys/values arrays
// disagree in length.
type ErrRaggedMismatch struct {
	Row               int
	KeysLen, ValsLen int
}

func (e *ErrRaggedMismatch) Error() string {
	return fmt.Sprintf("tag store row %d: keys length %d != values length %d", e.Row, e.KeysLen, e.ValsLen)
}

// PackedTagStore holds, per row, two parallel arrays of dictionary
// indices: keys[row][j] pairs with values[row][j].
type PackedTagStore struct {
	Keys   [][]int32
	Values [][]int32
}

// New builds a PackedTagStore from parallel ragged key/value arrays.
// Fails with ErrRaggedMismatch if any row's arrays disagree in length.
func New(keys, values [][]int32) (*PackedTagStore, error) {
	if len(keys) != len(values) {
		return nil, &ErrRaggedMismatch{Row: -1, KeysLen: len(keys), ValsLen: len(values)}
	}
	for i := range keys {
		if len(keys[i]) != len(values[i]) {
			return nil, &ErrRaggedMismatch{Row: i, KeysLen: len(keys[i]), ValsLen: len(values[i])}
		}
	}
	return &PackedTagStore{Keys: keys, Values: values}, nil
}

// Tags resolves row's key/value dictionary indices into an unordered
// string map. Insertion order is not preserved.
func (s *PackedTagStore) Tags(row int, dict *dictionary.StringDictionary) (map[string]string, error) {
	keys := s.Keys[row]
	values := s.Values[row]
	out := make(map[string]string, len(keys))
	for i, k := range keys {
		key, err := dict.Word(k)
		if err != nil {
			return nil, err
		}
		val, err := dict.Word(values[i])
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}

// Len returns the number of rows in the store.
func (s *PackedTagStore) Len() int {
	return len(s.Keys)
}
