package tagstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasgo/atlas/internal/dictionary"
)

func TestPackedTagStoreTagsResolvesThroughDictionary(t *testing.T) {
	dict := dictionary.New([]int32{0, 1, 2, 3}, []string{"highway", "primary", "name", "Main Street"})
	store, err := New(
		[][]int32{{0, 2}, {1}},
		[][]int32{{1, 3}, {0}},
	)
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	tags, err := store.Tags(0, dict)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"highway": "primary", "name": "Main Street"}, tags)

	tags, err = store.Tags(1, dict)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"primary": "highway"}, tags)
}

func TestNewRejectsRaggedMismatch(t *testing.T) {
	_, err := New([][]int32{{1, 2}}, [][]int32{{1}})
	require.Error(t, err)
	var mismatchErr *ErrRaggedMismatch
	assert.ErrorAs(t, err, &mismatchErr)
}

func TestTagsPropagatesUnknownDictionaryIndex(t *testing.T) {
	dict := dictionary.New([]int32{0}, []string{"highway"})
	store, err := New([][]int32{{0, 99}}, [][]int32{{1, 2}})
	require.NoError(t, err)

	_, err = store.Tags(0, dict)
	require.Error(t, err)
}
