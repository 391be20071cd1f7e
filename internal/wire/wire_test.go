package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtlasMetaDataRoundTrip(t *testing.T) {
	original := AtlasMetaData{
		EdgeNumber:     3,
		NodeNumber:     4,
		AreaNumber:     2,
		LineNumber:     2,
		PointNumber:    5,
		RelationNumber: 2,
		Original:       true,
		CodeVersion:    "v1.2.3",
		DataVersion:    "2026-07-30",
		Country:        "USA",
		ShardName:      "USA_1",
		Tags: []TagPair{
			{Key: "generator", Value: "atlas-builder"},
		},
	}

	encoded := EncodeAtlasMetaData(original)
	decoded, err := DecodeAtlasMetaData(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestLongArrayRoundTrip(t *testing.T) {
	original := LongArray{Elements: []int64{-3, 0, 42, 1 << 40}}
	decoded, err := DecodeLongArray(EncodeLongArray(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestLongToLongMapRoundTrip(t *testing.T) {
	original := LongToLongMap{
		Keys:   LongArray{Elements: []int64{1, 2, 3}},
		Values: LongArray{Elements: []int64{10, 20, 30}},
	}
	decoded, err := DecodeLongToLongMap(EncodeLongToLongMap(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestLongToLongMultiMapRoundTrip(t *testing.T) {
	original := LongToLongMultiMap{
		Keys: LongArray{Elements: []int64{1, 2}},
		Values: LongArrayOfArrays{Arrays: []LongArray{
			{Elements: []int64{10, 11}},
			{Elements: []int64{20}},
		}},
	}
	decoded, err := DecodeLongToLongMultiMap(EncodeLongToLongMultiMap(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestIntegerStringDictionaryRoundTrip(t *testing.T) {
	original := IntegerStringDictionary{
		Indexes: []int32{0, 1, 2},
		Words:   []string{"highway", "primary", "name"},
	}
	decoded, err := DecodeIntegerStringDictionary(EncodeIntegerStringDictionary(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeIntegerStringDictionaryRejectsArityMismatch(t *testing.T) {
	mismatched := IntegerStringDictionary{
		Indexes: []int32{0, 1},
		Words:   []string{"only-one"},
	}
	_, err := DecodeIntegerStringDictionary(EncodeIntegerStringDictionary(mismatched))
	require.Error(t, err)
}

func TestPackedTagStoreRoundTrip(t *testing.T) {
	original := PackedTagStore{
		Keys: IntegerArrayOfArrays{Arrays: []IntArray{
			{Elements: []int32{0, 1}},
			{Elements: []int32{5}},
		}},
		Values: IntegerArrayOfArrays{Arrays: []IntArray{
			{Elements: []int32{2, 3}},
			{Elements: []int32{6}},
		}},
	}
	decoded, err := DecodePackedTagStore(EncodePackedTagStore(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestPolyLineArrayRoundTrip(t *testing.T) {
	original := PolyLineArray{Encodings: [][]byte{{1, 2, 3}, {9}, {4, 5}}}
	decoded, err := DecodePolyLineArray(EncodePolyLineArray(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
