package wire

import "google.golang.org/protobuf/encoding/protowire"

// The Encode* functions are the symmetric inverse of the Decode*
// functions in wire.go. Tests use them to build fixture payloads; the
// reader itself never writes atlas data.

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// EncodeTagPair encodes a TagPair message.
func EncodeTagPair(t TagPair) []byte {
	var b []byte
	b = appendBytesField(b, tagFieldKey, []byte(t.Key))
	b = appendBytesField(b, tagFieldValue, []byte(t.Value))
	return b
}

// EncodeAtlasMetaData encodes an AtlasMetaData message.
func EncodeAtlasMetaData(m AtlasMetaData) []byte {
	var b []byte
	b = appendVarintField(b, metaFieldEdgeNumber, m.EdgeNumber)
	b = appendVarintField(b, metaFieldNodeNumber, m.NodeNumber)
	b = appendVarintField(b, metaFieldAreaNumber, m.AreaNumber)
	b = appendVarintField(b, metaFieldLineNumber, m.LineNumber)
	b = appendVarintField(b, metaFieldPointNumber, m.PointNumber)
	b = appendVarintField(b, metaFieldRelationNumber, m.RelationNumber)
	original := uint64(0)
	if m.Original {
		original = 1
	}
	b = appendVarintField(b, metaFieldOriginal, original)
	b = appendBytesField(b, metaFieldCodeVersion, []byte(m.CodeVersion))
	b = appendBytesField(b, metaFieldDataVersion, []byte(m.DataVersion))
	b = appendBytesField(b, metaFieldCountry, []byte(m.Country))
	b = appendBytesField(b, metaFieldShardName, []byte(m.ShardName))
	for _, t := range m.Tags {
		b = appendBytesField(b, metaFieldTags, EncodeTagPair(t))
	}
	return b
}

// EncodeLongArray encodes a LongArray message.
func EncodeLongArray(a LongArray) []byte {
	var b []byte
	for _, e := range a.Elements {
		b = appendVarintField(b, longArrayFieldElements, uint64(e))
	}
	return b
}

// EncodeLongArrayOfArrays encodes a LongArrayOfArrays message.
func EncodeLongArrayOfArrays(a LongArrayOfArrays) []byte {
	var b []byte
	for _, row := range a.Arrays {
		b = appendBytesField(b, longArrayOfArraysFieldArrays, EncodeLongArray(row))
	}
	return b
}

// EncodeIntArray encodes an IntArray message.
func EncodeIntArray(a IntArray) []byte {
	var b []byte
	for _, e := range a.Elements {
		b = appendVarintField(b, intArrayFieldElements, uint64(uint32(e)))
	}
	return b
}

// EncodeIntegerArrayOfArrays encodes an IntegerArrayOfArrays message.
func EncodeIntegerArrayOfArrays(a IntegerArrayOfArrays) []byte {
	var b []byte
	for _, row := range a.Arrays {
		b = appendBytesField(b, intArrayOfArraysFieldArrays, EncodeIntArray(row))
	}
	return b
}

// EncodeByteArrayOfArrays encodes a ByteArrayOfArrays message.
func EncodeByteArrayOfArrays(a ByteArrayOfArrays) []byte {
	var b []byte
	for _, row := range a.Arrays {
		b = appendBytesField(b, byteArrayOfArraysFieldArrays, row)
	}
	return b
}

// EncodeIntegerStringDictionary encodes an IntegerStringDictionary
// message.
func EncodeIntegerStringDictionary(d IntegerStringDictionary) []byte {
	var b []byte
	for _, i := range d.Indexes {
		b = appendVarintField(b, dictionaryFieldIndexes, uint64(uint32(i)))
	}
	for _, w := range d.Words {
		b = appendBytesField(b, dictionaryFieldWords, []byte(w))
	}
	return b
}

// EncodePackedTagStore encodes a PackedTagStore message.
func EncodePackedTagStore(s PackedTagStore) []byte {
	var b []byte
	b = appendBytesField(b, tagStoreFieldKeys, EncodeIntegerArrayOfArrays(s.Keys))
	b = appendBytesField(b, tagStoreFieldValues, EncodeIntegerArrayOfArrays(s.Values))
	return b
}

// EncodeLongToLongMap encodes a LongToLongMap message.
func EncodeLongToLongMap(m LongToLongMap) []byte {
	var b []byte
	b = appendBytesField(b, longToLongMapFieldKeys, EncodeLongArray(m.Keys))
	b = appendBytesField(b, longToLongMapFieldValues, EncodeLongArray(m.Values))
	return b
}

// EncodeLongToLongMultiMap encodes a LongToLongMultiMap message.
func EncodeLongToLongMultiMap(m LongToLongMultiMap) []byte {
	var b []byte
	b = appendBytesField(b, longToLongMultiMapFieldKeys, EncodeLongArray(m.Keys))
	b = appendBytesField(b, longToLongMultiMapFieldValues, EncodeLongArrayOfArrays(m.Values))
	return b
}

// EncodePolyLineArray encodes a PolyLineArray message.
func EncodePolyLineArray(a PolyLineArray) []byte {
	var b []byte
	for _, e := range a.Encodings {
		b = appendBytesField(b, polyLineArrayFieldEncodings, e)
	}
	return b
}

// EncodePolygonArray encodes a PolygonArray message.
func EncodePolygonArray(a PolygonArray) []byte {
	var b []byte
	for _, e := range a.Encodings {
		b = appendBytesField(b, polygonArrayFieldEncodings, e)
	}
	return b
}
