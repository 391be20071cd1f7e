// Package wire decodes the atlas store's entry payloads. Each named
// archive entry is a protobuf-encoded record from an external schema
// registry; this package treats that registry as an opaque decoder
// contract and parses the wire bytes directly against fixed field
// numbers using the low-level varint/length-delimited primitives in
// google.golang.org/protobuf/encoding/protowire, rather than depending on
// generated .pb.go stubs for a .proto source this reader never owns.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrDecode indicates entry bytes failed schema decode or an arity
// check (e.g. a ragged array whose parallel arrays disagree in length).
type ErrDecode struct {
	Message string
	Reason  string
}

func (e *ErrDecode) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Message, e.Reason)
}

// TagPair is a single key/value tag entry, as carried by AtlasMetaData.
type TagPair struct {
	Key   string
	Value string
}

// AtlasMetaData mirrors ProtoAtlasMetaData.
type AtlasMetaData struct {
	EdgeNumber     uint64
	NodeNumber     uint64
	AreaNumber     uint64
	LineNumber     uint64
	PointNumber    uint64
	RelationNumber uint64
	Original       bool
	CodeVersion    string
	DataVersion    string
	Country        string
	ShardName      string
	Tags           []TagPair
}

// LongArray mirrors ProtoLongArray: a flat sequence of signed 64 bit
// integers.
type LongArray struct {
	Elements []int64
}

// LongArrayOfArrays mirrors ProtoLongArrayOfArrays: a ragged sequence of
// LongArray.
type LongArrayOfArrays struct {
	Arrays []LongArray
}

// IntArray is one row of ProtoIntegerArrayOfArrays.
type IntArray struct {
	Elements []int32
}

// IntegerArrayOfArrays mirrors ProtoIntegerArrayOfArrays.
type IntegerArrayOfArrays struct {
	Arrays []IntArray
}

// ByteArrayOfArrays mirrors ProtoByteArrayOfArrays: a ragged sequence of
// opaque byte strings.
type ByteArrayOfArrays struct {
	Arrays [][]byte
}

// IntegerStringDictionary mirrors ProtoIntegerStringDictionary.
type IntegerStringDictionary struct {
	Indexes []int32
	Words   []string
}

// PackedTagStore mirrors ProtoPackedTagStore.
type PackedTagStore struct {
	Keys   IntegerArrayOfArrays
	Values IntegerArrayOfArrays
}

// LongToLongMap mirrors ProtoLongToLongMap.
type LongToLongMap struct {
	Keys   LongArray
	Values LongArray
}

// LongToLongMultiMap mirrors ProtoLongToLongMultiMap: keys are flat,
// values are ragged and aligned positionally with keys.
type LongToLongMultiMap struct {
	Keys   LongArray
	Values LongArrayOfArrays
}

// PolyLineArray mirrors ProtoPolyLineArray: a sequence of opaque
// byte-string encodings consumed by the polyline codec.
type PolyLineArray struct {
	Encodings [][]byte
}

// PolygonArray mirrors ProtoPolygonArray.
type PolygonArray struct {
	Encodings [][]byte
}

// field numbers for each message, fixed by this reader's contract with
// its producer.
const (
	metaFieldEdgeNumber     = 1
	metaFieldNodeNumber     = 2
	metaFieldAreaNumber     = 3
	metaFieldLineNumber     = 4
	metaFieldPointNumber    = 5
	metaFieldRelationNumber = 6
	metaFieldOriginal       = 7
	metaFieldCodeVersion    = 8
	metaFieldDataVersion    = 9
	metaFieldCountry        = 10
	metaFieldShardName      = 11
	metaFieldTags           = 12

	tagFieldKey   = 1
	tagFieldValue = 2

	longArrayFieldElements = 1

	longArrayOfArraysFieldArrays = 1

	intArrayFieldElements = 1

	intArrayOfArraysFieldArrays = 1

	byteArrayOfArraysFieldArrays = 1

	dictionaryFieldIndexes = 1
	dictionaryFieldWords   = 2

	tagStoreFieldKeys   = 1
	tagStoreFieldValues = 2

	longToLongMapFieldKeys   = 1
	longToLongMapFieldValues = 2

	longToLongMultiMapFieldKeys   = 1
	longToLongMultiMapFieldValues = 2

	polyLineArrayFieldEncodings = 1
	polygonArrayFieldEncodings  = 1
)

// forEachField walks the top-level fields of a length-delimited protobuf
// message, invoking fn for each (field number, wire type, value bytes).
func forEachField(data []byte, msg string, fn func(num protowire.Number, typ protowire.Type, v []byte) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return &ErrDecode{Message: msg, Reason: "malformed tag"}
		}
		data = data[n:]

		var value []byte
		var consumed int
		switch typ {
		case protowire.VarintType:
			_, consumed = protowire.ConsumeVarint(data)
			value = data[:consumed]
		case protowire.Fixed32Type:
			_, consumed = protowire.ConsumeFixed32(data)
			value = data[:consumed]
		case protowire.Fixed64Type:
			_, consumed = protowire.ConsumeFixed64(data)
			value = data[:consumed]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return &ErrDecode{Message: msg, Reason: "malformed length-delimited field"}
			}
			value, consumed = v, n
		default:
			return &ErrDecode{Message: msg, Reason: "unsupported wire type"}
		}
		if consumed < 0 {
			return &ErrDecode{Message: msg, Reason: "malformed field value"}
		}
		if typ != protowire.BytesType {
			value = data[:consumed]
		}
		if err := fn(num, typ, value); err != nil {
			return err
		}
		data = data[consumed:]
	}
	return nil
}

func decodeVarint(v []byte) uint64 {
	val, _ := protowire.ConsumeVarint(v)
	return val
}

// DecodeAtlasMetaData decodes a ProtoAtlasMetaData message.
func DecodeAtlasMetaData(data []byte) (AtlasMetaData, error) {
	var out AtlasMetaData
	err := forEachField(data, "AtlasMetaData", func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case metaFieldEdgeNumber:
			out.EdgeNumber = decodeVarint(v)
		case metaFieldNodeNumber:
			out.NodeNumber = decodeVarint(v)
		case metaFieldAreaNumber:
			out.AreaNumber = decodeVarint(v)
		case metaFieldLineNumber:
			out.LineNumber = decodeVarint(v)
		case metaFieldPointNumber:
			out.PointNumber = decodeVarint(v)
		case metaFieldRelationNumber:
			out.RelationNumber = decodeVarint(v)
		case metaFieldOriginal:
			out.Original = decodeVarint(v) != 0
		case metaFieldCodeVersion:
			out.CodeVersion = string(v)
		case metaFieldDataVersion:
			out.DataVersion = string(v)
		case metaFieldCountry:
			out.Country = string(v)
		case metaFieldShardName:
			out.ShardName = string(v)
		case metaFieldTags:
			tag, err := decodeTagPair(v)
			if err != nil {
				return err
			}
			out.Tags = append(out.Tags, tag)
		}
		return nil
	})
	return out, err
}

func decodeTagPair(data []byte) (TagPair, error) {
	var out TagPair
	err := forEachField(data, "TagPair", func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case tagFieldKey:
			out.Key = string(v)
		case tagFieldValue:
			out.Value = string(v)
		}
		return nil
	})
	return out, err
}

// DecodeLongArray decodes a ProtoLongArray message.
func DecodeLongArray(data []byte) (LongArray, error) {
	var out LongArray
	err := forEachField(data, "LongArray", func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == longArrayFieldElements {
			out.Elements = append(out.Elements, int64(decodeVarint(v)))
		}
		return nil
	})
	return out, err
}

// DecodeLongArrayOfArrays decodes a ProtoLongArrayOfArrays message.
func DecodeLongArrayOfArrays(data []byte) (LongArrayOfArrays, error) {
	var out LongArrayOfArrays
	err := forEachField(data, "LongArrayOfArrays", func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == longArrayOfArraysFieldArrays {
			arr, err := DecodeLongArray(v)
			if err != nil {
				return err
			}
			out.Arrays = append(out.Arrays, arr)
		}
		return nil
	})
	return out, err
}

// DecodeIntArray decodes one row of a ProtoIntegerArrayOfArrays message.
func DecodeIntArray(data []byte) (IntArray, error) {
	var out IntArray
	err := forEachField(data, "IntArray", func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == intArrayFieldElements {
			out.Elements = append(out.Elements, int32(decodeVarint(v)))
		}
		return nil
	})
	return out, err
}

// DecodeIntegerArrayOfArrays decodes a ProtoIntegerArrayOfArrays message.
func DecodeIntegerArrayOfArrays(data []byte) (IntegerArrayOfArrays, error) {
	var out IntegerArrayOfArrays
	err := forEachField(data, "IntegerArrayOfArrays", func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == intArrayOfArraysFieldArrays {
			arr, err := DecodeIntArray(v)
			if err != nil {
				return err
			}
			out.Arrays = append(out.Arrays, arr)
		}
		return nil
	})
	return out, err
}

// DecodeByteArrayOfArrays decodes a ProtoByteArrayOfArrays message.
func DecodeByteArrayOfArrays(data []byte) (ByteArrayOfArrays, error) {
	var out ByteArrayOfArrays
	err := forEachField(data, "ByteArrayOfArrays", func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == byteArrayOfArraysFieldArrays {
			cp := make([]byte, len(v))
			copy(cp, v)
			out.Arrays = append(out.Arrays, cp)
		}
		return nil
	})
	return out, err
}

// DecodeIntegerStringDictionary decodes a ProtoIntegerStringDictionary
// message.
func DecodeIntegerStringDictionary(data []byte) (IntegerStringDictionary, error) {
	var out IntegerStringDictionary
	err := forEachField(data, "IntegerStringDictionary", func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case dictionaryFieldIndexes:
			out.Indexes = append(out.Indexes, int32(decodeVarint(v)))
		case dictionaryFieldWords:
			out.Words = append(out.Words, string(v))
		}
		return nil
	})
	if err != nil {
		return out, err
	}
	if len(out.Indexes) != len(out.Words) {
		return out, &ErrDecode{Message: "IntegerStringDictionary", Reason: "indexes/words array length mismatch"}
	}
	return out, nil
}

// DecodePackedTagStore decodes a ProtoPackedTagStore message.
func DecodePackedTagStore(data []byte) (PackedTagStore, error) {
	var out PackedTagStore
	err := forEachField(data, "PackedTagStore", func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case tagStoreFieldKeys:
			keys, err := DecodeIntegerArrayOfArrays(v)
			if err != nil {
				return err
			}
			out.Keys = keys
		case tagStoreFieldValues:
			values, err := DecodeIntegerArrayOfArrays(v)
			if err != nil {
				return err
			}
			out.Values = values
		}
		return nil
	})
	if err != nil {
		return out, err
	}
	if len(out.Keys.Arrays) != len(out.Values.Arrays) {
		return out, &ErrDecode{Message: "PackedTagStore", Reason: "keys/values array length mismatch"}
	}
	for i := range out.Keys.Arrays {
		if len(out.Keys.Arrays[i].Elements) != len(out.Values.Arrays[i].Elements) {
			return out, &ErrDecode{Message: "PackedTagStore", Reason: "keys/values row length mismatch"}
		}
	}
	return out, nil
}

// DecodeLongToLongMap decodes a ProtoLongToLongMap message.
func DecodeLongToLongMap(data []byte) (LongToLongMap, error) {
	var out LongToLongMap
	err := forEachField(data, "LongToLongMap", func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case longToLongMapFieldKeys:
			keys, err := DecodeLongArray(v)
			if err != nil {
				return err
			}
			out.Keys = keys
		case longToLongMapFieldValues:
			values, err := DecodeLongArray(v)
			if err != nil {
				return err
			}
			out.Values = values
		}
		return nil
	})
	if err != nil {
		return out, err
	}
	if len(out.Keys.Elements) != len(out.Values.Elements) {
		return out, &ErrDecode{Message: "LongToLongMap", Reason: "keys/values array length mismatch"}
	}
	return out, nil
}

// DecodeLongToLongMultiMap decodes a ProtoLongToLongMultiMap message.
func DecodeLongToLongMultiMap(data []byte) (LongToLongMultiMap, error) {
	var out LongToLongMultiMap
	err := forEachField(data, "LongToLongMultiMap", func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case longToLongMultiMapFieldKeys:
			keys, err := DecodeLongArray(v)
			if err != nil {
				return err
			}
			out.Keys = keys
		case longToLongMultiMapFieldValues:
			values, err := DecodeLongArrayOfArrays(v)
			if err != nil {
				return err
			}
			out.Values = values
		}
		return nil
	})
	if err != nil {
		return out, err
	}
	if len(out.Keys.Elements) != len(out.Values.Arrays) {
		return out, &ErrDecode{Message: "LongToLongMultiMap", Reason: "keys/values array length mismatch"}
	}
	return out, nil
}

// DecodePolyLineArray decodes a ProtoPolyLineArray message.
func DecodePolyLineArray(data []byte) (PolyLineArray, error) {
	var out PolyLineArray
	err := forEachField(data, "PolyLineArray", func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == polyLineArrayFieldEncodings {
			cp := make([]byte, len(v))
			copy(cp, v)
			out.Encodings = append(out.Encodings, cp)
		}
		return nil
	})
	return out, err
}

// DecodePolygonArray decodes a ProtoPolygonArray message.
func DecodePolygonArray(data []byte) (PolygonArray, error) {
	var out PolygonArray
	err := forEachField(data, "PolygonArray", func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == polygonArrayFieldEncodings {
			cp := make([]byte, len(v))
			copy(cp, v)
			out.Encodings = append(out.Encodings, cp)
		}
		return nil
	})
	return out, err
}
