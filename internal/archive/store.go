// Package archive implements the atlas archive reader and the lazy
// column store built on top of it: each named entry maps onto a typed
// column whose decoder runs at most once, the first time the column is
// accessed.
package archive

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/atlasgo/atlas/internal/dictionary"
	"github.com/atlasgo/atlas/internal/geo"
	"github.com/atlasgo/atlas/internal/tagstore"
	"github.com/atlasgo/atlas/internal/wire"
)

// columnSet holds the per-kind lazy columns. Not every field applies to
// every kind; only the ones the kind's entry names cover are ever
// populated (see fields.go).
type columnSet struct {
	identifiers      cell[[]int64]
	identifierIndex  cell[map[int64]int]
	locations        cell[[]int64]          // Point, Node
	polylines        cell[[]geo.PolyLine]   // Line, Edge
	polygons         cell[[]geo.Polygon]    // Area
	tags             cell[*tagstore.PackedTagStore]
	indexToRelations cell[map[int][]int]

	inEdges  cell[[][]int] // Node
	outEdges cell[[][]int] // Node

	startNode cell[[]int] // Edge
	endNode   cell[[]int] // Edge

	memberTypes   cell[[][]byte]  // Relation
	memberIndices cell[[][]int64] // Relation
	memberRoles   cell[[][]int32] // Relation
}

// Store is the lazily-materialized column store for one atlas archive.
type Store struct {
	reader *Reader
	logger *zap.SugaredLogger

	metadata cell[wire.AtlasMetaData]
	dict     cell[*dictionary.StringDictionary]

	columns map[Kind]*columnSet
}

// Open opens the archive at path and returns a Store with nothing yet
// materialized. logger may be nil, in which case a no-op logger is used.
func Open(path string, logger *zap.SugaredLogger) (*Store, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	columns := make(map[Kind]*columnSet, len(AllKinds()))
	for _, k := range AllKinds() {
		columns[k] = &columnSet{}
	}
	return &Store{reader: r, logger: logger, columns: columns}, nil
}

// Close releases the archive's file handle.
func (s *Store) Close() error {
	return s.reader.Close()
}

func (s *Store) load(name string) ([]byte, error) {
	if !isKnownField(name) {
		return nil, &ErrUnknownField{Name: name}
	}
	return s.reader.Load(name)
}

// Metadata returns the atlas-wide metadata record.
func (s *Store) Metadata() (wire.AtlasMetaData, error) {
	return s.metadata.get(func() (wire.AtlasMetaData, error) {
		data, err := s.load(fieldMetadata)
		if err != nil {
			return wire.AtlasMetaData{}, err
		}
		m, err := wire.DecodeAtlasMetaData(data)
		if err != nil {
			return wire.AtlasMetaData{}, fmt.Errorf("decode metadata: %w", err)
		}
		return m, nil
	})
}

// Dictionary returns the shared string dictionary.
func (s *Store) Dictionary() (*dictionary.StringDictionary, error) {
	return s.dict.get(func() (*dictionary.StringDictionary, error) {
		data, err := s.load(fieldDictionary)
		if err != nil {
			return nil, err
		}
		d, err := wire.DecodeIntegerStringDictionary(data)
		if err != nil {
			return nil, fmt.Errorf("decode dictionary: %w", err)
		}
		return dictionary.New(d.Indexes, d.Words), nil
	})
}

func (s *Store) set(k Kind) *columnSet {
	return s.columns[k]
}

// Identifiers returns kind K's identifier column.
func (s *Store) Identifiers(k Kind) ([]int64, error) {
	return s.set(k).identifiers.get(func() ([]int64, error) {
		data, err := s.load(k.field(suffixIdentifiers))
		if err != nil {
			return nil, err
		}
		arr, err := wire.DecodeLongArray(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s identifiers: %w", k, err)
		}
		return arr.Elements, nil
	})
}

// IdentifierIndex returns kind K's identifier->row-index map. The
// invariant identifiers[index[id]] == id is established by the producer;
// this reader trusts it rather than re-verifying on every load.
func (s *Store) IdentifierIndex(k Kind) (map[int64]int, error) {
	return s.set(k).identifierIndex.get(func() (map[int64]int, error) {
		data, err := s.load(k.field(suffixIdentifierToArrayIndex))
		if err != nil {
			return nil, err
		}
		m, err := wire.DecodeLongToLongMap(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s identifierToArrayIndex: %w", k, err)
		}
		out := make(map[int64]int, len(m.Keys.Elements))
		for i, id := range m.Keys.Elements {
			out[id] = int(m.Values.Elements[i])
		}
		return out, nil
	})
}

// Locations returns the packed-int64 location column for Point or Node.
func (s *Store) Locations(k Kind) ([]int64, error) {
	return s.set(k).locations.get(func() ([]int64, error) {
		data, err := s.load(k.field(suffixGeometry))
		if err != nil {
			return nil, err
		}
		arr, err := wire.DecodeLongArray(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s geometry: %w", k, err)
		}
		return arr.Elements, nil
	})
}

// PolyLines returns the polyline geometry column for Line or Edge.
func (s *Store) PolyLines(k Kind) ([]geo.PolyLine, error) {
	return s.set(k).polylines.get(func() ([]geo.PolyLine, error) {
		data, err := s.load(k.field(suffixGeometry))
		if err != nil {
			return nil, err
		}
		arr, err := wire.DecodePolyLineArray(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s geometry: %w", k, err)
		}
		out := make([]geo.PolyLine, len(arr.Encodings))
		for i, enc := range arr.Encodings {
			line, err := geo.DecodePolyLine(enc)
			if err != nil {
				return nil, fmt.Errorf("decode %s geometry row %d: %w", k, i, err)
			}
			if len(line.Vertices) == 0 {
				return nil, fmt.Errorf("decode %s geometry row %d: %w", k, i, &ErrCorruptArchive{Name: k.field(suffixGeometry), Reason: "polyline has zero vertices"})
			}
			out[i] = line
		}
		return out, nil
	})
}

// Polygons returns the polygon geometry column for Area.
func (s *Store) Polygons(k Kind) ([]geo.Polygon, error) {
	return s.set(k).polygons.get(func() ([]geo.Polygon, error) {
		data, err := s.load(k.field(suffixGeometry))
		if err != nil {
			return nil, err
		}
		arr, err := wire.DecodePolygonArray(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s geometry: %w", k, err)
		}
		out := make([]geo.Polygon, len(arr.Encodings))
		for i, enc := range arr.Encodings {
			poly, err := geo.DecodePolygon(enc)
			if err != nil {
				return nil, fmt.Errorf("decode %s geometry row %d: %w", k, i, err)
			}
			out[i] = poly
		}
		return out, nil
	})
}

// Tags returns kind K's packed tag store.
func (s *Store) Tags(k Kind) (*tagstore.PackedTagStore, error) {
	return s.set(k).tags.get(func() (*tagstore.PackedTagStore, error) {
		data, err := s.load(k.field(suffixTags))
		if err != nil {
			return nil, err
		}
		pts, err := wire.DecodePackedTagStore(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s tags: %w", k, err)
		}
		keys := make([][]int32, len(pts.Keys.Arrays))
		values := make([][]int32, len(pts.Values.Arrays))
		for i, row := range pts.Keys.Arrays {
			keys[i] = row.Elements
		}
		for i, row := range pts.Values.Arrays {
			values[i] = row.Elements
		}
		store, err := tagstore.New(keys, values)
		if err != nil {
			return nil, fmt.Errorf("decode %s tags: %w", k, err)
		}
		return store, nil
	})
}

// IndexToRelationIndices returns kind K's member-of-relations map: row
// index to the list of relation row indices that reference it.
func (s *Store) IndexToRelationIndices(k Kind) (map[int][]int, error) {
	return s.set(k).indexToRelations.get(func() (map[int][]int, error) {
		data, err := s.load(k.field(suffixIndexToRelationIndices))
		if err != nil {
			return nil, err
		}
		mm, err := wire.DecodeLongToLongMultiMap(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s indexToRelationIndices: %w", k, err)
		}
		out := make(map[int][]int, len(mm.Keys.Elements))
		for i, rowID := range mm.Keys.Elements {
			relIdx := make([]int, len(mm.Values.Arrays[i].Elements))
			for j, v := range mm.Values.Arrays[i].Elements {
				relIdx[j] = int(v)
			}
			out[int(rowID)] = relIdx
		}
		return out, nil
	})
}

// InEdgesIndices returns the Node-only in-edges column (edge row
// indices).
func (s *Store) InEdgesIndices() ([][]int, error) {
	return s.set(KindNode).inEdges.get(func() ([][]int, error) {
		return s.loadIndexRows(KindNode.field(suffixInEdgesIndices))
	})
}

// OutEdgesIndices returns the Node-only out-edges column.
func (s *Store) OutEdgesIndices() ([][]int, error) {
	return s.set(KindNode).outEdges.get(func() ([][]int, error) {
		return s.loadIndexRows(KindNode.field(suffixOutEdgesIndices))
	})
}

func (s *Store) loadIndexRows(name string) ([][]int, error) {
	data, err := s.load(name)
	if err != nil {
		return nil, err
	}
	arr, err := wire.DecodeLongArrayOfArrays(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	out := make([][]int, len(arr.Arrays))
	for i, row := range arr.Arrays {
		r := make([]int, len(row.Elements))
		for j, v := range row.Elements {
			r[j] = int(v)
		}
		out[i] = r
	}
	return out, nil
}

// StartNodeIndex returns the Edge-only start-node row index column.
func (s *Store) StartNodeIndex() ([]int, error) {
	return s.set(KindEdge).startNode.get(func() ([]int, error) {
		return s.loadIndexColumn(KindEdge.field(suffixStartNodeIndex))
	})
}

// EndNodeIndex returns the Edge-only end-node row index column.
func (s *Store) EndNodeIndex() ([]int, error) {
	return s.set(KindEdge).endNode.get(func() ([]int, error) {
		return s.loadIndexColumn(KindEdge.field(suffixEndNodeIndex))
	})
}

func (s *Store) loadIndexColumn(name string) ([]int, error) {
	data, err := s.load(name)
	if err != nil {
		return nil, err
	}
	arr, err := wire.DecodeLongArray(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	out := make([]int, len(arr.Elements))
	for i, v := range arr.Elements {
		out[i] = int(v)
	}
	return out, nil
}

// MemberTypes returns the Relation-only per-row member-type byte array.
func (s *Store) MemberTypes() ([][]byte, error) {
	return s.set(KindRelation).memberTypes.get(func() ([][]byte, error) {
		data, err := s.load(KindRelation.field(suffixMemberTypes))
		if err != nil {
			return nil, err
		}
		arr, err := wire.DecodeByteArrayOfArrays(data)
		if err != nil {
			return nil, fmt.Errorf("decode relationMemberTypes: %w", err)
		}
		return arr.Arrays, nil
	})
}

// MemberIndices returns the Relation-only per-row member row-index
// array, parallel to MemberTypes.
func (s *Store) MemberIndices() ([][]int64, error) {
	return s.set(KindRelation).memberIndices.get(func() ([][]int64, error) {
		data, err := s.load(KindRelation.field(suffixMemberIndices))
		if err != nil {
			return nil, err
		}
		arr, err := wire.DecodeLongArrayOfArrays(data)
		if err != nil {
			return nil, fmt.Errorf("decode relationMemberIndices: %w", err)
		}
		out := make([][]int64, len(arr.Arrays))
		for i, row := range arr.Arrays {
			out[i] = row.Elements
		}
		return out, nil
	})
}

// MemberRoles returns the Relation-only per-row member role dictionary
// index array, parallel to MemberTypes.
func (s *Store) MemberRoles() ([][]int32, error) {
	return s.set(KindRelation).memberRoles.get(func() ([][]int32, error) {
		data, err := s.load(KindRelation.field(suffixMemberRoles))
		if err != nil {
			return nil, err
		}
		arr, err := wire.DecodeIntegerArrayOfArrays(data)
		if err != nil {
			return nil, fmt.Errorf("decode relationMemberRoles: %w", err)
		}
		out := make([][]int32, len(arr.Arrays))
		for i, row := range arr.Arrays {
			out[i] = row.Elements
		}
		return out, nil
	})
}

// LoadAllFields forces materialization of every column for every kind,
// plus the metadata and dictionary. It does not build spatial indices;
// callers that also want those prebuilt should do so via the facade's
// eager-open option.
func (s *Store) LoadAllFields() error {
	if _, err := s.Metadata(); err != nil {
		return err
	}
	if _, err := s.Dictionary(); err != nil {
		return err
	}
	for _, k := range AllKinds() {
		if _, err := s.Identifiers(k); err != nil {
			return err
		}
		if _, err := s.IdentifierIndex(k); err != nil {
			return err
		}
		switch k {
		case KindPoint, KindNode:
			if _, err := s.Locations(k); err != nil {
				return err
			}
		case KindLine, KindEdge:
			if _, err := s.PolyLines(k); err != nil {
				return err
			}
		case KindArea:
			if _, err := s.Polygons(k); err != nil {
				return err
			}
		}
		if _, err := s.Tags(k); err != nil {
			return err
		}
		if _, err := s.IndexToRelationIndices(k); err != nil {
			return err
		}
	}
	if _, err := s.InEdgesIndices(); err != nil {
		return err
	}
	if _, err := s.OutEdgesIndices(); err != nil {
		return err
	}
	if _, err := s.StartNodeIndex(); err != nil {
		return err
	}
	if _, err := s.EndNodeIndex(); err != nil {
		return err
	}
	if _, err := s.MemberTypes(); err != nil {
		return err
	}
	if _, err := s.MemberIndices(); err != nil {
		return err
	}
	if _, err := s.MemberRoles(); err != nil {
		return err
	}
	s.logger.Debugw("loaded all atlas fields")
	return nil
}
