package atlas_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goatlas "github.com/atlasgo/atlas/internal/archive"
	"github.com/atlasgo/atlas/internal/geo"
	"github.com/atlasgo/atlas/internal/wire"
	"github.com/atlasgo/atlas/pkg/atlas"
)

const precision = geo.Precision7

func loc(lat, lon int32) geo.Location { return geo.Location{Latitude: lat, Longitude: lon} }

// buildFixture assembles a small but complete reference archive: 2
// Points, 1 Line, 1 Area, 2 Nodes, an Edge pair (master + reversed), and
// 1 Relation referencing one node and the master edge.
func buildFixture(t *testing.T) string {
	t.Helper()

	dict := wire.IntegerStringDictionary{
		Indexes: []int32{0, 1, 2, 3},
		Words:   []string{"amenity", "cafe", "node-member", "edge-member"},
	}

	pointIdentifiers := wire.LongArray{Elements: []int64{101, 102}}
	pointIdentifierIndex := wire.LongToLongMap{
		Keys:   wire.LongArray{Elements: []int64{101, 102}},
		Values: wire.LongArray{Elements: []int64{0, 1}},
	}
	pointGeometry := wire.LongArray{Elements: []int64{
		loc(10*precision, 10*precision).PackedInt(),
		loc(50*precision, 50*precision).PackedInt(),
	}}
	pointTags := cafeTagStoreRows(2)

	nodeIdentifiers := wire.LongArray{Elements: []int64{201, 202}}
	nodeIdentifierIndex := wire.LongToLongMap{
		Keys:   wire.LongArray{Elements: []int64{201, 202}},
		Values: wire.LongArray{Elements: []int64{0, 1}},
	}
	nodeGeometry := wire.LongArray{Elements: []int64{
		loc(0, 0).PackedInt(),
		loc(100*precision, 100*precision).PackedInt(),
	}}
	nodeTags := cafeTagStoreRows(2)
	nodeIndexToRelations := wire.LongToLongMultiMap{
		Keys:   wire.LongArray{Elements: []int64{0}},
		Values: wire.LongArrayOfArrays{Arrays: []wire.LongArray{{Elements: []int64{0}}}},
	}
	nodeInEdges := wire.LongArrayOfArrays{Arrays: []wire.LongArray{
		{Elements: []int64{1}},
		{Elements: []int64{0}},
	}}
	nodeOutEdges := wire.LongArrayOfArrays{Arrays: []wire.LongArray{
		{Elements: []int64{0}},
		{Elements: []int64{1}},
	}}

	edgeIdentifiers := wire.LongArray{Elements: []int64{301, -301}}
	edgeIdentifierIndex := wire.LongToLongMap{
		Keys:   wire.LongArray{Elements: []int64{301, -301}},
		Values: wire.LongArray{Elements: []int64{0, 1}},
	}
	edgeForward, err := geo.PolyLine{Vertices: []geo.Location{loc(0, 0), loc(100*precision, 100*precision)}}.Encode()
	require.NoError(t, err)
	edgeBackward, err := geo.PolyLine{Vertices: []geo.Location{loc(100*precision, 100*precision), loc(0, 0)}}.Encode()
	require.NoError(t, err)
	edgeGeometry := wire.PolyLineArray{Encodings: [][]byte{edgeForward, edgeBackward}}
	edgeTags := cafeTagStoreRows(2)
	edgeIndexToRelations := wire.LongToLongMultiMap{
		Keys:   wire.LongArray{Elements: []int64{0}},
		Values: wire.LongArrayOfArrays{Arrays: []wire.LongArray{{Elements: []int64{0}}}},
	}
	edgeStartNode := wire.LongArray{Elements: []int64{0, 1}}
	edgeEndNode := wire.LongArray{Elements: []int64{1, 0}}

	lineIdentifiers := wire.LongArray{Elements: []int64{401}}
	lineIdentifierIndex := wire.LongToLongMap{
		Keys:   wire.LongArray{Elements: []int64{401}},
		Values: wire.LongArray{Elements: []int64{0}},
	}
	lineEncoding, err := geo.PolyLine{Vertices: []geo.Location{loc(20 * precision, 20*precision), loc(30 * precision, 30*precision)}}.Encode()
	require.NoError(t, err)
	lineGeometry := wire.PolyLineArray{Encodings: [][]byte{lineEncoding}}
	lineTags := cafeTagStoreRows(1)

	areaIdentifiers := wire.LongArray{Elements: []int64{501}}
	areaIdentifierIndex := wire.LongToLongMap{
		Keys:   wire.LongArray{Elements: []int64{501}},
		Values: wire.LongArray{Elements: []int64{0}},
	}
	areaPolygon := geo.Polygon{Vertices: []geo.Location{
		loc(0, 0),
		loc(0, 40*precision),
		loc(40*precision, 40*precision),
		loc(40*precision, 0),
	}}
	areaEncoding, err := areaPolygon.Encode()
	require.NoError(t, err)
	areaGeometry := wire.PolygonArray{Encodings: [][]byte{areaEncoding}}
	areaTags := cafeTagStoreRows(1)

	relationIdentifiers := wire.LongArray{Elements: []int64{601}}
	relationIdentifierIndex := wire.LongToLongMap{
		Keys:   wire.LongArray{Elements: []int64{601}},
		Values: wire.LongArray{Elements: []int64{0}},
	}
	relationTags := cafeTagStoreRows(1)
	relationMemberTypes := wire.ByteArrayOfArrays{Arrays: [][]byte{{byte(goatlas.KindNode), byte(goatlas.KindEdge)}}}
	relationMemberIndices := wire.LongArrayOfArrays{Arrays: []wire.LongArray{{Elements: []int64{0, 0}}}}
	relationMemberRoles := wire.IntegerArrayOfArrays{Arrays: []wire.IntArray{{Elements: []int32{2, 3}}}}

	metadata := wire.AtlasMetaData{
		PointNumber:    2,
		NodeNumber:     2,
		EdgeNumber:     2,
		LineNumber:     1,
		AreaNumber:     1,
		RelationNumber: 1,
		Country:        "USA",
	}

	entries := map[string][]byte{
		"metadata":   wire.EncodeAtlasMetaData(metadata),
		"dictionary": wire.EncodeIntegerStringDictionary(dict),

		"pointIdentifiers":             wire.EncodeLongArray(pointIdentifiers),
		"pointIdentifierToArrayIndex":  wire.EncodeLongToLongMap(pointIdentifierIndex),
		"pointGeometry":                wire.EncodeLongArray(pointGeometry),
		"pointTags":                    wire.EncodePackedTagStore(pointTags),
		"pointIndexToRelationIndices":  wire.EncodeLongToLongMultiMap(wire.LongToLongMultiMap{}),

		"nodeIdentifiers":            wire.EncodeLongArray(nodeIdentifiers),
		"nodeIdentifierToArrayIndex": wire.EncodeLongToLongMap(nodeIdentifierIndex),
		"nodeGeometry":               wire.EncodeLongArray(nodeGeometry),
		"nodeTags":                   wire.EncodePackedTagStore(nodeTags),
		"nodeIndexToRelationIndices": wire.EncodeLongToLongMultiMap(nodeIndexToRelations),
		"nodeInEdgesIndices":         wire.EncodeLongArrayOfArrays(nodeInEdges),
		"nodeOutEdgesIndices":        wire.EncodeLongArrayOfArrays(nodeOutEdges),

		"edgeIdentifiers":            wire.EncodeLongArray(edgeIdentifiers),
		"edgeIdentifierToArrayIndex": wire.EncodeLongToLongMap(edgeIdentifierIndex),
		"edgeGeometry":               wire.EncodePolyLineArray(edgeGeometry),
		"edgeTags":                   wire.EncodePackedTagStore(edgeTags),
		"edgeIndexToRelationIndices": wire.EncodeLongToLongMultiMap(edgeIndexToRelations),
		"edgeStartNodeIndex":         wire.EncodeLongArray(edgeStartNode),
		"edgeEndNodeIndex":           wire.EncodeLongArray(edgeEndNode),

		"lineIdentifiers":             wire.EncodeLongArray(lineIdentifiers),
		"lineIdentifierToArrayIndex":  wire.EncodeLongToLongMap(lineIdentifierIndex),
		"lineGeometry":                wire.EncodePolyLineArray(lineGeometry),
		"lineTags":                    wire.EncodePackedTagStore(lineTags),
		"lineIndexToRelationIndices":  wire.EncodeLongToLongMultiMap(wire.LongToLongMultiMap{}),

		"areaIdentifiers":             wire.EncodeLongArray(areaIdentifiers),
		"areaIdentifierToArrayIndex":  wire.EncodeLongToLongMap(areaIdentifierIndex),
		"areaGeometry":                wire.EncodePolygonArray(areaGeometry),
		"areaTags":                    wire.EncodePackedTagStore(areaTags),
		"areaIndexToRelationIndices":  wire.EncodeLongToLongMultiMap(wire.LongToLongMultiMap{}),

		"relationIdentifiers":            wire.EncodeLongArray(relationIdentifiers),
		"relationIdentifierToArrayIndex": wire.EncodeLongToLongMap(relationIdentifierIndex),
		"relationTags":                   wire.EncodePackedTagStore(relationTags),
		"relationIndexToRelationIndices": wire.EncodeLongToLongMultiMap(wire.LongToLongMultiMap{}),
		"relationMemberTypes":            wire.EncodeByteArrayOfArrays(relationMemberTypes),
		"relationMemberIndices":          wire.EncodeLongArrayOfArrays(relationMemberIndices),
		"relationMemberRoles":            wire.EncodeIntegerArrayOfArrays(relationMemberRoles),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "fixture.atlas")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func cafeTagStoreRows(n int) wire.PackedTagStore {
	keys := make([]wire.IntArray, n)
	values := make([]wire.IntArray, n)
	for i := range keys {
		keys[i] = wire.IntArray{Elements: []int32{0}}
		values[i] = wire.IntArray{Elements: []int32{1}}
	}
	return wire.PackedTagStore{
		Keys:   wire.IntegerArrayOfArrays{Arrays: keys},
		Values: wire.IntegerArrayOfArrays{Arrays: values},
	}
}

func openFixture(t *testing.T) *atlas.Atlas {
	t.Helper()
	path := buildFixture(t)
	a, err := atlas.Open(path, atlas.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAtlasEntityCounts(t *testing.T) {
	a := openFixture(t)

	n, err := a.NumberOfPoints()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = a.NumberOfNodes()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = a.NumberOfEdges()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = a.NumberOfRelations()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAtlasEntitiesConcatenatesInKindOrder(t *testing.T) {
	a := openFixture(t)
	entities, err := a.Entities()
	require.NoError(t, err)
	require.Len(t, entities, 2+1+1+2+2+1)

	var kinds []atlas.Kind
	for _, e := range entities {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, atlas.KindPoint, kinds[0])
	assert.Equal(t, atlas.KindLine, kinds[2])
	assert.Equal(t, atlas.KindArea, kinds[3])
	assert.Equal(t, atlas.KindNode, kinds[4])
	assert.Equal(t, atlas.KindEdge, kinds[6])
	assert.Equal(t, atlas.KindRelation, kinds[8])
}

func TestAtlasPointLookupAndTags(t *testing.T) {
	a := openFixture(t)
	p, ok, err := a.Point(101)
	require.NoError(t, err)
	require.True(t, ok)

	tags, err := p.Tags()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"amenity": "cafe"}, tags)

	_, ok, err = a.Point(999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEdgeReversalInvariants(t *testing.T) {
	a := openFixture(t)
	forward, ok, err := a.Edge(301)
	require.NoError(t, err)
	require.True(t, ok)

	hasReversed, err := forward.HasReversedEdge()
	require.NoError(t, err)
	assert.True(t, hasReversed)

	backward, ok, err := forward.ReversedEdge()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(-301), backward.Identifier())

	roundTrip, ok, err := backward.ReversedEdge()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, forward.Identifier(), roundTrip.Identifier())

	assert.True(t, forward.IsMasterEdge())
	assert.False(t, backward.IsMasterEdge())
}

func TestEdgeStartEndAndNodeAdjacency(t *testing.T) {
	a := openFixture(t)
	forward, _, err := a.Edge(301)
	require.NoError(t, err)

	start, err := forward.Start()
	require.NoError(t, err)
	end, err := forward.End()
	require.NoError(t, err)
	assert.Equal(t, int64(201), start.Identifier())
	assert.Equal(t, int64(202), end.Identifier())

	outEdges, err := start.OutEdges()
	require.NoError(t, err)
	require.Len(t, outEdges, 1)
	assert.Equal(t, int64(301), outEdges[0].Identifier())

	inEdges, err := end.InEdges()
	require.NoError(t, err)
	require.Len(t, inEdges, 1)
	assert.Equal(t, int64(301), inEdges[0].Identifier())
}

func TestRelationMembersAndBounds(t *testing.T) {
	a := openFixture(t)
	r, ok, err := a.Relation(601)
	require.NoError(t, err)
	require.True(t, ok)

	members, err := r.Members()
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, m := range members {
		assert.Equal(t, int64(601), m.OwningRelation)
	}

	bounds, err := r.Bounds()
	require.NoError(t, err)
	assert.Equal(t, int32(0), bounds.LowerLeft.Latitude)
	assert.Equal(t, int32(100*precision), bounds.UpperRight.Latitude)
}

func TestAreasCoveringStrictInterior(t *testing.T) {
	a := openFixture(t)

	inside := loc(20*precision, 20*precision)
	covering, err := a.AreasCovering(inside)
	require.NoError(t, err)
	require.Len(t, covering, 1)
	assert.Equal(t, int64(501), covering[0].Identifier())

	onBoundary := loc(0, 20*precision)
	covering, err = a.AreasCovering(onBoundary)
	require.NoError(t, err)
	assert.Empty(t, covering)
}

func TestPointsWithinExcludesOutsidePoints(t *testing.T) {
	a := openFixture(t)
	rect := geo.NewRectangle(loc(45*precision, 45*precision), loc(55*precision, 55*precision))

	within, err := a.PointsWithin(rect)
	require.NoError(t, err)
	require.Len(t, within, 1)
	assert.Equal(t, int64(102), within[0].Identifier())
}

func TestLinesContainingPointOnSegment(t *testing.T) {
	a := openFixture(t)
	onLine := loc(25*precision, 25*precision)

	lines, err := a.LinesContaining(onLine)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(401), lines[0].Identifier())
}

func TestIdentifierDecomposition(t *testing.T) {
	assert.Equal(t, int64(222222), atlas.OSMIdentifier(222222001003))
	assert.Equal(t, int64(1), atlas.CountryCode(123001002))
	assert.Equal(t, int64(220), atlas.WaySectionIndex(3101220))
}
