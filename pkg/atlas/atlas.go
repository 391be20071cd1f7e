// Package atlas is the top-level facade over a read-only, lazily
// materialized columnar map archive: by-identifier lookup, kind
// iterators, and bounding-box spatial queries over six entity kinds.
package atlas

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/atlasgo/atlas/internal/archive"
	"github.com/atlasgo/atlas/internal/geo"
	"github.com/atlasgo/atlas/internal/spatial"
)

// ErrEntityNotFound indicates no entity of the given kind carries the
// given identifier.
type ErrEntityNotFound struct {
	Kind       Kind
	Identifier int64
}

func (e *ErrEntityNotFound) Error() string {
	return fmt.Sprintf("no %s entity with identifier %d", e.Kind, e.Identifier)
}

// Atlas is a handle onto one open archive. It borrows nothing from
// callers and owns the underlying file handle; Close releases it.
//
// Atlas is not safe for concurrent use during its lazy-load phase: the
// underlying store and spatial indices populate themselves without
// synchronization on first access. Once every column and spatial index
// of interest has been forced (Eager open forces all of them),
// concurrent read-only queries are safe.
type Atlas struct {
	store   *archive.Store
	logger  *zap.SugaredLogger
	spatial map[Kind]*spatial.Index
}

// Open opens the archive at path.
func Open(path string, opts OpenOptions) (*Atlas, error) {
	logger := opts.Logger
	var sugared *zap.SugaredLogger
	if logger == nil {
		sugared = zap.NewNop().Sugar()
	} else {
		sugared = logger.Sugar()
	}
	store, err := archive.Open(path, sugared)
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	a := &Atlas{store: store, logger: sugared, spatial: make(map[Kind]*spatial.Index)}
	if opts.Eager {
		if err := store.LoadAllFields(); err != nil {
			store.Close()
			return nil, fmt.Errorf("eager load atlas: %w", err)
		}
		for _, k := range archive.AllKinds() {
			if _, err := a.spatialIndex(k); err != nil {
				store.Close()
				return nil, fmt.Errorf("eager build %s spatial index: %w", k, err)
			}
		}
	}
	return a, nil
}

// Close releases the archive's underlying file handle.
func (a *Atlas) Close() error {
	return a.store.Close()
}

// Metadata returns the atlas-wide metadata record.
func (a *Atlas) Metadata() (Metadata, error) {
	m, err := a.store.Metadata()
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{raw: m}, nil
}

func (a *Atlas) entityAt(k Kind, row int) (Entity, error) {
	switch k {
	case KindPoint:
		return a.pointAt(row)
	case KindLine:
		return a.lineAt(row)
	case KindArea:
		return a.areaAt(row)
	case KindNode:
		return a.nodeAt(row)
	case KindEdge:
		return a.edgeAt(row)
	case KindRelation:
		return a.relationAt(row)
	default:
		return nil, &archive.ErrInvalidKind{Value: byte(k)}
	}
}

func (a *Atlas) lookupRow(k Kind, id int64) (int, bool, error) {
	idx, err := a.store.IdentifierIndex(k)
	if err != nil {
		return 0, false, err
	}
	row, ok := idx[id]
	return row, ok, nil
}

// Entity resolves id within kind to its flyweight. It fails with
// ErrInvalidKind for an out-of-range kind and with ErrEntityNotFound if
// no such entity exists.
func (a *Atlas) Entity(id int64, kind Kind) (Entity, error) {
	if _, err := archive.KindFromByte(byte(kind)); err != nil {
		return nil, err
	}
	row, ok, err := a.lookupRow(kind, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ErrEntityNotFound{Kind: kind, Identifier: id}
	}
	return a.entityAt(kind, row)
}

// Point looks up a Point by identifier.
func (a *Atlas) Point(id int64) (Point, bool, error) {
	row, ok, err := a.lookupRow(KindPoint, id)
	if err != nil || !ok {
		return Point{}, ok, err
	}
	p, err := a.pointAt(row)
	return p, true, err
}

// Line looks up a Line by identifier.
func (a *Atlas) Line(id int64) (Line, bool, error) {
	row, ok, err := a.lookupRow(KindLine, id)
	if err != nil || !ok {
		return Line{}, ok, err
	}
	l, err := a.lineAt(row)
	return l, true, err
}

// Area looks up an Area by identifier.
func (a *Atlas) Area(id int64) (Area, bool, error) {
	row, ok, err := a.lookupRow(KindArea, id)
	if err != nil || !ok {
		return Area{}, ok, err
	}
	ar, err := a.areaAt(row)
	return ar, true, err
}

// Node looks up a Node by identifier.
func (a *Atlas) Node(id int64) (Node, bool, error) {
	row, ok, err := a.lookupRow(KindNode, id)
	if err != nil || !ok {
		return Node{}, ok, err
	}
	n, err := a.nodeAt(row)
	return n, true, err
}

// Edge looks up an Edge by identifier.
func (a *Atlas) Edge(id int64) (Edge, bool, error) {
	row, ok, err := a.lookupRow(KindEdge, id)
	if err != nil || !ok {
		return Edge{}, ok, err
	}
	e, err := a.edgeAt(row)
	return e, true, err
}

// Relation looks up a Relation by identifier.
func (a *Atlas) Relation(id int64) (Relation, bool, error) {
	row, ok, err := a.lookupRow(KindRelation, id)
	if err != nil || !ok {
		return Relation{}, ok, err
	}
	r, err := a.relationAt(row)
	return r, true, err
}

// Points iterates every Point in storage order, optionally filtered by
// a single predicate.
func (a *Atlas) Points(predicate ...func(Point) bool) ([]Point, error) {
	ids, err := a.store.Identifiers(KindPoint)
	if err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(ids))
	for row := range ids {
		p, err := a.pointAt(row)
		if err != nil {
			return nil, err
		}
		if len(predicate) > 0 && !predicate[0](p) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Lines iterates every Line in storage order, optionally filtered by a
// single predicate.
func (a *Atlas) Lines(predicate ...func(Line) bool) ([]Line, error) {
	ids, err := a.store.Identifiers(KindLine)
	if err != nil {
		return nil, err
	}
	out := make([]Line, 0, len(ids))
	for row := range ids {
		l, err := a.lineAt(row)
		if err != nil {
			return nil, err
		}
		if len(predicate) > 0 && !predicate[0](l) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// Areas iterates every Area in storage order, optionally filtered by a
// single predicate.
func (a *Atlas) Areas(predicate ...func(Area) bool) ([]Area, error) {
	ids, err := a.store.Identifiers(KindArea)
	if err != nil {
		return nil, err
	}
	out := make([]Area, 0, len(ids))
	for row := range ids {
		ar, err := a.areaAt(row)
		if err != nil {
			return nil, err
		}
		if len(predicate) > 0 && !predicate[0](ar) {
			continue
		}
		out = append(out, ar)
	}
	return out, nil
}

// Nodes iterates every Node in storage order, optionally filtered by a
// single predicate.
func (a *Atlas) Nodes(predicate ...func(Node) bool) ([]Node, error) {
	ids, err := a.store.Identifiers(KindNode)
	if err != nil {
		return nil, err
	}
	out := make([]Node, 0, len(ids))
	for row := range ids {
		n, err := a.nodeAt(row)
		if err != nil {
			return nil, err
		}
		if len(predicate) > 0 && !predicate[0](n) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// Edges iterates every Edge in storage order, optionally filtered by a
// single predicate.
func (a *Atlas) Edges(predicate ...func(Edge) bool) ([]Edge, error) {
	ids, err := a.store.Identifiers(KindEdge)
	if err != nil {
		return nil, err
	}
	out := make([]Edge, 0, len(ids))
	for row := range ids {
		e, err := a.edgeAt(row)
		if err != nil {
			return nil, err
		}
		if len(predicate) > 0 && !predicate[0](e) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Relations iterates every Relation in storage order, optionally
// filtered by a single predicate.
func (a *Atlas) Relations(predicate ...func(Relation) bool) ([]Relation, error) {
	ids, err := a.store.Identifiers(KindRelation)
	if err != nil {
		return nil, err
	}
	out := make([]Relation, 0, len(ids))
	for row := range ids {
		r, err := a.relationAt(row)
		if err != nil {
			return nil, err
		}
		if len(predicate) > 0 && !predicate[0](r) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Entities concatenates every entity across all six kinds, in Point,
// Line, Area, Node, Edge, Relation order.
func (a *Atlas) Entities() ([]Entity, error) {
	var out []Entity
	for _, k := range archive.AllKinds() {
		ids, err := a.store.Identifiers(k)
		if err != nil {
			return nil, err
		}
		for row := range ids {
			e, err := a.entityAt(k, row)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// NumberOfPoints forces only the Point identifier column.
func (a *Atlas) NumberOfPoints() (int, error) { return a.count(KindPoint) }

// NumberOfLines forces only the Line identifier column.
func (a *Atlas) NumberOfLines() (int, error) { return a.count(KindLine) }

// NumberOfAreas forces only the Area identifier column.
func (a *Atlas) NumberOfAreas() (int, error) { return a.count(KindArea) }

// NumberOfNodes forces only the Node identifier column.
func (a *Atlas) NumberOfNodes() (int, error) { return a.count(KindNode) }

// NumberOfEdges forces only the Edge identifier column.
func (a *Atlas) NumberOfEdges() (int, error) { return a.count(KindEdge) }

// NumberOfRelations forces only the Relation identifier column.
func (a *Atlas) NumberOfRelations() (int, error) { return a.count(KindRelation) }

func (a *Atlas) count(k Kind) (int, error) {
	ids, err := a.store.Identifiers(k)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// boundsEntries computes the per-row bounding rectangle used to
// populate kind k's spatial index.
func (a *Atlas) boundsEntries(k Kind) ([]spatial.Entry, error) {
	switch k {
	case KindPoint, KindNode:
		locs, err := a.store.Locations(k)
		if err != nil {
			return nil, err
		}
		entries := make([]spatial.Entry, len(locs))
		for i, packed := range locs {
			entries[i] = spatial.Entry{Row: i, Bounds: geo.LocationFromPackedInt(packed).Bounds()}
		}
		return entries, nil
	case KindLine, KindEdge:
		lines, err := a.store.PolyLines(k)
		if err != nil {
			return nil, err
		}
		entries := make([]spatial.Entry, len(lines))
		for i, l := range lines {
			entries[i] = spatial.Entry{Row: i, Bounds: l.Bounds()}
		}
		return entries, nil
	case KindArea:
		polys, err := a.store.Polygons(k)
		if err != nil {
			return nil, err
		}
		entries := make([]spatial.Entry, len(polys))
		for i, p := range polys {
			entries[i] = spatial.Entry{Row: i, Bounds: p.Bounds()}
		}
		return entries, nil
	case KindRelation:
		rels, err := a.Relations()
		if err != nil {
			return nil, err
		}
		entries := make([]spatial.Entry, len(rels))
		for i, r := range rels {
			b, err := r.Bounds()
			if err != nil {
				return nil, err
			}
			entries[i] = spatial.Entry{Row: i, Bounds: b}
		}
		return entries, nil
	default:
		return nil, &archive.ErrInvalidKind{Value: byte(k)}
	}
}

func (a *Atlas) spatialIndex(k Kind) (*spatial.Index, error) {
	if idx, ok := a.spatial[k]; ok {
		return idx, nil
	}
	entries, err := a.boundsEntries(k)
	if err != nil {
		return nil, err
	}
	idx := spatial.Build(entries)
	a.spatial[k] = idx
	a.logger.Debugw("built spatial index", "kind", k.String(), "entries", len(entries))
	return idx, nil
}

// PointsAt returns every Point at exactly loc.
func (a *Atlas) PointsAt(loc geo.Location, predicate ...func(Point) bool) ([]Point, error) {
	idx, err := a.spatialIndex(KindPoint)
	if err != nil {
		return nil, err
	}
	rows := idx.Query(loc.Bounds())
	out := make([]Point, 0, len(rows))
	for _, row := range rows {
		p, err := a.pointAt(row)
		if err != nil {
			return nil, err
		}
		if len(predicate) > 0 && !predicate[0](p) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// PointsWithin returns every Point strictly enclosed by rect.
func (a *Atlas) PointsWithin(rect geo.Rectangle, predicate ...func(Point) bool) ([]Point, error) {
	idx, err := a.spatialIndex(KindPoint)
	if err != nil {
		return nil, err
	}
	bound := rect.Polygon()
	rows := idx.Query(rect)
	var out []Point
	for _, row := range rows {
		p, err := a.pointAt(row)
		if err != nil {
			return nil, err
		}
		loc, err := p.Location()
		if err != nil {
			return nil, err
		}
		if !bound.FullyGeometricallyEnclosesLocation(loc) {
			continue
		}
		if len(predicate) > 0 && !predicate[0](p) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// NodesAt returns every Node at exactly loc.
func (a *Atlas) NodesAt(loc geo.Location, predicate ...func(Node) bool) ([]Node, error) {
	idx, err := a.spatialIndex(KindNode)
	if err != nil {
		return nil, err
	}
	rows := idx.Query(loc.Bounds())
	out := make([]Node, 0, len(rows))
	for _, row := range rows {
		n, err := a.nodeAt(row)
		if err != nil {
			return nil, err
		}
		if len(predicate) > 0 && !predicate[0](n) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// NodesWithin returns every Node strictly enclosed by rect.
func (a *Atlas) NodesWithin(rect geo.Rectangle, predicate ...func(Node) bool) ([]Node, error) {
	idx, err := a.spatialIndex(KindNode)
	if err != nil {
		return nil, err
	}
	bound := rect.Polygon()
	rows := idx.Query(rect)
	var out []Node
	for _, row := range rows {
		n, err := a.nodeAt(row)
		if err != nil {
			return nil, err
		}
		loc, err := n.Location()
		if err != nil {
			return nil, err
		}
		if !bound.FullyGeometricallyEnclosesLocation(loc) {
			continue
		}
		if len(predicate) > 0 && !predicate[0](n) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// LinesContaining returns every Line whose geometry passes through loc.
func (a *Atlas) LinesContaining(loc geo.Location, predicate ...func(Line) bool) ([]Line, error) {
	idx, err := a.spatialIndex(KindLine)
	if err != nil {
		return nil, err
	}
	bound := loc.Bounds().Polygon()
	rows := idx.Query(loc.Bounds())
	var out []Line
	for _, row := range rows {
		l, err := a.lineAt(row)
		if err != nil {
			return nil, err
		}
		pl, err := l.AsPolyLine()
		if err != nil {
			return nil, err
		}
		if !bound.OverlapsPolyline(pl) {
			continue
		}
		if len(predicate) > 0 && !predicate[0](l) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// LinesIntersecting returns every Line overlapping rect.
func (a *Atlas) LinesIntersecting(rect geo.Rectangle, predicate ...func(Line) bool) ([]Line, error) {
	idx, err := a.spatialIndex(KindLine)
	if err != nil {
		return nil, err
	}
	bound := rect.Polygon()
	rows := idx.Query(rect)
	var out []Line
	for _, row := range rows {
		l, err := a.lineAt(row)
		if err != nil {
			return nil, err
		}
		pl, err := l.AsPolyLine()
		if err != nil {
			return nil, err
		}
		if !bound.OverlapsPolyline(pl) {
			continue
		}
		if len(predicate) > 0 && !predicate[0](l) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// EdgesContaining returns every Edge whose geometry passes through loc.
func (a *Atlas) EdgesContaining(loc geo.Location, predicate ...func(Edge) bool) ([]Edge, error) {
	idx, err := a.spatialIndex(KindEdge)
	if err != nil {
		return nil, err
	}
	bound := loc.Bounds().Polygon()
	rows := idx.Query(loc.Bounds())
	var out []Edge
	for _, row := range rows {
		e, err := a.edgeAt(row)
		if err != nil {
			return nil, err
		}
		pl, err := e.AsPolyLine()
		if err != nil {
			return nil, err
		}
		if !bound.OverlapsPolyline(pl) {
			continue
		}
		if len(predicate) > 0 && !predicate[0](e) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// EdgesIntersecting returns every Edge overlapping rect.
func (a *Atlas) EdgesIntersecting(rect geo.Rectangle, predicate ...func(Edge) bool) ([]Edge, error) {
	idx, err := a.spatialIndex(KindEdge)
	if err != nil {
		return nil, err
	}
	bound := rect.Polygon()
	rows := idx.Query(rect)
	var out []Edge
	for _, row := range rows {
		e, err := a.edgeAt(row)
		if err != nil {
			return nil, err
		}
		pl, err := e.AsPolyLine()
		if err != nil {
			return nil, err
		}
		if !bound.OverlapsPolyline(pl) {
			continue
		}
		if len(predicate) > 0 && !predicate[0](e) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// AreasCovering returns every Area strictly enclosing loc.
func (a *Atlas) AreasCovering(loc geo.Location, predicate ...func(Area) bool) ([]Area, error) {
	idx, err := a.spatialIndex(KindArea)
	if err != nil {
		return nil, err
	}
	rows := idx.Query(loc.Bounds())
	var out []Area
	for _, row := range rows {
		ar, err := a.areaAt(row)
		if err != nil {
			return nil, err
		}
		poly, err := ar.AsPolygon()
		if err != nil {
			return nil, err
		}
		if !poly.FullyGeometricallyEnclosesLocation(loc) {
			continue
		}
		if len(predicate) > 0 && !predicate[0](ar) {
			continue
		}
		out = append(out, ar)
	}
	return out, nil
}

// AreasIntersecting returns every Area overlapping rect.
func (a *Atlas) AreasIntersecting(rect geo.Rectangle, predicate ...func(Area) bool) ([]Area, error) {
	idx, err := a.spatialIndex(KindArea)
	if err != nil {
		return nil, err
	}
	bound := rect.Polygon()
	rows := idx.Query(rect)
	var out []Area
	for _, row := range rows {
		ar, err := a.areaAt(row)
		if err != nil {
			return nil, err
		}
		poly, err := ar.AsPolygon()
		if err != nil {
			return nil, err
		}
		if !poly.OverlapsPolygon(bound) {
			continue
		}
		if len(predicate) > 0 && !predicate[0](ar) {
			continue
		}
		out = append(out, ar)
	}
	return out, nil
}

// RelationsWithEntitiesIntersecting returns every Relation with at
// least one live member intersecting rect.
func (a *Atlas) RelationsWithEntitiesIntersecting(rect geo.Rectangle, predicate ...func(Relation) bool) ([]Relation, error) {
	idx, err := a.spatialIndex(KindRelation)
	if err != nil {
		return nil, err
	}
	bound := rect.Polygon()
	rows := idx.Query(rect)
	var out []Relation
	for _, row := range rows {
		r, err := a.relationAt(row)
		if err != nil {
			return nil, err
		}
		hit, err := r.Intersects(bound)
		if err != nil {
			return nil, err
		}
		if !hit {
			continue
		}
		if len(predicate) > 0 && !predicate[0](r) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
