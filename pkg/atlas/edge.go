package atlas

import (
	"fmt"

	"github.com/atlasgo/atlas/internal/geo"
)

// Edge is a directed polyline between two nodes. A bidirectional OSM way
// produces an Edge pair with identifiers ±id; the positive-signed edge
// is the master, matching the source data's direction.
type Edge struct {
	entityRef
}

func (a *Atlas) edgeAt(row int) (Edge, error) {
	ids, err := a.store.Identifiers(KindEdge)
	if err != nil {
		return Edge{}, err
	}
	return Edge{entityRef{atlas: a, kind: KindEdge, row: row, id: ids[row]}}, nil
}

// AsPolyLine returns the edge's geometry.
func (e Edge) AsPolyLine() (geo.PolyLine, error) {
	lines, err := e.atlas.store.PolyLines(KindEdge)
	if err != nil {
		return geo.PolyLine{}, err
	}
	return lines[e.row], nil
}

// Bounds returns the min/max rectangle over the edge's vertices.
func (e Edge) Bounds() (geo.Rectangle, error) {
	pl, err := e.AsPolyLine()
	if err != nil {
		return geo.Rectangle{}, err
	}
	return pl.Bounds(), nil
}

// Intersects reports polyline/polygon overlap.
func (e Edge) Intersects(poly geo.Polygon) (bool, error) {
	pl, err := e.AsPolyLine()
	if err != nil {
		return false, err
	}
	return poly.OverlapsPolyline(pl), nil
}

// Start returns the node at this edge's start.
func (e Edge) Start() (Node, error) {
	starts, err := e.atlas.store.StartNodeIndex()
	if err != nil {
		return Node{}, err
	}
	return e.atlas.nodeAt(starts[e.row])
}

// End returns the node at this edge's end.
func (e Edge) End() (Node, error) {
	ends, err := e.atlas.store.EndNodeIndex()
	if err != nil {
		return Node{}, err
	}
	return e.atlas.nodeAt(ends[e.row])
}

// ConnectedNodes returns the {start, end} node set.
func (e Edge) ConnectedNodes() ([]Node, error) {
	start, err := e.Start()
	if err != nil {
		return nil, err
	}
	end, err := e.End()
	if err != nil {
		return nil, err
	}
	if start.Equal(end.entityRef) {
		return []Node{start}, nil
	}
	return []Node{start, end}, nil
}

// ConnectedEdges returns every edge at either endpoint, excluding this
// edge itself.
func (e Edge) ConnectedEdges() ([]Edge, error) {
	start, err := e.Start()
	if err != nil {
		return nil, err
	}
	end, err := e.End()
	if err != nil {
		return nil, err
	}
	startEdges, err := start.ConnectedEdges()
	if err != nil {
		return nil, err
	}
	endEdges, err := end.ConnectedEdges()
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool)
	var out []Edge
	for _, candidates := range [][]Edge{startEdges, endEdges} {
		for _, c := range candidates {
			if c.id == e.id || seen[c.id] {
				continue
			}
			seen[c.id] = true
			out = append(out, c)
		}
	}
	return out, nil
}

// HasReversedEdge reports whether the atlas also contains an entity with
// the negated identifier.
func (e Edge) HasReversedEdge() (bool, error) {
	idx, err := e.atlas.store.IdentifierIndex(KindEdge)
	if err != nil {
		return false, err
	}
	_, ok := idx[-e.id]
	return ok, nil
}

// ReversedEdge returns the edge with the negated identifier, if present.
func (e Edge) ReversedEdge() (Edge, bool, error) {
	idx, err := e.atlas.store.IdentifierIndex(KindEdge)
	if err != nil {
		return Edge{}, false, err
	}
	row, ok := idx[-e.id]
	if !ok {
		return Edge{}, false, nil
	}
	reversed, err := e.atlas.edgeAt(row)
	return reversed, true, err
}

// IsReversedEdge reports whether candidate is this edge's exact reverse
// (same magnitude, opposite sign).
func (e Edge) IsReversedEdge(candidate Edge) bool {
	return candidate.id == -e.id
}

// IsMasterEdge reports whether this edge's identifier is the
// producer-canonical, positive-signed direction.
func (e Edge) IsMasterEdge() bool {
	return e.id > 0
}

// MasterEdge returns the master-direction edge of this edge's pair: e
// itself if it is already the master, otherwise its reversed edge.
func (e Edge) MasterEdge() (Edge, error) {
	if e.IsMasterEdge() {
		return e, nil
	}
	reversed, ok, err := e.ReversedEdge()
	if err != nil {
		return Edge{}, err
	}
	if !ok {
		return e, nil
	}
	return reversed, nil
}

// IsWaySectioned reports whether this edge is one of several sections a
// single source way was split into.
func (e Edge) IsWaySectioned() bool {
	return WaySectionIndex(e.id) != 0
}

// IsConnectedAtStartTo reports whether other shares this edge's start
// node.
func (e Edge) IsConnectedAtStartTo(other Edge) (bool, error) {
	start, err := e.Start()
	if err != nil {
		return false, err
	}
	otherStart, err := other.Start()
	if err != nil {
		return false, err
	}
	if start.Equal(otherStart.entityRef) {
		return true, nil
	}
	otherEnd, err := other.End()
	if err != nil {
		return false, err
	}
	return start.Equal(otherEnd.entityRef), nil
}

// IsConnectedAtEndTo reports whether other shares this edge's end node.
func (e Edge) IsConnectedAtEndTo(other Edge) (bool, error) {
	end, err := e.End()
	if err != nil {
		return false, err
	}
	otherStart, err := other.Start()
	if err != nil {
		return false, err
	}
	if end.Equal(otherStart.entityRef) {
		return true, nil
	}
	otherEnd, err := other.End()
	if err != nil {
		return false, err
	}
	return end.Equal(otherEnd.entityRef), nil
}

// HighwayTagValue is a convenience accessor for the "highway" tag.
func (e Edge) HighwayTagValue() (string, bool, error) {
	tags, err := e.Tags()
	if err != nil {
		return "", false, err
	}
	v, ok := tags["highway"]
	return v, ok, nil
}

func (e Edge) String() string {
	return fmt.Sprintf("Edge [identifier=%d]", e.id)
}
