package atlas

import (
	"fmt"
	"sort"

	"github.com/atlasgo/atlas/internal/geo"
)

// Node is a location that also participates in the edge adjacency
// graph.
type Node struct {
	entityRef
}

func (a *Atlas) nodeAt(row int) (Node, error) {
	ids, err := a.store.Identifiers(KindNode)
	if err != nil {
		return Node{}, err
	}
	return Node{entityRef{atlas: a, kind: KindNode, row: row, id: ids[row]}}, nil
}

// Location returns the node's geometry.
func (n Node) Location() (geo.Location, error) {
	locs, err := n.atlas.store.Locations(KindNode)
	if err != nil {
		return geo.Location{}, err
	}
	return geo.LocationFromPackedInt(locs[n.row]), nil
}

// Bounds returns the node's degenerate, zero-extent bounding rectangle.
func (n Node) Bounds() (geo.Rectangle, error) {
	loc, err := n.Location()
	if err != nil {
		return geo.Rectangle{}, err
	}
	return loc.Bounds(), nil
}

// Intersects reports strict interior point-in-polygon containment.
func (n Node) Intersects(poly geo.Polygon) (bool, error) {
	loc, err := n.Location()
	if err != nil {
		return false, err
	}
	return poly.FullyGeometricallyEnclosesLocation(loc), nil
}

func (n Node) edgesFromRows(rows []int) ([]Edge, error) {
	out := make([]Edge, 0, len(rows))
	for _, r := range rows {
		e, err := n.atlas.edgeAt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out, nil
}

// InEdges returns the edges terminating at this node, sorted by edge
// identifier ascending.
func (n Node) InEdges() ([]Edge, error) {
	rows, err := n.atlas.store.InEdgesIndices()
	if err != nil {
		return nil, err
	}
	return n.edgesFromRows(rows[n.row])
}

// OutEdges returns the edges originating at this node, sorted by edge
// identifier ascending.
func (n Node) OutEdges() ([]Edge, error) {
	rows, err := n.atlas.store.OutEdgesIndices()
	if err != nil {
		return nil, err
	}
	return n.edgesFromRows(rows[n.row])
}

// ConnectedEdges returns the sorted concatenation of InEdges and
// OutEdges.
func (n Node) ConnectedEdges() ([]Edge, error) {
	in, err := n.InEdges()
	if err != nil {
		return nil, err
	}
	out, err := n.OutEdges()
	if err != nil {
		return nil, err
	}
	all := append(append([]Edge{}, in...), out...)
	sort.Slice(all, func(i, j int) bool { return all[i].id < all[j].id })
	return all, nil
}

// AbsoluteValence is the count of all connected edges, counting both
// directions of a bidirectional way as distinct edges.
func (n Node) AbsoluteValence() (int, error) {
	edges, err := n.ConnectedEdges()
	if err != nil {
		return 0, err
	}
	return len(edges), nil
}

// Valence counts only the connected edges with a positive identifier
// (the master direction of each way).
func (n Node) Valence() (int, error) {
	edges, err := n.ConnectedEdges()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range edges {
		if e.id > 0 {
			count++
		}
	}
	return count, nil
}

func (n Node) String() string {
	loc, _ := n.Location()
	return fmt.Sprintf("Node [identifier=%d, location=%v]", n.id, loc)
}
