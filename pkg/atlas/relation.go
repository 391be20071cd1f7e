package atlas

import (
	"fmt"
	"sort"

	"github.com/atlasgo/atlas/internal/archive"
	"github.com/atlasgo/atlas/internal/geo"
)

// Relation is an ordered set of member entities, each with a role. A
// member may itself be a Relation: membership cycles are not guarded
// against, matching the producer's own assumption that the source data
// is acyclic.
type Relation struct {
	entityRef
}

func (a *Atlas) relationAt(row int) (Relation, error) {
	ids, err := a.store.Identifiers(KindRelation)
	if err != nil {
		return Relation{}, err
	}
	return Relation{entityRef{atlas: a, kind: KindRelation, row: row, id: ids[row]}}, nil
}

// Members resolves this relation's member triples, sorted by
// (member kind, member identifier, role).
func (r Relation) Members() ([]RelationMember, error) {
	types, err := r.atlas.store.MemberTypes()
	if err != nil {
		return nil, err
	}
	indices, err := r.atlas.store.MemberIndices()
	if err != nil {
		return nil, err
	}
	roles, err := r.atlas.store.MemberRoles()
	if err != nil {
		return nil, err
	}
	dict, err := r.atlas.store.Dictionary()
	if err != nil {
		return nil, err
	}
	kinds := types[r.row]
	rows := indices[r.row]
	memberRoles := roles[r.row]

	out := make([]RelationMember, 0, len(kinds))
	for i, kb := range kinds {
		k, err := archive.KindFromByte(kb)
		if err != nil {
			return nil, err
		}
		member, err := r.atlas.entityAt(k, int(rows[i]))
		if err != nil {
			return nil, err
		}
		role, err := dict.Word(memberRoles[i])
		if err != nil {
			return nil, err
		}
		out = append(out, RelationMember{
			Role:           role,
			Member:         member,
			OwningRelation: r.id,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out, nil
}

// Bounds is the union of every member's bounds. An empty relation
// yields a zero-extent rectangle at the origin. Member relations are
// descended into without cycle detection.
func (r Relation) Bounds() (geo.Rectangle, error) {
	members, err := r.Members()
	if err != nil {
		return geo.Rectangle{}, err
	}
	if len(members) == 0 {
		origin := geo.Location{}
		return origin.Bounds(), nil
	}
	var rects []geo.Rectangle
	for _, m := range members {
		b, err := m.Member.Bounds()
		if err != nil {
			return geo.Rectangle{}, err
		}
		rects = append(rects, b)
	}
	return geo.BoundsOfRectangles(rects)
}

// Intersects reports whether any member, transitively through nested
// relations, intersects the given polygon.
func (r Relation) Intersects(poly geo.Polygon) (bool, error) {
	members, err := r.Members()
	if err != nil {
		return false, err
	}
	for _, m := range members {
		hit, err := m.Member.Intersects(poly)
		if err != nil {
			return false, err
		}
		if hit {
			return true, nil
		}
	}
	return false, nil
}

func (r Relation) String() string {
	return fmt.Sprintf("Relation [identifier=%d]", r.id)
}
