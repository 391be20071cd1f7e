package atlas

import (
	"github.com/atlasgo/atlas/internal/archive"
	"github.com/atlasgo/atlas/internal/geo"
)

// Entity is the common surface every flyweight kind implements: a cheap
// value pairing a parent Atlas with a row index, good only for the
// lifetime of that Atlas.
type Entity interface {
	Kind() Kind
	Identifier() int64
	OSMIdentifier() int64
	Tags() (map[string]string, error)
	Bounds() (geo.Rectangle, error)
	Intersects(p geo.Polygon) (bool, error)
	Relations() ([]Relation, error)
}

// entityRef is the shared flyweight core every concrete entity type
// embeds. It never outlives the Atlas it references.
type entityRef struct {
	atlas *Atlas
	kind  archive.Kind
	row   int
	id    int64
}

func (e entityRef) Kind() Kind { return e.kind }

func (e entityRef) Identifier() int64 { return e.id }

func (e entityRef) OSMIdentifier() int64 { return OSMIdentifier(e.id) }

func (e entityRef) Tags() (map[string]string, error) {
	ts, err := e.atlas.store.Tags(e.kind)
	if err != nil {
		return nil, err
	}
	dict, err := e.atlas.store.Dictionary()
	if err != nil {
		return nil, err
	}
	return ts.Tags(e.row, dict)
}

// Relations resolves the set of relations this entity is a member of,
// via the kind-specific indexToRelationIndices map. Empty if the entity
// is a member of no relation.
func (e entityRef) Relations() ([]Relation, error) {
	m, err := e.atlas.store.IndexToRelationIndices(e.kind)
	if err != nil {
		return nil, err
	}
	rows := m[e.row]
	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]Relation, 0, len(rows))
	for _, r := range rows {
		rel, err := e.atlas.relationAt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, nil
}

// Equal reports whether two refs denote the same entity: same kind and
// same identifier.
func (e entityRef) Equal(other entityRef) bool {
	return e.kind == other.kind && e.id == other.id
}

// Hash combines kind and identifier into a single value suitable for use
// as a map key or in a hash set, matching the (entity_kind, identifier)
// equality contract.
func (e entityRef) Hash() uint64 {
	return uint64(e.kind)<<56 ^ uint64(e.id)
}

// RelationMember is one member of a Relation: its role string, the
// member entity itself, and the identifier of the relation that owns
// this membership.
type RelationMember struct {
	Role           string
	Member         Entity
	OwningRelation int64
}

// Less orders RelationMember triples by (member entity kind, member
// identifier, role), matching the member entity's own identifier (not
// the owning relation's).
func (m RelationMember) Less(other RelationMember) bool {
	if m.Member.Kind() != other.Member.Kind() {
		return m.Member.Kind() < other.Member.Kind()
	}
	if m.Member.Identifier() != other.Member.Identifier() {
		return m.Member.Identifier() < other.Member.Identifier()
	}
	return m.Role < other.Role
}
