package atlas

import "github.com/atlasgo/atlas/internal/archive"

// Kind identifies one of the six entity kinds. The numeric values are
// part of the wire contract and match internal/archive.Kind exactly.
type Kind = archive.Kind

// The closed enumeration of entity kinds, in the exact wire-contract
// values {NODE=0, EDGE=1, AREA=2, LINE=3, POINT=4, RELATION=5}.
const (
	KindNode     = archive.KindNode
	KindEdge     = archive.KindEdge
	KindArea     = archive.KindArea
	KindLine     = archive.KindLine
	KindPoint    = archive.KindPoint
	KindRelation = archive.KindRelation
)

// ErrInvalidKind indicates entity(id, kind) was called with an
// out-of-range kind value.
type ErrInvalidKind = archive.ErrInvalidKind
