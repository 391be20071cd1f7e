package archive

// Field name suffixes shared across every entity kind's column group.
const (
	suffixIdentifiers           = "Identifiers"
	suffixIdentifierToArrayIndex = "IdentifierToArrayIndex"
	suffixGeometry               = "Geometry"
	suffixTags                   = "Tags"
	suffixIndexToRelationIndices = "IndexToRelationIndices"
)

// Node-only, Edge-only and Relation-only column suffixes.
const (
	suffixInEdgesIndices  = "InEdgesIndices"
	suffixOutEdgesIndices = "OutEdgesIndices"
	suffixStartNodeIndex  = "StartNodeIndex"
	suffixEndNodeIndex    = "EndNodeIndex"
	suffixMemberTypes     = "MemberTypes"
	suffixMemberIndices   = "MemberIndices"
	suffixMemberRoles     = "MemberRoles"
)

const (
	fieldMetadata   = "metadata"
	fieldDictionary = "dictionary"
)

func (k Kind) field(suffix string) string {
	return k.fieldPrefix() + suffix
}

// allFieldNames enumerates the fixed, recognized set of archive entry
// names: metadata, dictionary, then per entity kind the shared columns
// plus each kind's extra columns. An unknown name is a programming
// error (ErrUnknownField).
func allFieldNames() []string {
	names := []string{fieldMetadata, fieldDictionary}
	for _, k := range AllKinds() {
		names = append(names,
			k.field(suffixIdentifiers),
			k.field(suffixIdentifierToArrayIndex),
			k.field(suffixGeometry),
			k.field(suffixTags),
			k.field(suffixIndexToRelationIndices),
		)
		switch k {
		case KindNode:
			names = append(names, k.field(suffixInEdgesIndices), k.field(suffixOutEdgesIndices))
		case KindEdge:
			names = append(names, k.field(suffixStartNodeIndex), k.field(suffixEndNodeIndex))
		case KindRelation:
			names = append(names, k.field(suffixMemberTypes), k.field(suffixMemberIndices), k.field(suffixMemberRoles))
		}
	}
	return names
}

func isKnownField(name string) bool {
	for _, n := range allFieldNames() {
		if n == name {
			return true
		}
	}
	return false
}
