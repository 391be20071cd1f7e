package atlas

import "github.com/atlasgo/atlas/internal/wire"

// Metadata is a read-only view over an archive's atlas-wide metadata
// record.
type Metadata struct {
	raw wire.AtlasMetaData
}

func (m Metadata) EdgeNumber() uint64     { return m.raw.EdgeNumber }
func (m Metadata) NodeNumber() uint64     { return m.raw.NodeNumber }
func (m Metadata) AreaNumber() uint64     { return m.raw.AreaNumber }
func (m Metadata) LineNumber() uint64     { return m.raw.LineNumber }
func (m Metadata) PointNumber() uint64    { return m.raw.PointNumber }
func (m Metadata) RelationNumber() uint64 { return m.raw.RelationNumber }
func (m Metadata) Original() bool         { return m.raw.Original }
func (m Metadata) CodeVersion() string    { return m.raw.CodeVersion }
func (m Metadata) DataVersion() string    { return m.raw.DataVersion }
func (m Metadata) Country() string        { return m.raw.Country }
func (m Metadata) ShardName() string      { return m.raw.ShardName }

// Tags returns the metadata record's free-form key/value tags, such as
// the generating command line or source file checksums.
func (m Metadata) Tags() map[string]string {
	out := make(map[string]string, len(m.raw.Tags))
	for _, t := range m.raw.Tags {
		out[t.Key] = t.Value
	}
	return out
}
