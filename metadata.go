package usdmesh

// Metadata bag: prim/attribute metadata is keyed by string and polymorphic.
// Grounded directly on the teacher's properties.go Properties/PropsValue
// tagged map — same {Type; Value interface{}} shape, narrowed from that
// file's six cases {String, Int, Float, Bool, Array, Map} to a closed
// five-case set. `references` is explicitly unimplemented and carries no
// MetaType of its own.

// MetaType tags the shape of a MetaValue.
type MetaType int

const (
	MetaString MetaType = iota
	MetaFloat
	MetaBool
	MetaDictionary
	MetaPrimRef
)

// MetaValue is one polymorphic metadata entry; Value's concrete type is
// determined by Type: string, float64, bool, Metadata, or *Prim respectively.
type MetaValue struct {
	Type  MetaType
	Value interface{}
}

func MetaStringValue(s string) MetaValue { return MetaValue{Type: MetaString, Value: s} }
func MetaFloatValue(f float64) MetaValue { return MetaValue{Type: MetaFloat, Value: f} }
func MetaBoolValue(b bool) MetaValue     { return MetaValue{Type: MetaBool, Value: b} }
func MetaDictValue(d Metadata) MetaValue { return MetaValue{Type: MetaDictionary, Value: d} }
func MetaPrimRefValue(p *Prim) MetaValue { return MetaValue{Type: MetaPrimRef, Value: p} }

// Metadata is a small string-keyed bag. Prim/attribute metadata iteration
// order in the Crate writer is stabilized by the caller supplying an
// explicit key order where it matters.
type Metadata map[string]MetaValue
