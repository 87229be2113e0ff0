package usdmesh

import "github.com/flywave/go3d/vec3"

// USD scene tree: Root, Prim and Attribute. Built in-memory by the exporter,
// fully populated, then serialized once by the Crate writer and discarded —
// no tree instance survives past the call that built it.

// parentNode is implemented by Root and Prim: whatever a Prim's parent is,
// the jump/path-index passes need its child-prim list and attribute list.
type parentNode interface {
	kids() []*Prim
	attrs() []*Attribute
}

// Root is the distinguished pseudo-prim with empty name; its path index is
// always 0.
type Root struct {
	Metadata  Metadata
	MetaOrder []string
	Children  []*Prim

	pathIndex int32
}

func (r *Root) kids() []*Prim        { return r.Children }
func (r *Root) attrs() []*Attribute  { return nil }
func (r *Root) PathIndex() int32     { return r.pathIndex }

// NewRoot returns an empty tree root.
func NewRoot() *Root {
	return &Root{Metadata: Metadata{}}
}

// AddChild appends a child prim to the root, setting its parent link.
func (r *Root) AddChild(p *Prim) *Prim {
	p.parent = r
	r.Children = append(r.Children, p)
	return p
}

// Prim is a named node with a specifier, a type-name token, metadata,
// ordered children and ordered attributes.
type Prim struct {
	Name       string
	Specifier  Specifier
	TypeName   string
	Metadata   Metadata
	MetaOrder  []string
	Children   []*Prim
	Attributes []*Attribute

	parent    parentNode
	pathIndex int32
	jump      int32
}

func (p *Prim) kids() []*Prim       { return p.Children }
func (p *Prim) attrs() []*Attribute { return p.Attributes }
func (p *Prim) PathIndex() int32    { return p.pathIndex }
func (p *Prim) Jump() int32         { return p.jump }

// NewPrim constructs a Def prim with the given name and type.
func NewPrim(name, typeName string) *Prim {
	return &Prim{Name: name, Specifier: SpecifierDef, TypeName: typeName, Metadata: Metadata{}}
}

// AddChild appends a child prim, setting its parent link.
func (p *Prim) AddChild(c *Prim) *Prim {
	c.parent = p
	p.Children = append(p.Children, c)
	return c
}

// AddAttribute appends an attribute, setting its parent link.
func (p *Prim) AddAttribute(a *Attribute) *Attribute {
	a.parent = p
	p.Attributes = append(p.Attributes, a)
	return a
}

// Attribute is a named leaf value. Qualifiers holds strings like
// "uniform"/"custom"; Samples is an optional ordered (time, value) list.
type Attribute struct {
	Name       string
	Value      Value
	TypeName   string
	IsArray    bool
	Qualifiers []string
	Metadata   Metadata
	MetaOrder  []string
	Samples    []TimeSample

	parent    *Prim
	pathIndex int32
	jump      int32
}

func (a *Attribute) PathIndex() int32 { return a.pathIndex }
func (a *Attribute) Jump() int32      { return a.jump }

// TimeSample is one (time, value) pair in an attribute's time-samples list.
type TimeSample struct {
	Time  float64
	Value Value
}

// NewAttribute constructs a plain (non-connection, non-relationship)
// attribute.
func NewAttribute(name, typeName string, value Value) *Attribute {
	return &Attribute{Name: name, TypeName: typeName, Value: value, Metadata: Metadata{}}
}

// Value is a tagged sum over the closed set of ValueType cases the USDZ
// exporter emits. Exactly one field group is meaningful, selected by Type.
type Value struct {
	Type ValueType

	Token      string
	Tokens     []string
	Ints       []int32
	Float      float32
	Vec3       vec3.T
	Vec3Array  []vec3.T
	Bool       bool
	Variability Variability
	Specifier  Specifier
	Dict       Metadata

	Connection   *Attribute
	Relationship *Prim
}

func TokenValue(s string) Value            { return Value{Type: ValueToken, Token: s} }
func TokenArrayValue(s []string) Value     { return Value{Type: ValueTokenArray, Tokens: s} }
func TokenVectorValue(s []string) Value    { return Value{Type: ValueTokenVector, Tokens: s} }
func IntArrayValue(v []int32) Value        { return Value{Type: ValueInt32Array, Ints: v} }
func FloatValue(f float32) Value           { return Value{Type: ValueFloat, Float: f} }
func Vec3ScalarValue(v vec3.T) Value       { return Value{Type: ValueVec3fScalar, Vec3: v} }
func Vec3ArrayValue(v []vec3.T) Value      { return Value{Type: ValueVec3fArray, Vec3Array: v} }
func BoolValue(b bool) Value               { return Value{Type: ValueBool, Bool: b} }
func VariabilityValue(v Variability) Value { return Value{Type: ValueVariability, Variability: v} }
func SpecifierValue(s Specifier) Value     { return Value{Type: ValueSpecifier, Specifier: s} }
func DictionaryValue(d Metadata) Value     { return Value{Type: ValueDictionary, Dict: d} }
func ConnectionValue(target *Attribute) Value {
	return Value{Type: ValuePathConnection, Connection: target}
}
func RelationshipValue(target *Prim) Value {
	return Value{Type: ValuePathRelationship, Relationship: target}
}

// assignPathIndices performs a single DFS renumbering pass: root = 0; each
// prim gets the next counter value, then its children recurse, then its
// attributes each take the prim's own index (attributes share their prim's
// path index rather than getting one of their own — a deliberate quirk of
// the format, not a bug).
func assignPathIndices(root *Root) {
	root.pathIndex = 0
	counter := int32(1)
	var visit func(p *Prim)
	visit = func(p *Prim) {
		p.pathIndex = counter
		counter++
		for _, c := range p.Children {
			visit(c)
		}
		for _, a := range p.Attributes {
			a.pathIndex = p.pathIndex
		}
	}
	for _, c := range root.Children {
		visit(c)
	}
}

// subtreeEntries counts p itself plus every attribute and descendant prim
// in its subtree — the path-table entry count a reader must skip to clear
// p's whole subtree.
func subtreeEntries(p *Prim) int32 {
	total := int32(1) + int32(len(p.Attributes))
	for _, c := range p.Children {
		total += subtreeEntries(c)
	}
	return total
}

// assignJumps computes the jump offset of every prim and attribute in the
// tree, following the path table's four-case jump-offset convention: a
// sibling and a child both present means jump past the whole subtree, a
// sibling alone means jump 0 (fall through), a child alone means -1 (no
// sibling to skip to), neither means -2 (last entry in the table).
func assignJumps(root *Root) {
	var visitPrim func(p *Prim, parent parentNode)
	visitPrim = func(p *Prim, parent parentNode) {
		hasSibling := isNotLastChild(p, parent) || len(parent.attrs()) > 0
		hasChild := len(p.Children) > 0 || len(p.Attributes) > 0

		switch {
		case hasSibling && hasChild:
			p.jump = subtreeEntries(p)
		case hasSibling:
			p.jump = 0
		case hasChild:
			p.jump = -1
		default:
			p.jump = -2
		}

		for _, c := range p.Children {
			visitPrim(c, p)
		}
		for i, a := range p.Attributes {
			if i == len(p.Attributes)-1 {
				a.jump = -2
			} else {
				a.jump = 0
			}
		}
	}
	for _, c := range root.Children {
		visitPrim(c, root)
	}
}

func isNotLastChild(p *Prim, parent parentNode) bool {
	kids := parent.kids()
	if len(kids) == 0 {
		return false
	}
	return kids[len(kids)-1] != p
}

// buildTree assigns path indices then jumps; call once before serialization.
func buildTree(root *Root) {
	assignPathIndices(root)
	assignJumps(root)
}
