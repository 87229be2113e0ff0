package usdmesh

import (
	"fmt"

	"github.com/flywave/go3d/vec3"
)

// Mesh intake: builds the fixed scene-tree scaffold the USDZ exporter hangs
// every color's Material/Shader/Mesh prims from, then hands the tree to the
// Crate writer and wraps the result in a USDZ archive.

// ExportUSDZ builds the USD scene tree for ms (in order, using colorOrder if
// given) and serializes it as a USDZ archive.
func ExportUSDZ(ms MeshSet, colorOrder []Color) ([]byte, error) {
	if err := validateMeshSet(ms); err != nil {
		return nil, err
	}

	root := buildUSDZTree(ms, colorOrder)
	crateBytes, err := writeCrate(root)
	if err != nil {
		return nil, err
	}
	return buildUSDZ(crateBytes)
}

// buildUSDZTree assembles Root -> ar(Xform) -> [ar/Materials(Scope) -> one
// Material per color, ar/m<id>(Mesh) per color].
func buildUSDZTree(ms MeshSet, colorOrder []Color) *Root {
	root := NewRoot()
	colors := OrderedColors(ms, colorOrder)

	ar := NewPrim("ar", "Xform")
	ar.Metadata["assetInfo"] = MetaDictValue(Metadata{"name": MetaStringValue("ar")})
	ar.Metadata["kind"] = MetaStringValue("component")
	root.AddChild(ar)

	materials := NewPrim("Materials", "Scope")
	ar.AddChild(materials)

	materialOf := make(map[Color]*Prim, len(colors))
	for i, c := range colors {
		id := fmt.Sprintf("k%d", i)
		mat, _ := buildMaterial(id, c)
		materials.AddChild(mat)
		materialOf[c] = mat
	}

	for i, c := range colors {
		mesh := ms[c]
		id := fmt.Sprintf("m%d", i)
		ar.AddChild(buildMeshPrim(id, mesh, materialOf[c]))
	}

	return root
}

// buildMaterial builds one k<id> Material containing a surfaceShader
// (UsdPreviewSurface) and returns the Material prim plus its shader's
// outputs:surface attribute (the target of the Material's own
// outputs:surface connection).
func buildMaterial(id string, c Color) (*Prim, *Attribute) {
	mat := NewPrim(id, "Material")

	shader := NewPrim("surfaceShader", "Shader")
	mat.AddChild(shader)

	infoID := NewAttribute("info:id", "token", TokenValue("UsdPreviewSurface"))
	infoID.Qualifiers = []string{"uniform"}
	shader.AddAttribute(infoID)

	r, g, b := c.Normalized()
	diffuse := NewAttribute("inputs:diffuseColor", "color3f", Vec3ScalarValue(vec3.T{r, g, b}))
	shader.AddAttribute(diffuse)

	roughness := NewAttribute("inputs:roughness", "float", FloatValue(0.2))
	shader.AddAttribute(roughness)

	shaderSurface := NewAttribute("outputs:surface", "token", TokenValue(""))
	shader.AddAttribute(shaderSurface)

	matSurface := NewAttribute("outputs:surface", "token", ConnectionValue(shaderSurface))
	mat.AddAttribute(matSurface)

	return mat, shaderSurface
}

// buildMeshPrim builds one m<id> Mesh prim bound to its Material.
func buildMeshPrim(id string, m *Mesh, material *Prim) *Prim {
	mesh := NewPrim(id, "Mesh")

	binding := NewAttribute("material:binding", "rel", RelationshipValue(material))
	mesh.AddAttribute(binding)

	doubleSided := NewAttribute("doubleSided", "bool", BoolValue(false))
	mesh.AddAttribute(doubleSided)

	counts := make([]int32, m.TriangleCount())
	for i := range counts {
		counts[i] = 3
	}
	mesh.AddAttribute(NewAttribute("faceVertexCounts", "int[]", IntArrayValue(counts)))

	indices := make([]int32, len(m.Faces))
	for i, f := range m.Faces {
		indices[i] = int32(f)
	}
	mesh.AddAttribute(NewAttribute("faceVertexIndices", "int[]", IntArrayValue(indices)))

	mesh.AddAttribute(NewAttribute("points", "point3f[]", Vec3ArrayValue(m.Positions)))

	normals := NewAttribute("primvars:normals", "normal3f[]", Vec3ArrayValue(m.Normals))
	normals.Metadata["interpolation"] = MetaStringValue("vertex")
	mesh.AddAttribute(normals)

	subdiv := NewAttribute("subdivisionScheme", "token", TokenValue("none"))
	subdiv.Qualifiers = []string{"uniform"}
	mesh.AddAttribute(subdiv)

	return mesh
}
