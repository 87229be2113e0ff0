package usdmesh

import (
	"encoding/json"

	"github.com/flywave/gltf"
)

// GLB writer. Grounded on the teacher's gltf.go (CreateDoc,
// buildMeshBufferViews, buildMeshPrimitives, fillMaterials): same
// gltf.Document/Buffer/BufferView/Accessor/Primitive/Material modeling via
// github.com/flywave/gltf, but driven by Mesh/Color instead of
// BaseMesh/MeshNode, and with the two-chunk container assembled by hand
// (byteSink) rather than the library's own binary encoder, since the exact
// space/zero padding and chunk ordering is part of the tested byte contract
// rather than something to delegate.
const (
	glbPaddingJSON = 0x20
	glbPaddingBIN  = 0x00
)

// ExportGLB builds one glTF mesh with one primitive per color and serializes
// it as a two-chunk GLB container.
func ExportGLB(ms MeshSet, colorOrder []Color) ([]byte, error) {
	if err := validateMeshSet(ms); err != nil {
		return nil, err
	}
	colors := OrderedColors(ms, colorOrder)

	doc := &gltf.Document{
		Asset:   gltf.Asset{Version: "2.0"},
		Scenes:  []*gltf.Scene{{Nodes: []uint32{0}}},
		Scene:   uint32Ptr(0),
		Buffers: []*gltf.Buffer{{}},
		Nodes:   []*gltf.Node{{Mesh: uint32Ptr(0)}},
	}

	mesh := &gltf.Mesh{}
	var bin []byte

	for _, c := range colors {
		m := ms[c]
		bin = appendMeshPrimitive(doc, mesh, bin, m, c)
	}

	doc.Meshes = []*gltf.Mesh{mesh}
	doc.Buffers[0].ByteLength = uint32(len(bin))

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, newExportError(ErrMalformedMesh, "failed to marshal glTF manifest", err)
	}
	jsonBytes = padBytes(jsonBytes, glbPaddingJSON)
	bin = padBytes(bin, glbPaddingBIN)

	out := newByteSink()
	totalLen := glbHeaderSize + glbChunkHeader + uint32(len(jsonBytes)) + glbChunkHeader + uint32(len(bin))

	out.writeU32(glbMagic)
	out.writeU32(glbVersion)
	out.writeU32(totalLen)

	out.writeU32(uint32(len(jsonBytes)))
	out.writeU32(glbChunkJSON)
	out.writeBytes(jsonBytes)

	out.writeU32(uint32(len(bin)))
	out.writeU32(glbChunkBIN)
	out.writeBytes(bin)

	return out.bytes(), nil
}

// appendMeshPrimitive appends one color's triangle data to doc/mesh and
// returns bin with that mesh's indices/positions/normals appended: three
// bufferViews, three accessors, one PBR material per color.
func appendMeshPrimitive(doc *gltf.Document, mesh *gltf.Mesh, bin []byte, m *Mesh, c Color) []byte {
	base := uint32(len(bin))

	indexOffset := base
	for _, idx := range m.Faces {
		bin = appendU32LE(bin, idx)
	}
	indexLen := uint32(len(bin)) - indexOffset

	posOffset := uint32(len(bin))
	for _, p := range m.Positions {
		bin = appendF32LE(bin, float32(p[0]))
		bin = appendF32LE(bin, float32(p[1]))
		bin = appendF32LE(bin, float32(p[2]))
	}
	posLen := uint32(len(bin)) - posOffset

	normOffset := uint32(len(bin))
	for _, nrm := range m.Normals {
		bin = appendF32LE(bin, float32(nrm[0]))
		bin = appendF32LE(bin, float32(nrm[1]))
		bin = appendF32LE(bin, float32(nrm[2]))
	}
	normLen := uint32(len(bin)) - normOffset

	bvIndex := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: indexOffset,
		ByteLength: indexLen,
		Target:     gltf.TargetElementArrayBuffer,
	})
	bvPos := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: posOffset,
		ByteLength: posLen,
		Target:     gltf.TargetArrayBuffer,
	})
	bvNorm := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: normOffset,
		ByteLength: normLen,
		Target:     gltf.TargetArrayBuffer,
	})

	min, max := boundingBox(m.Positions)

	accIndex := uint32(len(doc.Accessors))
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    uint32Ptr(bvIndex),
		ComponentType: gltf.ComponentUint,
		Type:          gltf.AccessorScalar,
		Count:         uint32(len(m.Faces)),
	})
	accPos := uint32(len(doc.Accessors))
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    uint32Ptr(bvPos),
		ComponentType: gltf.ComponentFloat,
		Type:          gltf.AccessorVec3,
		Count:         uint32(len(m.Positions)),
		Min:           []float32{min[0], min[1], min[2]},
		Max:           []float32{max[0], max[1], max[2]},
	})
	accNorm := uint32(len(doc.Accessors))
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    uint32Ptr(bvNorm),
		ComponentType: gltf.ComponentFloat,
		Type:          gltf.AccessorVec3,
		Count:         uint32(len(m.Normals)),
	})

	matIndex := uint32(len(doc.Materials))
	r, g, b := c.Normalized()
	metallic := float32(0)
	roughness := float32(0.5)
	doc.Materials = append(doc.Materials, &gltf.Material{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{r, g, b, 1},
			MetallicFactor:  &metallic,
			RoughnessFactor: &roughness,
		},
	})

	mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
		Mode:     gltf.PrimitiveTriangles,
		Indices:  uint32Ptr(accIndex),
		Material: uint32Ptr(matIndex),
		Attributes: gltf.Attribute{
			"POSITION": accPos,
			"NORMAL":   accNorm,
		},
	})

	return bin
}

func uint32Ptr(v uint32) *uint32 { return &v }

func appendU32LE(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendF32LE(b []byte, v float32) []byte {
	s := newByteSinkCap(4)
	s.writeF32(v)
	return append(b, s.bytes()...)
}

// padBytes right-pads b with c to the next multiple of 4. The JSON chunk is
// padded with 0x20 (space), the BIN chunk with 0x00, per the GLB chunk
// alignment rule.
func padBytes(b []byte, c byte) []byte {
	rem := len(b) % 4
	if rem == 0 {
		return b
	}
	for i := 0; i < 4-rem; i++ {
		b = append(b, c)
	}
	return b
}
