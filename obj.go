package usdmesh

import (
	"fmt"
	"strings"
)

// OBJ/MTL writer: a line-oriented ASCII emitter. Grounded on the teacher's
// mst_test.go MstToObj helper (mtllib header, per-group usemtl, "v"/"vn"/"f"
// lines, a running vertex-count offset across groups) — ported from its
// "all nodes, then all face groups" two-pass shape into a per-color block
// shape, and from direct file writes into an in-memory strings.Builder
// since this package has no file I/O of its own.
const (
	mtlNs   = 163
	mtlNi   = 0.001
	mtlIllum = 2
	mtlKaR, mtlKaG, mtlKaB = 0.20, 0.20, 0.20
	mtlKsR, mtlKsG, mtlKsB = 0.25, 0.25, 0.25
)

// ExportOBJ renders ms as OBJ+MTL text. mtlName is the base name written
// into the `mtllib` directive (without the .mtl extension).
func ExportOBJ(ms MeshSet, colorOrder []Color, mtlName string) (obj []byte, mtl []byte, err error) {
	if err := validateMeshSet(ms); err != nil {
		return nil, nil, err
	}
	colors := OrderedColors(ms, colorOrder)

	var lines []string
	lines = append(lines, fmt.Sprintf("mtllib %s.mtl", mtlName))

	var vertCount uint32 = 1
	for i, c := range colors {
		m := ms[c]
		lines = append(lines, fmt.Sprintf("g m%d", i))
		lines = append(lines, fmt.Sprintf("usemtl k%d", i))
		for _, p := range m.Positions {
			lines = append(lines, fmt.Sprintf("v %v %v %v", p[0], p[1], p[2]))
		}
		for _, n := range m.Normals {
			lines = append(lines, fmt.Sprintf("vn %v %v %v", n[0], n[1], n[2]))
		}
		for t := 0; t < m.TriangleCount(); t++ {
			va := m.Faces[t*3] + vertCount
			vb := m.Faces[t*3+1] + vertCount
			vc := m.Faces[t*3+2] + vertCount
			lines = append(lines, fmt.Sprintf("f %d//%d %d//%d %d//%d", va, va, vb, vb, vc, vc))
		}
		vertCount += uint32(len(m.Positions))
	}

	var mtlLines []string
	for i, c := range colors {
		r, g, b := c.Normalized()
		mtlLines = append(mtlLines, fmt.Sprintf("newmtl k%d", i))
		mtlLines = append(mtlLines, fmt.Sprintf("Ns %d", mtlNs))
		mtlLines = append(mtlLines, fmt.Sprintf("Ni %v", mtlNi))
		mtlLines = append(mtlLines, fmt.Sprintf("illum %d", mtlIllum))
		mtlLines = append(mtlLines, fmt.Sprintf("Ka %.2f %.2f %.2f", mtlKaR, mtlKaG, mtlKaB))
		mtlLines = append(mtlLines, fmt.Sprintf("Kd %v %v %v", r, g, b))
		mtlLines = append(mtlLines, fmt.Sprintf("Ks %.2f %.2f %.2f", mtlKsR, mtlKsG, mtlKsB))
	}

	return []byte(strings.Join(lines, "\n")), []byte(strings.Join(mtlLines, "\n")), nil
}
