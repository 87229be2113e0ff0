package usdmesh

import (
	"github.com/flywave/go3d/vec3"
)

// Color is a 24-bit RGB color, the key of a mesh set.
type Color struct {
	R, G, B uint8
}

// Normalized returns the color's components scaled to [0, 1].
func (c Color) Normalized() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

// Mesh is one colored triangle mesh. Positions and Normals are parallel
// arrays; Faces is a flat triple-stride index list.
type Mesh struct {
	Positions []vec3.T
	Normals   []vec3.T
	Faces     []uint32
}

// TriangleCount returns len(Faces)/3.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces) / 3
}

// MeshSet is an ordered mapping from Color to Mesh. Go maps have no defined
// iteration order, so exporters that must emit colors in a stable order take
// both the map and an explicit key order.
type MeshSet map[Color]*Mesh

// OrderedColors returns order verbatim when given, otherwise an arbitrary
// (map-iteration) order over ms's keys.
func OrderedColors(ms MeshSet, order []Color) []Color {
	if order != nil {
		return order
	}
	out := make([]Color, 0, len(ms))
	for c := range ms {
		out = append(out, c)
	}
	return out
}

// validateMesh checks that positions/normals have equal length, faces is a
// multiple of 3, and every face index is in range. Violations are fatal
// MalformedMesh errors, detected at intake.
func validateMesh(c Color, m *Mesh) error {
	if len(m.Positions) != len(m.Normals) {
		return fatalf(ErrMalformedMesh, "color %v: len(positions)=%d != len(normals)=%d", c, len(m.Positions), len(m.Normals))
	}
	if len(m.Faces)%3 != 0 {
		return fatalf(ErrMalformedMesh, "color %v: len(faces)=%d not divisible by 3", c, len(m.Faces))
	}
	n := len(m.Positions)
	for i, idx := range m.Faces {
		if int(idx) >= n {
			return fatalf(ErrMalformedMesh, "color %v: face index %d at position %d out of range [0,%d)", c, idx, i, n)
		}
	}
	return nil
}

// validateMeshSet validates every mesh in the set.
func validateMeshSet(ms MeshSet) error {
	for c, m := range ms {
		if m == nil {
			return fatalf(ErrMalformedMesh, "color %v: nil mesh", c)
		}
		if err := validateMesh(c, m); err != nil {
			return err
		}
	}
	return nil
}

// boundingBox returns the axis-aligned min/max corners of a mesh's points.
// Used by the GLB writer to populate accessor min/max.
func boundingBox(points []vec3.T) (min, max vec3.T) {
	if len(points) == 0 {
		return vec3.T{}, vec3.T{}
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max
}
