package usdmesh

import (
	"strings"
	"testing"
)

// TestExportOBJSingleColor covers the exact expected text for a
// one-triangle, one-color mesh set.
func TestExportOBJSingleColor(t *testing.T) {
	ms := MeshSet{Color{255, 0, 0}: triangleMesh()}
	obj, mtl, err := ExportOBJ(ms, []Color{{255, 0, 0}}, "export")
	if err != nil {
		t.Fatal(err)
	}

	wantOBJ := strings.Join([]string{
		"mtllib export.mtl",
		"g m0",
		"usemtl k0",
		"v 0 0 0",
		"v 1 0 0",
		"v 0 1 0",
		"vn 0 0 1",
		"vn 0 0 1",
		"vn 0 0 1",
		"f 1//1 2//2 3//3",
	}, "\n")
	if string(obj) != wantOBJ {
		t.Fatalf("OBJ mismatch:\ngot:\n%s\nwant:\n%s", obj, wantOBJ)
	}

	wantMTL := strings.Join([]string{
		"newmtl k0",
		"Ns 163",
		"Ni 0.001",
		"illum 2",
		"Ka 0.20 0.20 0.20",
		"Kd 1 0 0",
		"Ks 0.25 0.25 0.25",
	}, "\n")
	if string(mtl) != wantMTL {
		t.Fatalf("MTL mismatch:\ngot:\n%s\nwant:\n%s", mtl, wantMTL)
	}
}

// TestExportOBJVertexOffsetAccumulates verifies the running vertex-count
// offset across color groups: face indices are 1-based and accumulate
// across groups, not reset per color.
func TestExportOBJVertexOffsetAccumulates(t *testing.T) {
	red := Color{255, 0, 0}
	blue := Color{0, 0, 255}
	ms := MeshSet{red: triangleMesh(), blue: triangleMesh()}

	obj, _, err := ExportOBJ(ms, []Color{red, blue}, "export")
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(string(obj), "\n")
	var faceLines []string
	for _, l := range lines {
		if strings.HasPrefix(l, "f ") {
			faceLines = append(faceLines, l)
		}
	}
	if len(faceLines) != 2 {
		t.Fatalf("expected 2 face lines, got %d: %v", len(faceLines), faceLines)
	}
	if faceLines[0] != "f 1//1 2//2 3//3" {
		t.Fatalf("first group face line = %q", faceLines[0])
	}
	if faceLines[1] != "f 4//4 5//5 6//6" {
		t.Fatalf("second group face line = %q, want offset by first group's 3 vertices", faceLines[1])
	}
}

// TestExportOBJRejectsMalformedMesh covers error propagation for malformed
// mesh input.
func TestExportOBJRejectsMalformedMesh(t *testing.T) {
	bad := triangleMesh()
	bad.Faces = []uint32{0, 1, 9}
	ms := MeshSet{Color{1, 2, 3}: bad}
	if _, _, err := ExportOBJ(ms, nil, "export"); err == nil {
		t.Fatal("expected error for malformed mesh")
	}
}

// TestExportOBJEmptySet covers an empty mesh set producing just the
// mtllib header line and empty MTL text.
func TestExportOBJEmptySet(t *testing.T) {
	obj, mtl, err := ExportOBJ(MeshSet{}, nil, "export")
	if err != nil {
		t.Fatal(err)
	}
	if string(obj) != "mtllib export.mtl" {
		t.Fatalf("obj = %q", obj)
	}
	if string(mtl) != "" {
		t.Fatalf("mtl = %q, want empty", mtl)
	}
}
