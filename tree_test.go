package usdmesh

import "testing"

// buildSampleTree: root -> A (Xform, no attrs) -> [B (leaf, 1 attr), C (leaf, 0 attrs)]
//                  root -> D (leaf with 2 attrs)
func buildSampleTree() (*Root, *Prim, *Prim, *Prim, *Prim) {
	root := NewRoot()
	a := NewPrim("A", "Xform")
	b := NewPrim("B", "Mesh")
	c := NewPrim("C", "Mesh")
	d := NewPrim("D", "Mesh")

	root.AddChild(a)
	a.AddChild(b)
	a.AddChild(c)
	root.AddChild(d)

	b.AddAttribute(NewAttribute("points", "point3f[]", Vec3ArrayValue(nil)))
	d.AddAttribute(NewAttribute("points", "point3f[]", Vec3ArrayValue(nil)))
	d.AddAttribute(NewAttribute("normals", "normal3f[]", Vec3ArrayValue(nil)))

	buildTree(root)
	return root, a, b, c, d
}

// TestPathIndexAssignment verifies the DFS path-index renumbering pass.
func TestPathIndexAssignment(t *testing.T) {
	root, a, b, c, d := buildSampleTree()

	if root.PathIndex() != 0 {
		t.Fatalf("root path index = %d, want 0", root.PathIndex())
	}

	seen := map[int32]bool{0: true}
	for _, p := range []*Prim{a, b, c, d} {
		if seen[p.PathIndex()] {
			t.Fatalf("duplicate path index %d", p.PathIndex())
		}
		seen[p.PathIndex()] = true
	}

	// DFS order: A, B, C, D.
	if a.PathIndex() != 1 || b.PathIndex() != 2 || c.PathIndex() != 3 || d.PathIndex() != 4 {
		t.Fatalf("unexpected DFS order: a=%d b=%d c=%d d=%d", a.PathIndex(), b.PathIndex(), c.PathIndex(), d.PathIndex())
	}

	// Every attribute's pathIndex equals its parent's.
	if b.Attributes[0].PathIndex() != b.PathIndex() {
		t.Fatalf("b's attribute path index = %d, want %d", b.Attributes[0].PathIndex(), b.PathIndex())
	}
	for _, attr := range d.Attributes {
		if attr.PathIndex() != d.PathIndex() {
			t.Fatalf("d's attribute path index = %d, want %d", attr.PathIndex(), d.PathIndex())
		}
	}
}

// TestJumpArithmetic verifies the four-case jump-offset formula.
func TestJumpArithmetic(t *testing.T) {
	root, a, b, c, d := buildSampleTree()
	_ = root

	// A: parent root, A is not root's last child (D follows) -> has-sibling.
	// A has children (B, C) -> has-child. Both -> jump = subtreeEntries(A).
	wantAJump := subtreeEntries(a)
	if a.Jump() != wantAJump {
		t.Fatalf("A jump = %d, want %d", a.Jump(), wantAJump)
	}

	// B: parent A, B is not A's last child (C follows) -> has-sibling.
	// B has no children but has 1 attribute -> has-child. Both.
	if b.Jump() != subtreeEntries(b) {
		t.Fatalf("B jump = %d, want %d", b.Jump(), subtreeEntries(b))
	}

	// C: parent A, C IS A's last child, and A has no attributes -> no sibling.
	// C has no children and no attributes -> leaf. jump = -2.
	if c.Jump() != -2 {
		t.Fatalf("C jump = %d, want -2", c.Jump())
	}

	// D: parent root, D IS root's last child, root has no attrs -> no sibling.
	// D has 2 attributes -> has-child only. jump = -1.
	if d.Jump() != -1 {
		t.Fatalf("D jump = %d, want -1", d.Jump())
	}

	// Attribute jumps: last attribute of a parent is -2, others 0.
	if d.Attributes[0].Jump() != 0 {
		t.Fatalf("d.Attributes[0] jump = %d, want 0", d.Attributes[0].Jump())
	}
	if d.Attributes[1].Jump() != -2 {
		t.Fatalf("d.Attributes[1] jump = %d, want -2", d.Attributes[1].Jump())
	}
	if b.Attributes[0].Jump() != -2 {
		t.Fatalf("b's only attribute jump = %d, want -2", b.Attributes[0].Jump())
	}
}
