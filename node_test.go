package scrolly

import "testing"

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("n", "a")
	if n.ScaleX != 1 || n.ScaleY != 1 || n.Alpha != 1 || n.Brightness != 1 || !n.Visible {
		t.Errorf("unexpected defaults: %+v", n)
	}
	if n.ID == 0 {
		t.Error("ID should be assigned")
	}
	if NewNode("m").ID == n.ID {
		t.Error("IDs should be unique")
	}
	if !NewBox("b", 1, 1, ColorWhite).Fill {
		t.Error("boxes should fill")
	}
}

func TestClasses(t *testing.T) {
	n := NewNode("n", "a")
	n.AddClass("b")
	n.AddClass("b")
	if len(n.Classes) != 2 {
		t.Errorf("Classes = %v, want no duplicates", n.Classes)
	}
	n.RemoveClass("a")
	n.RemoveClass("missing")
	if n.HasClass("a") || !n.HasClass("b") {
		t.Errorf("Classes = %v after remove", n.Classes)
	}
}

func TestAddChildReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)
	if a.NumChildren() != 0 || b.NumChildren() != 1 || c.Parent != b {
		t.Error("AddChild should move the child to its new parent")
	}
	c.RemoveFromParent()
	if c.Parent != nil || b.NumChildren() != 0 {
		t.Error("RemoveFromParent should detach")
	}
	c.RemoveFromParent()
}

func TestAddChildCyclePanics(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	b.AddChild(a)
}

func TestDisposeRecursive(t *testing.T) {
	root, mid, leaf := NewNode("root"), NewNode("mid"), NewNode("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	mid.Dispose()
	if root.NumChildren() != 0 {
		t.Error("disposed node should leave its parent")
	}
	if !mid.IsDisposed() || !leaf.IsDisposed() {
		t.Error("dispose should reach descendants")
	}
	mid.Dispose()
}

func TestWalkSkipsSubtree(t *testing.T) {
	root, a, b, c := NewNode("root"), NewNode("a"), NewNode("b"), NewNode("c")
	root.AddChildren(a, c)
	a.AddChild(b)
	var seen []string
	root.Walk(func(n *Node) bool {
		seen = append(seen, n.Name)
		return n != a
	})
	want := []string{"root", "a", "c"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen = %v, want %v", seen, want)
			break
		}
	}
}

func TestDirtyTracking(t *testing.T) {
	n := NewNode("n")
	n.ClearDirty()
	PropAlpha.Set(n, 0.3)
	if !n.Dirty() {
		t.Error("property writes should mark the node dirty")
	}
}
