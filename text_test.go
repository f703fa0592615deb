package scrolly

import "testing"

var testFont = MonoFont{Advance: 10, Height: 20}

func TestSplitWords(t *testing.T) {
	doc := NewDocument(800, 600)
	line := NewNode("line")
	line.Width = 130
	doc.Root().AddChild(line)

	nodes := SplitWords(line, "Hello, brave  world.", testFont, "word")
	want := []string{"Hello,", "brave", "world."}
	if len(nodes) != len(want) {
		t.Fatalf("got %d words, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		if n.Text != want[i] {
			t.Errorf("word %d = %q, want %q", i, n.Text, want[i])
		}
		if !n.HasClass("word") {
			t.Errorf("word %d missing class", i)
		}
	}
	if nodes[1].Name != "line-w1" {
		t.Errorf("Name = %q, want line-w1", nodes[1].Name)
	}
	if line.Flow != FlowWrap || line.Gap != 10 {
		t.Errorf("parent flow %v gap %v, want wrap with a space-width gap", line.Flow, line.Gap)
	}

	doc.Layout()
	assertNear(t, "first word width", nodes[0].Box.Width, 60)
	assertNear(t, "second word x", nodes[1].Box.X, 70)
	// "world." does not fit after "brave" in 130px and wraps.
	assertNear(t, "third word x", nodes[2].Box.X, 0)
	assertNear(t, "third word y", nodes[2].Box.Y, 30)
	assertNear(t, "line height", line.Box.Height, 50)
}

func TestSplitWordsEmpty(t *testing.T) {
	line := NewNode("line")
	if nodes := SplitWords(line, "   ", testFont, "word"); len(nodes) != 0 {
		t.Errorf("got %d words from whitespace, want 0", len(nodes))
	}
}

func TestSplitChars(t *testing.T) {
	sig := NewNode("sig")
	nodes := SplitChars(sig, "ab c", testFont, "char")
	if len(nodes) != 3 {
		t.Fatalf("got %d classed chars, want 3", len(nodes))
	}
	if sig.NumChildren() != 4 {
		t.Errorf("children = %d, want the space kept as a spacer", sig.NumChildren())
	}
	if spacer := sig.Children()[2]; spacer.HasClass("char") {
		t.Error("spacer should not carry the class")
	}
	if nodes[2].Name != "sig-c3" || nodes[2].Text != "c" {
		t.Errorf("last char = %q %q, want sig-c3 c", nodes[2].Name, nodes[2].Text)
	}
}

func TestSplitCharsGraphemeClusters(t *testing.T) {
	sig := NewNode("sig")
	// "e" followed by a combining acute accent is one cluster.
	nodes := SplitChars(sig, "ne\u0301", testFont, "char")
	if len(nodes) != 2 {
		t.Fatalf("got %d clusters, want 2", len(nodes))
	}
	if nodes[1].Text != "e\u0301" {
		t.Errorf("cluster = %q, want e with combining accent", nodes[1].Text)
	}
}
