package scrolly

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/clipperhouse/uax29/v2/words"
)

// Font is the interface for text measurement.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// MonoFont measures text as fixed-width cells. It is the fallback used when
// no rendered font is available, and keeps layout deterministic in tests.
type MonoFont struct {
	Advance float64
	Height  float64
}

// MeasureString returns the width of text in cells and one line of height.
func (f MonoFont) MeasureString(text string) (float64, float64) {
	return float64(utf8.RuneCountInString(text)) * f.Advance, f.Height
}

// LineHeight returns the cell height.
func (f MonoFont) LineHeight() float64 {
	return f.Height
}

// SplitWords appends one text node per word of content to parent, for
// staggered reveals. Whitespace becomes the wrap gap; punctuation stays
// attached as its own segment. The nodes carry class.
func SplitWords(parent *Node, content string, font Font, class string) []*Node {
	space, _ := font.MeasureString(" ")
	parent.Flow = FlowWrap
	parent.Gap = space

	var out []*Node
	tokens := words.FromString(content)
	for tokens.Next() {
		tok := tokens.Value()
		if strings.TrimSpace(tok) == "" {
			continue
		}
		// Attach trailing punctuation to the previous word so it reveals with it.
		if len(out) > 0 && isPunct(tok) {
			prev := out[len(out)-1]
			prev.Text += tok
			prev.Width, prev.Height = font.MeasureString(prev.Text)
			continue
		}
		n := NewText(fmt.Sprintf("%s-w%d", parent.Name, len(out)), tok, class)
		n.Width, n.Height = font.MeasureString(tok)
		parent.AddChild(n)
		out = append(out, n)
	}
	return out
}

// SplitChars appends one text node per grapheme cluster of content to
// parent. Spaces become untagged spacer nodes so they keep their width
// without being animated.
func SplitChars(parent *Node, content string, font Font, class string) []*Node {
	parent.Flow = FlowWrap
	parent.Gap = 0

	var out []*Node
	tokens := graphemes.FromString(content)
	i := 0
	for tokens.Next() {
		g := tokens.Value()
		n := NewText(fmt.Sprintf("%s-c%d", parent.Name, i), g)
		n.Width, n.Height = font.MeasureString(g)
		i++
		parent.AddChild(n)
		if strings.TrimSpace(g) == "" {
			continue
		}
		n.AddClass(class)
		out = append(out, n)
	}
	return out
}

func isPunct(tok string) bool {
	for _, r := range tok {
		if !strings.ContainsRune(".,;:!?)…'\"", r) {
			return false
		}
	}
	return true
}
