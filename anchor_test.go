package scrolly

import (
	"errors"
	"testing"
)

func TestParseAnchorKeywords(t *testing.T) {
	tests := []struct {
		desc string
		trig Edge
		view Edge
	}{
		{"top bottom", Edge{Frac: 0}, Edge{Frac: 1}},
		{"center center", Edge{Frac: 0.5}, Edge{Frac: 0.5}},
		{"left right", Edge{Frac: 0}, Edge{Frac: 1}},
		{"top 70%", Edge{Frac: 0}, Edge{Frac: 0.7}},
		{"bottom bottom-=150px", Edge{Frac: 1}, Edge{Frac: 1, Px: -150}},
		{"top+=20 center", Edge{Px: 20}, Edge{Frac: 0.5}},
		{"  bottom   80%  ", Edge{Frac: 1}, Edge{Frac: 0.8}},
		{"center", Edge{Frac: 0.5}, Edge{}},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			p, err := parseAnchorPoint(tt.desc)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !approxEqual(p.Trigger.Frac, tt.trig.Frac, 1e-9) || p.Trigger.Px != tt.trig.Px {
				t.Errorf("Trigger = %+v, want %+v", p.Trigger, tt.trig)
			}
			if !approxEqual(p.View.Frac, tt.view.Frac, 1e-9) || p.View.Px != tt.view.Px {
				t.Errorf("View = %+v, want %+v", p.View, tt.view)
			}
		})
	}
}

func TestParseAnchorRelativeEnd(t *testing.T) {
	a, err := ParseAnchor("center center", "+=600")
	if err != nil {
		t.Fatalf("ParseAnchor: %v", err)
	}
	if !a.End.Relative || a.End.Offset != 600 {
		t.Errorf("End = %+v, want relative 600", a.End)
	}
}

func TestParseAnchorDefaults(t *testing.T) {
	a, err := ParseAnchor("", "")
	if err != nil {
		t.Fatalf("ParseAnchor: %v", err)
	}
	want, _ := ParseAnchor(DefaultStart, DefaultEnd)
	if a != want {
		t.Errorf("defaults = %+v, want %+v", a, want)
	}
}

func TestParseAnchorErrors(t *testing.T) {
	cases := [][2]string{
		{"middle bottom", ""},
		{"top bottom extra", ""},
		{"top abc%", ""},
		{"+=100", ""},
		{"top bottom", "+=far"},
		{"top NaN%", ""},
		{"top bottom+=Inf", ""},
		{"top bottom", "+=NaN"},
		{"-Infpx bottom", ""},
	}
	for _, c := range cases {
		_, err := ParseAnchor(c[0], c[1])
		if !errors.Is(err, ErrInvalidAnchor) {
			t.Errorf("ParseAnchor(%q, %q) err = %v, want ErrInvalidAnchor", c[0], c[1], err)
		}
	}
}
