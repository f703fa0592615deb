package scrolly

import (
	"errors"
	"strings"
	"testing"
)

const galleryStory = `
seed: 11
horizontals:
  - id: gallery
    wrapper: "#gallery"
    track: "#track"
    items: .item
regions:
  - id: intro
    trigger: "#intro"
    start: top top
    end: bottom top
    steps:
      - to: {opacity: 0.5}
        ease: none
  - id: drift
    trigger: "#item-c"
    container: gallery
    start: left right
    end: right left
    steps:
      - to: {y: "random(-3, 3)"}
        ease: linear
  - id: outro
    trigger: "#outro"
    mode: reversible
    enter:
      - to: {brightness: 1.2}
        duration: 0.2
        ease: back.out(1.7)
    leave_back:
      - to: {brightness: 1}
`

func TestLoadStory(t *testing.T) {
	s, err := LoadStory([]byte(galleryStory))
	if err != nil {
		t.Fatalf("LoadStory: %v", err)
	}
	if s.Seed != 11 {
		t.Errorf("Seed = %d, want 11", s.Seed)
	}
	if len(s.Horizontals) != 1 || len(s.Regions) != 3 {
		t.Fatalf("got %d horizontals and %d regions", len(s.Horizontals), len(s.Regions))
	}
	v := s.Regions[1].Steps[0].To["y"]
	if v.Random == nil || v.Random.Min != -3 || v.Random.Max != 3 {
		t.Errorf("random value = %+v, want range [-3, 3]", v.Random)
	}
	if got := s.Regions[0].Steps[0].To["opacity"].Num; got != 0.5 {
		t.Errorf("opacity = %v, want 0.5", got)
	}
}

func TestLoadStoryErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no trigger", "regions: [{id: a}]", "no trigger"},
		{"bad mode", "regions: [{trigger: '#a', mode: sometimes}]", "unknown mode"},
		{"bad anchor", "regions: [{trigger: '#a', start: 'middle nowhere'}]", "invalid anchor"},
		{"unknown container", "regions: [{trigger: '#a', container: nope}]", "unknown container"},
		{"unknown property", "regions: [{trigger: '#a', steps: [{to: {wobble: 1}}]}]", "unknown property"},
		{"unknown ease", "regions: [{trigger: '#a', steps: [{to: {x: 1}, ease: wiggle}]}]", "unknown ease"},
		{"empty to", "regions: [{trigger: '#a', steps: [{duration: 1}]}]", "empty to"},
		{"bad value", "regions: [{trigger: '#a', steps: [{to: {x: 'random(1)'}}]}]", "bad value"},
		{"non-scalar value", "regions: [{trigger: '#a', steps: [{to: {x: [1, 2]}}]}]", "scalar"},
		{"duplicate horizontal", "horizontals: [{id: h, wrapper: '#w', track: '#t'}, {id: h, wrapper: '#w', track: '#t'}]", "duplicate"},
		{"horizontal without track", "horizontals: [{id: h, wrapper: '#w'}]", "needs wrapper and track"},
		{"not yaml", "regions: [", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStory([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidStory) {
				t.Fatalf("err = %v, want ErrInvalidStory", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestStoryInstall(t *testing.T) {
	s, err := LoadStory([]byte(galleryStory))
	if err != nil {
		t.Fatalf("LoadStory: %v", err)
	}
	doc, _, track := galleryDocument(5)
	reg := NewRegistry(doc)
	if err := reg.Build(s.Install); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(reg.Horizontals()) != 1 || len(reg.Regions()) != 3 {
		t.Fatalf("got %d horizontals and %d regions", len(reg.Horizontals()), len(reg.Regions()))
	}
	h := reg.Horizontals()[0]
	if len(h.Items()) != 5 {
		t.Errorf("items = %d, want 5", len(h.Items()))
	}
	if m := reg.Region("outro").Mode(); m != ModeToggleReversible {
		t.Errorf("outro mode = %v, want reversible", m)
	}

	drift := reg.Region("drift")
	if !drift.Ready() {
		t.Fatalf("drift region not ready: %v", drift.Err())
	}
	item := track.Children()[2]
	scrollTo(reg, h.Bounds().End, 1)
	assertNear(t, "drift progress", drift.Progress(), 1)
	want := NewJitter(11).At(0, item, -3, 3)
	assertNear(t, "drift y", item.Y, want)
	if item.Y < -3 || item.Y > 3 {
		t.Errorf("drift y = %v, want within [-3, 3]", item.Y)
	}

	// A rebuild draws the same jitter.
	if err := reg.Rebuild(); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	assertNear(t, "drift y after rebuild", item.Y, want)
}
