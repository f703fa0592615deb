package scrolly

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Story is a declarative set of regions and horizontal adapters loaded from
// YAML. Install it from a SetupFunc so it is rebuilt with the layout.
//
//	seed: 7
//	horizontals:
//	  - id: gallery
//	    wrapper: "#gallery"
//	    track: "#gallery-track"
//	    items: ".gallery-item"
//	    fade_items: true
//	regions:
//	  - id: scene-1
//	    trigger: "#scene-1"
//	    start: top 70%
//	    end: bottom center
//	    scrub: 1.2
//	    steps:
//	      - targets: .line
//	        from: {alpha: 0, y: 40}
//	        to: {alpha: 1, y: 0}
//	        stagger: 0.1
type Story struct {
	Seed        int64             `yaml:"seed"`
	Horizontals []StoryHorizontal `yaml:"horizontals"`
	Regions     []StoryRegion     `yaml:"regions"`
}

// StoryHorizontal mirrors HorizontalConfig.
type StoryHorizontal struct {
	ID           string  `yaml:"id"`
	Wrapper      string  `yaml:"wrapper"`
	Track        string  `yaml:"track"`
	Items        string  `yaml:"items"`
	Smoothing    float64 `yaml:"smoothing"`
	FadeItems    bool    `yaml:"fade_items"`
	MinOpacity   float64 `yaml:"min_opacity"`
	FalloffWidth float64 `yaml:"falloff_width"`
}

// StoryRegion mirrors RegionConfig. Container names a horizontal by ID.
type StoryRegion struct {
	ID          string            `yaml:"id"`
	Trigger     string            `yaml:"trigger"`
	Start       string            `yaml:"start"`
	End         string            `yaml:"end"`
	Mode        string            `yaml:"mode"`
	Scrub       float64           `yaml:"scrub"`
	ToggleClass string            `yaml:"toggle_class"`
	Container   string            `yaml:"container"`
	Steps       []StoryStep       `yaml:"steps"`
	Enter       []StoryTransition `yaml:"enter"`
	LeaveBack   []StoryTransition `yaml:"leave_back"`
}

// StoryStep mirrors Step.
type StoryStep struct {
	Targets  string              `yaml:"targets"`
	Global   bool                `yaml:"global"`
	From     map[string]StoryVal `yaml:"from"`
	To       map[string]StoryVal `yaml:"to"`
	Position float64             `yaml:"position"`
	Duration float64             `yaml:"duration"`
	Stagger  float64             `yaml:"stagger"`
	Ease     string              `yaml:"ease"`
}

// StoryTransition mirrors Transition.
type StoryTransition struct {
	Targets  string              `yaml:"targets"`
	Global   bool                `yaml:"global"`
	To       map[string]StoryVal `yaml:"to"`
	Duration float64             `yaml:"duration"`
	Delay    float64             `yaml:"delay"`
	Stagger  float64             `yaml:"stagger"`
	Ease     string              `yaml:"ease"`
}

// StoryVal is a property value: a number, or "random(min, max)" for a
// deterministic per-target jitter.
type StoryVal struct {
	Num    float64
	Random *Range
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *StoryVal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: value must be a scalar", node.Line)
	}
	s := strings.TrimSpace(node.Value)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		v.Num = f
		return nil
	}
	if inner, ok := strings.CutPrefix(s, "random("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		lo, hi, found := strings.Cut(inner, ",")
		if ok && found {
			min, err1 := strconv.ParseFloat(strings.TrimSpace(lo), 64)
			max, err2 := strconv.ParseFloat(strings.TrimSpace(hi), 64)
			if err1 == nil && err2 == nil {
				v.Random = &Range{Min: min, Max: max}
				return nil
			}
		}
	}
	return fmt.Errorf("line %d: bad value %q", node.Line, node.Value)
}

// LoadStory parses and validates a YAML story.
func LoadStory(data []byte) (*Story, error) {
	var s Story
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStory, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every name the story refers to without touching a
// document: modes, anchors, properties, eases and container IDs.
func (s *Story) Validate() error {
	hs := make(map[string]bool, len(s.Horizontals))
	for i, h := range s.Horizontals {
		if h.ID == "" {
			return fmt.Errorf("%w: horizontal %d has no id", ErrInvalidStory, i)
		}
		if hs[h.ID] {
			return fmt.Errorf("%w: duplicate horizontal %q", ErrInvalidStory, h.ID)
		}
		if h.Wrapper == "" || h.Track == "" {
			return fmt.Errorf("%w: horizontal %q needs wrapper and track", ErrInvalidStory, h.ID)
		}
		hs[h.ID] = true
	}
	for i, r := range s.Regions {
		name := r.ID
		if name == "" {
			name = strconv.Itoa(i)
		}
		if r.Trigger == "" {
			return fmt.Errorf("%w: region %s has no trigger", ErrInvalidStory, name)
		}
		if _, err := ParseMode(r.Mode); err != nil {
			return fmt.Errorf("%w: region %s: %w", ErrInvalidStory, name, err)
		}
		if _, err := ParseAnchor(r.Start, r.End); err != nil {
			return fmt.Errorf("%w: region %s: %w", ErrInvalidStory, name, err)
		}
		if r.Container != "" && !hs[r.Container] {
			return fmt.Errorf("%w: region %s: unknown container %q", ErrInvalidStory, name, r.Container)
		}
		for j, st := range r.Steps {
			if err := checkStoryProps(st.From, st.To, st.Ease); err != nil {
				return fmt.Errorf("%w: region %s step %d: %w", ErrInvalidStory, name, j, err)
			}
		}
		for j, tr := range append(append([]StoryTransition(nil), r.Enter...), r.LeaveBack...) {
			if err := checkStoryProps(nil, tr.To, tr.Ease); err != nil {
				return fmt.Errorf("%w: region %s transition %d: %w", ErrInvalidStory, name, j, err)
			}
		}
	}
	return nil
}

func checkStoryProps(from, to map[string]StoryVal, easeName string) error {
	if len(to) == 0 {
		return fmt.Errorf("empty to")
	}
	for _, m := range []map[string]StoryVal{from, to} {
		for k := range m {
			if _, err := ParseProperty(k); err != nil {
				return err
			}
		}
	}
	if easeName != "" {
		if _, err := EaseByName(easeName); err != nil {
			return err
		}
	}
	return nil
}

// Install declares the story's horizontals and regions on b. Anchor and
// target errors surface as disabled regions, like hand-written setups.
func (s *Story) Install(b *Builder) error {
	jitter := NewJitter(s.Seed)
	hs := make(map[string]*Horizontal, len(s.Horizontals))
	for _, h := range s.Horizontals {
		hs[h.ID] = b.Horizontal(HorizontalConfig{
			ID:           h.ID,
			Wrapper:      h.Wrapper,
			Track:        h.Track,
			Items:        h.Items,
			Smoothing:    h.Smoothing,
			FadeItems:    h.FadeItems,
			MinOpacity:   h.MinOpacity,
			FalloffWidth: h.FalloffWidth,
		})
	}
	for _, r := range s.Regions {
		mode, err := ParseMode(r.Mode)
		if err != nil {
			return fmt.Errorf("region %s: %w", r.ID, err)
		}
		cfg := RegionConfig{
			ID:          r.ID,
			Trigger:     r.Trigger,
			Start:       r.Start,
			End:         r.End,
			Mode:        mode,
			Scrub:       r.Scrub,
			ToggleClass: r.ToggleClass,
			Container:   hs[r.Container],
		}
		if len(r.Steps) > 0 {
			a := NewAnimation()
			for _, st := range r.Steps {
				a.Add(Step{
					Targets:  st.Targets,
					Global:   st.Global,
					From:     storyProps(st.From, jitter),
					To:       storyProps(st.To, jitter),
					Position: st.Position,
					Duration: st.Duration,
					Stagger:  st.Stagger,
					Ease:     storyEase(st.Ease),
				})
			}
			cfg.Animation = a
		}
		cfg.Forward = storyTransitions(r.Enter, jitter)
		cfg.Reverse = storyTransitions(r.LeaveBack, jitter)
		b.Region(cfg)
	}
	return nil
}

func storyTransitions(in []StoryTransition, jitter *Jitter) []Transition {
	out := make([]Transition, 0, len(in))
	for _, tr := range in {
		out = append(out, Transition{
			Targets:  tr.Targets,
			Global:   tr.Global,
			To:       storyProps(tr.To, jitter),
			Duration: tr.Duration,
			Delay:    tr.Delay,
			Stagger:  tr.Stagger,
			Ease:     storyEase(tr.Ease),
		})
	}
	return out
}

// storyProps converts validated names; unknown names were rejected by Validate.
func storyProps(m map[string]StoryVal, jitter *Jitter) Props {
	if len(m) == 0 {
		return nil
	}
	p := make(Props, len(m))
	for k, v := range m {
		prop, err := ParseProperty(k)
		if err != nil {
			continue
		}
		if v.Random != nil {
			p[prop] = Func(jitter.Between(v.Random.Min, v.Random.Max))
		} else {
			p[prop] = V(v.Num)
		}
	}
	return p
}

func storyEase(name string) ease.TweenFunc {
	fn, err := EaseByName(name)
	if err != nil {
		return nil
	}
	return fn
}
