package scrolly

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a scroll script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Y        float64 `json:"y,omitempty"`
	DY       float64 `json:"dy,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Slot     int     `json:"slot,omitempty"`
	Token    string  `json:"token,omitempty"`
	X        float64 `json:"x,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

type scrollScript struct {
	Steps []scriptStep `json:"steps"`
}

// Injector receives the pointer actions of a script. The host's input
// layer implements it; Pending reports queued events not yet consumed.
type Injector interface {
	InjectClick(x, y float64)
	InjectDrag(fromX, fromY, toX, toY float64, frames int)
	Pending() int
}

// Mark is a snapshot recorded by a "mark" step.
type Mark struct {
	Label    string
	Frame    int
	ScrollY  float64
	Progress map[string]float64
}

// ScrollScript plays scroll, resize, gate and pointer actions one per frame
// for automated playback. Call Step before Registry.Update each frame.
type ScrollScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	frame     int
	done      bool

	gate     *Gate
	injector Injector
	marks    []Mark
	errs     []error

	// OnMark runs after each mark is recorded.
	OnMark func(Mark)
}

// LoadScrollScript parses a JSON scroll script:
//
//	{"steps": [
//	  {"action": "scrollTo", "y": 1500, "duration": 0.8},
//	  {"action": "wait", "frames": 60},
//	  {"action": "mark", "label": "mid-gallery"}
//	]}
func LoadScrollScript(jsonData []byte) (*ScrollScript, error) {
	var script scrollScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse scroll script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scroll script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "scroll", "scrollBy", "scrollTo", "resize", "wait", "drop", "mark", "click", "drag":
		default:
			return nil, fmt.Errorf("parse scroll script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScrollScript{steps: script.Steps}, nil
}

// AttachGate routes "drop" steps to g.
func (s *ScrollScript) AttachGate(g *Gate) { s.gate = g }

// AttachInjector routes "click" and "drag" steps to inj.
func (s *ScrollScript) AttachInjector(inj Injector) { s.injector = inj }

// Done reports whether every step has been executed.
func (s *ScrollScript) Done() bool { return s.done }

// Marks returns the snapshots recorded so far.
func (s *ScrollScript) Marks() []Mark { return s.marks }

// Errors returns the errors returned by drop steps, in order.
func (s *ScrollScript) Errors() []error { return s.errs }

// Step advances the script by one frame against r.
func (s *ScrollScript) Step(r *Registry) {
	if s.done {
		return
	}
	s.frame++
	vp := r.Document().Viewport()
	// Let smooth scrolls and injected pointer events drain first.
	if vp.Scrolling() || (s.injector != nil && s.injector.Pending() > 0) {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "scroll":
		vp.SetScroll(st.Y)
	case "scrollBy":
		vp.ScrollBy(st.DY)
	case "scrollTo":
		d := st.Duration
		if d <= 0 {
			d = 0.5
		}
		vp.ScrollTo(st.Y, d, nil)
	case "resize":
		if r.Document().Resize(st.Width, st.Height) {
			r.Invalidate()
		}
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "drop":
		if s.gate == nil {
			s.errs = append(s.errs, fmt.Errorf("drop %q: no gate attached", st.Token))
			break
		}
		if err := s.gate.Drop(st.Slot, st.Token); err != nil {
			s.errs = append(s.errs, err)
		}
	case "mark":
		s.mark(st.Label, r)
	case "click":
		if s.injector != nil {
			s.injector.InjectClick(st.X, st.Y)
		}
	case "drag":
		if s.injector != nil {
			frames := st.Frames
			if frames < 2 {
				frames = 2
			}
			s.injector.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}

func (s *ScrollScript) mark(label string, r *Registry) {
	m := Mark{
		Label:    label,
		Frame:    s.frame,
		ScrollY:  r.Document().Viewport().ScrollY,
		Progress: make(map[string]float64, len(r.Regions())),
	}
	for _, reg := range r.Regions() {
		m.Progress[reg.ID()] = reg.Progress()
	}
	s.marks = append(s.marks, m)
	logger.Debug("script mark", "label", label, "frame", s.frame, "scroll", m.ScrollY)
	if s.OnMark != nil {
		s.OnMark(m)
	}
}
