package scrolly

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

var easeNames = map[string]ease.TweenFunc{
	"none":         ease.Linear,
	"linear":       ease.Linear,
	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inout": ease.InOutQuad,
	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inout": ease.InOutCubic,
	"power3.in":    ease.InQuart,
	"power3.out":   ease.OutQuart,
	"power3.inout": ease.InOutQuart,
	"sine.in":      ease.InSine,
	"sine.out":     ease.OutSine,
	"sine.inout":   ease.InOutSine,
	"back.in":      ease.InBack,
	"back.out":     ease.OutBack,
	"back.inout":   ease.InOutBack,
	"expo.out":     ease.OutExpo,
	"elastic.out":  ease.OutElastic,
	"bounce.out":   ease.OutBounce,
}

// defaultEase is applied to steps and transitions that leave Ease nil.
var defaultEase ease.TweenFunc = ease.OutQuad

// EaseByName resolves names like "power2.out" or "sine.inOut". An empty name
// returns the default ease. Overshoot arguments such as "back.out(1.5)" are
// accepted and ignored.
func EaseByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return defaultEase, nil
	}
	key := strings.ToLower(name)
	if i := strings.IndexByte(key, '('); i >= 0 {
		key = key[:i]
	}
	fn, ok := easeNames[key]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return fn, nil
}

// applyEase evaluates fn at normalized time t in [0, 1].
func applyEase(fn ease.TweenFunc, t float64) float64 {
	if fn == nil {
		fn = defaultEase
	}
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(fn(float32(t), 0, 1, 1))
}
