package scrolly

import (
	"hash/fnv"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Jitter produces per-node pseudo-random values that stay the same across
// rebuilds, so a resize never reshuffles parallax offsets.
type Jitter struct {
	noise opensimplex.Noise
}

// NewJitter creates a jitter source from seed.
func NewJitter(seed int64) *Jitter {
	return &Jitter{noise: opensimplex.NewNormalized(seed)}
}

// At returns a value in [min, max] for the index-th node.
func (j *Jitter) At(index int, n *Node, min, max float64) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(n.Name))
	x := float64(h.Sum32()%10007) * 0.173
	y := float64(index) * 0.619
	return min + j.noise.Eval2(x, y)*(max-min)
}

// Between returns a ValueFunc drawing from [min, max].
func (j *Jitter) Between(min, max float64) ValueFunc {
	return func(index int, n *Node) (float64, error) {
		return j.At(index, n, min, max), nil
	}
}
