package anomaly

import (
	"math"
	"math/rand"
)

// IsolationForest is an ensemble of random isolation trees. Points that
// isolate in few splits receive scores near 1; typical points score near
// 0.5 or below.
//
// The forest is seeded deterministically so a given batch always produces
// the same scores.
type IsolationForest struct {
	Trees      int
	SampleSize int
	Seed       int64
}

// NewIsolationForest returns a forest with the standard ensemble size.
func NewIsolationForest(seed int64) *IsolationForest {
	return &IsolationForest{Trees: 100, SampleSize: 256, Seed: seed}
}

type ifNode struct {
	left, right *ifNode
	splitAttr   int
	splitVal    float64
	size        int // points at this node when external
}

// Score implements OutlierScorer.
func (f *IsolationForest) Score(rows [][]float64) []float64 {
	n := len(rows)
	if n == 0 {
		return nil
	}

	sample := f.SampleSize
	if sample > n {
		sample = n
	}
	heightLimit := int(math.Ceil(math.Log2(float64(sample)))) + 1

	rng := rand.New(rand.NewSource(f.Seed))
	trees := make([]*ifNode, f.Trees)
	for i := range trees {
		idx := rng.Perm(n)[:sample]
		sub := make([][]float64, sample)
		for j, k := range idx {
			sub[j] = rows[k]
		}
		trees[i] = buildTree(sub, 0, heightLimit, rng)
	}

	norm := avgPathLength(sample)
	scores := make([]float64, n)
	for i, row := range rows {
		var total float64
		for _, tree := range trees {
			total += pathLength(tree, row, 0)
		}
		mean := total / float64(len(trees))
		scores[i] = math.Pow(2, -mean/norm)
	}
	return scores
}

func buildTree(rows [][]float64, height, limit int, rng *rand.Rand) *ifNode {
	if height >= limit || len(rows) <= 1 {
		return &ifNode{size: len(rows)}
	}

	dims := len(rows[0])
	attr := rng.Intn(dims)

	lo, hi := rows[0][attr], rows[0][attr]
	for _, r := range rows[1:] {
		if r[attr] < lo {
			lo = r[attr]
		}
		if r[attr] > hi {
			hi = r[attr]
		}
	}
	if lo == hi {
		// Constant attribute; try to find any splittable one.
		attr = -1
		for d := 0; d < dims; d++ {
			for _, r := range rows[1:] {
				if r[d] != rows[0][d] {
					attr = d
					break
				}
			}
			if attr >= 0 {
				break
			}
		}
		if attr < 0 {
			return &ifNode{size: len(rows)}
		}
		lo, hi = rows[0][attr], rows[0][attr]
		for _, r := range rows[1:] {
			if r[attr] < lo {
				lo = r[attr]
			}
			if r[attr] > hi {
				hi = r[attr]
			}
		}
	}

	split := lo + rng.Float64()*(hi-lo)

	var left, right [][]float64
	for _, r := range rows {
		if r[attr] < split {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &ifNode{size: len(rows)}
	}

	return &ifNode{
		splitAttr: attr,
		splitVal:  split,
		left:      buildTree(left, height+1, limit, rng),
		right:     buildTree(right, height+1, limit, rng),
	}
}

func pathLength(node *ifNode, row []float64, depth int) float64 {
	if node.left == nil {
		return float64(depth) + avgPathLength(node.size)
	}
	if row[node.splitAttr] < node.splitVal {
		return pathLength(node.left, row, depth+1)
	}
	return pathLength(node.right, row, depth+1)
}

// avgPathLength is c(n), the expected path length of an unsuccessful BST
// search over n points.
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	fn := float64(n)
	const eulerGamma = 0.5772156649
	harmonic := math.Log(fn-1) + eulerGamma
	return 2*harmonic - 2*(fn-1)/fn
}
