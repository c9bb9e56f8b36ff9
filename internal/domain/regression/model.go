package regression

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// leaf marks a terminal node in the child index arrays.
const leaf = -1

// Regressor predicts a single scalar from one feature row.
type Regressor interface {
	Predict(x []float64) (float64, error)
	NumFeatures() int
}

// Tree is a fitted binary regression tree in flat array form. Node 0 is the
// root; a sample goes left when x[Feature[n]] <= Threshold[n].
type Tree struct {
	Left      []int
	Right     []int
	Feature   []int
	Threshold []float64
	Value     []float64
}

func (t Tree) validate(numFeatures int) error {
	n := len(t.Left)
	if n == 0 {
		return fmt.Errorf("%w: tree has no nodes", ErrInvalidParameters)
	}
	if len(t.Right) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("%w: tree node arrays differ in length", ErrInvalidParameters)
	}
	for i := 0; i < n; i++ {
		l, r := t.Left[i], t.Right[i]
		if l == leaf && r == leaf {
			continue
		}
		// Children always come after their parent, which also rules out cycles.
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("%w: node %d has invalid children (%d, %d)", ErrInvalidParameters, i, l, r)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= numFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d of %d", ErrInvalidParameters, i, t.Feature[i], numFeatures)
		}
	}
	return nil
}

func (t Tree) predict(x []float64) float64 {
	node := 0
	for t.Left[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.Left[node]
		} else {
			node = t.Right[node]
		}
	}
	return t.Value[node]
}

// GradientBoosting is a fitted least-squares gradient boosting ensemble:
// init + learningRate * sum(tree(x)).
type GradientBoosting struct {
	numFeatures  int
	init         float64
	learningRate float64
	trees        []Tree
}

// NewGradientBoosting validates every tree against numFeatures.
func NewGradientBoosting(numFeatures int, init, learningRate float64, trees []Tree) (*GradientBoosting, error) {
	if numFeatures <= 0 {
		return nil, fmt.Errorf("%w: gradient boosting needs a positive feature count", ErrInvalidParameters)
	}
	if learningRate <= 0 {
		return nil, fmt.Errorf("%w: learning rate %g must be positive", ErrInvalidParameters, learningRate)
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: gradient boosting has no trees", ErrInvalidParameters)
	}
	for i, t := range trees {
		if err := t.validate(numFeatures); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &GradientBoosting{
		numFeatures:  numFeatures,
		init:         init,
		learningRate: learningRate,
		trees:        trees,
	}, nil
}

// Predict evaluates the ensemble on x.
func (g *GradientBoosting) Predict(x []float64) (float64, error) {
	if err := checkDim(g.numFeatures, x); err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range g.trees {
		sum += t.predict(x)
	}
	return g.init + g.learningRate*sum, nil
}

// NumFeatures returns the fitted width.
func (g *GradientBoosting) NumFeatures() int { return g.numFeatures }

// NumTrees returns the ensemble size.
func (g *GradientBoosting) NumTrees() int { return len(g.trees) }

// Linear is a fitted ordinary linear model: intercept + coef·x.
type Linear struct {
	coef      []float64
	intercept float64
}

// NewLinear validates and copies the coefficients.
func NewLinear(coef []float64, intercept float64) (*Linear, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("%w: linear model has no coefficients", ErrInvalidParameters)
	}
	if floats.HasNaN(coef) {
		return nil, fmt.Errorf("%w: linear coefficients contain NaN", ErrInvalidParameters)
	}
	return &Linear{coef: clone(coef), intercept: intercept}, nil
}

// Predict evaluates the model on x.
func (l *Linear) Predict(x []float64) (float64, error) {
	if err := checkDim(len(l.coef), x); err != nil {
		return 0, err
	}
	return l.intercept + floats.Dot(l.coef, x), nil
}

// NumFeatures returns the fitted width.
func (l *Linear) NumFeatures() int { return len(l.coef) }
