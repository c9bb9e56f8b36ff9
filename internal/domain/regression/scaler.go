// Package regression evaluates fitted feature scalers and regression models.
package regression

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Scaler is a fitted feature-wise linear transform.
type Scaler interface {
	Transform(x []float64) ([]float64, error)
	InverseTransform(x []float64) ([]float64, error)
	NumFeatures() int
}

// StandardScaler computes (x - mean) / scale per feature.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// NewStandardScaler validates and copies the fitted parameters.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if err := checkParams("standard scaler", mean, scale); err != nil {
		return nil, err
	}
	return &StandardScaler{mean: clone(mean), scale: clone(scale)}, nil
}

// Transform standardizes x into a new slice.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if err := checkDim(len(s.mean), x); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	floats.SubTo(out, x, s.mean)
	floats.Div(out, s.scale)
	return out, nil
}

// InverseTransform maps a standardized vector back to the original units.
func (s *StandardScaler) InverseTransform(x []float64) ([]float64, error) {
	if err := checkDim(len(s.mean), x); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	floats.MulTo(out, x, s.scale)
	floats.Add(out, s.mean)
	return out, nil
}

// NumFeatures returns the fitted width.
func (s *StandardScaler) NumFeatures() int { return len(s.mean) }

// MinMaxScaler computes x * scale + min per feature.
type MinMaxScaler struct {
	min   []float64
	scale []float64
}

// NewMinMaxScaler validates and copies the fitted parameters.
func NewMinMaxScaler(min, scale []float64) (*MinMaxScaler, error) {
	if err := checkParams("min-max scaler", min, scale); err != nil {
		return nil, err
	}
	return &MinMaxScaler{min: clone(min), scale: clone(scale)}, nil
}

// Transform rescales x into a new slice.
func (s *MinMaxScaler) Transform(x []float64) ([]float64, error) {
	if err := checkDim(len(s.min), x); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	floats.MulTo(out, x, s.scale)
	floats.Add(out, s.min)
	return out, nil
}

// InverseTransform maps a rescaled vector back to the original units.
func (s *MinMaxScaler) InverseTransform(x []float64) ([]float64, error) {
	if err := checkDim(len(s.min), x); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	floats.SubTo(out, x, s.min)
	floats.Div(out, s.scale)
	return out, nil
}

// NumFeatures returns the fitted width.
func (s *MinMaxScaler) NumFeatures() int { return len(s.min) }

func checkParams(kind string, offset, scale []float64) error {
	switch {
	case len(offset) == 0:
		return fmt.Errorf("%w: %s has no features", ErrInvalidParameters, kind)
	case len(offset) != len(scale):
		return fmt.Errorf("%w: %s has %d offsets but %d scales", ErrInvalidParameters, kind, len(offset), len(scale))
	case floats.HasNaN(offset) || floats.HasNaN(scale):
		return fmt.Errorf("%w: %s parameters contain NaN", ErrInvalidParameters, kind)
	}
	for i, v := range scale {
		if v == 0 {
			return fmt.Errorf("%w: %s scale[%d] is zero", ErrInvalidParameters, kind, i)
		}
	}
	return nil
}

func checkDim(want int, x []float64) error {
	if len(x) != want {
		return fmt.Errorf("%w: got %d features, want %d", ErrDimensionMismatch, len(x), want)
	}
	return nil
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
