package prediction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Kernel identifies the kernel function of a support vector regressor.
type Kernel string

const (
	KernelRBF    Kernel = "rbf"
	KernelLinear Kernel = "linear"
)

// SVRParams are the fitted parameters of an epsilon-SVR. C and epsilon only
// matter at training time and are carried in Info.
type SVRParams struct {
	Kernel         Kernel
	Gamma          float64
	Intercept      float64
	SupportVectors [][]float64
	DualCoef       []float64
	Features       []string
	Info           Info
}

// SVR evaluates f(x) = sum_i coef_i * K(sv_i, x) + intercept.
type SVR struct {
	kernel    Kernel
	gamma     float64
	intercept float64
	sv        *mat.Dense
	coef      *mat.VecDense
	features  []string
	info      Info
}

// NewSVR validates p and builds the regressor.
func NewSVR(p SVRParams) (*SVR, error) {
	width := len(p.Features)
	if width == 0 {
		return nil, fmt.Errorf("%w: model declares no features", ErrModelUnavailable)
	}
	n := len(p.SupportVectors)
	if n == 0 {
		return nil, fmt.Errorf("%w: model has no support vectors", ErrModelUnavailable)
	}
	if len(p.DualCoef) != n {
		return nil, fmt.Errorf("%w: %d dual coefficients for %d support vectors", ErrModelUnavailable, len(p.DualCoef), n)
	}
	switch p.Kernel {
	case KernelRBF:
		if p.Gamma <= 0 || math.IsNaN(p.Gamma) {
			return nil, fmt.Errorf("%w: rbf kernel needs a positive gamma", ErrModelUnavailable)
		}
	case KernelLinear:
	default:
		return nil, fmt.Errorf("%w: unsupported kernel %q", ErrModelUnavailable, p.Kernel)
	}
	data := make([]float64, 0, n*width)
	for i, row := range p.SupportVectors {
		if len(row) != width {
			return nil, fmt.Errorf("%w: support vector %d has %d values, want %d", ErrModelUnavailable, i, len(row), width)
		}
		data = append(data, row...)
	}
	info := p.Info
	info.Kernel = string(p.Kernel)
	info.Features = width
	info.SupportVectors = n
	return &SVR{
		kernel:    p.Kernel,
		gamma:     p.Gamma,
		intercept: p.Intercept,
		sv:        mat.NewDense(n, width, data),
		coef:      mat.NewVecDense(n, append([]float64(nil), p.DualCoef...)),
		features:  append([]string(nil), p.Features...),
		info:      info,
	}, nil
}

// Features returns a copy of the expected column order.
func (m *SVR) Features() []string { return append([]string(nil), m.features...) }

// Info describes the model.
func (m *SVR) Info() Info { return m.info }

// Predict evaluates the regressor at x.
func (m *SVR) Predict(x []float64) (float64, error) {
	if len(x) != len(m.features) {
		return 0, fmt.Errorf("%w: %w: got %d, want %d", ErrModelUnavailable, ErrShapeMismatch, len(x), len(m.features))
	}
	n, _ := m.sv.Dims()
	k := mat.NewVecDense(n, nil)
	switch m.kernel {
	case KernelLinear:
		k.MulVec(m.sv, mat.NewVecDense(len(x), x))
	case KernelRBF:
		for i := 0; i < n; i++ {
			d := floats.Distance(m.sv.RawRowView(i), x, 2)
			k.SetVec(i, math.Exp(-m.gamma*d*d))
		}
	}
	return mat.Dot(m.coef, k) + m.intercept, nil
}
