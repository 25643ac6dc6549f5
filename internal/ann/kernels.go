package ann

import (
	"math"

	"gonum.org/v1/gonum/blas/blas32"
)

// The inner loops of the forward and backward passes run either through
// gonum's float32 BLAS or through plain scalar Go. The two paths are
// numerically equivalent up to floating-point accumulation order, never
// bit-exact; tests compare them with a tolerance.
var vectorized = true

// SetVectorized selects between the BLAS fast path and the scalar
// fallback for the engine's inner loops.
func SetVectorized(on bool) { vectorized = on }

// Vectorized reports whether the BLAS fast path is active.
func Vectorized() bool { return vectorized }

func vec(x []float32) blas32.Vector {
	return blas32.Vector{N: len(x), Inc: 1, Data: x}
}

// dot returns the inner product of x and y. len(y) must be >= len(x).
func dot(x, y []float32) float32 {
	if vectorized {
		return blas32.Dot(vec(x), blas32.Vector{N: len(x), Inc: 1, Data: y})
	}
	var acc float32
	for i, v := range x {
		acc += v * y[i]
	}
	return acc
}

// axpy computes y += alpha*x element-wise.
func axpy(alpha float32, x, y []float32) {
	if vectorized {
		blas32.Axpy(alpha, vec(x), vec(y))
		return
	}
	for i, v := range x {
		y[i] += alpha * v
	}
}

// scaleTo stores alpha*src into dst.
func scaleTo(dst []float32, alpha float32, src []float32) {
	if vectorized {
		copy(dst, src)
		blas32.Scal(alpha, vec(dst))
		return
	}
	for i, v := range src {
		dst[i] = alpha * v
	}
}

// sigmoid is the node transfer function used by the forward pass and,
// through its derivative o*(1-o), by backpropagation.
func sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

// relu is provided for experimentation with the accessors and the
// exporters; backpropagation derivative selection is sigmoid-only.
func relu(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}
