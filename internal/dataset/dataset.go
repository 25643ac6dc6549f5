// Package dataset provides the flat training-set layout the ann engine
// consumes, plus small synthetic generators used by tests, examples, and
// the CLI.
//
// A Set stores setLen examples contiguously: every example occupies
// exactly inputUnits slots in the input array and outputUnits slots in
// the desired-output array.
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// Set is a flat dataset: contiguous inputs and desired outputs.
type Set struct {
	inputUnits  int
	outputUnits int
	inputs      []float32
	desired     []float32
}

// New returns an empty Set for examples with the given shapes.
func New(inputUnits, outputUnits int) *Set {
	if inputUnits < 1 || outputUnits < 1 {
		panic(fmt.Sprintf("dataset: invalid example shape %dx%d", inputUnits, outputUnits))
	}
	return &Set{inputUnits: inputUnits, outputUnits: outputUnits}
}

// Add appends one example. The slices must match the Set's shape.
func (s *Set) Add(input, desired []float32) {
	if len(input) != s.inputUnits || len(desired) != s.outputUnits {
		panic(fmt.Sprintf("dataset: example shape %dx%d, want %dx%d",
			len(input), len(desired), s.inputUnits, s.outputUnits))
	}
	s.inputs = append(s.inputs, input...)
	s.desired = append(s.desired, desired...)
}

// Len returns the number of examples.
func (s *Set) Len() int { return len(s.inputs) / s.inputUnits }

// InputUnits returns the input slots per example.
func (s *Set) InputUnits() int { return s.inputUnits }

// OutputUnits returns the desired-output slots per example.
func (s *Set) OutputUnits() int { return s.outputUnits }

// Inputs returns the flat input array, ready for the training drivers.
func (s *Set) Inputs() []float32 { return s.inputs }

// Desired returns the flat desired-output array.
func (s *Set) Desired() []float32 { return s.desired }

// Example returns views over the i-th example. The views alias the
// underlying arrays; treat them as read-only.
func (s *Set) Example(i int) (input, desired []float32) {
	in := s.inputs[i*s.inputUnits : (i+1)*s.inputUnits]
	out := s.desired[i*s.outputUnits : (i+1)*s.outputUnits]
	return in, out
}

// XOR returns the 4-row XOR truth table: two inputs, one output.
func XOR() *Set {
	s := New(2, 1)
	s.Add([]float32{0, 0}, []float32{0})
	s.Add([]float32{0, 1}, []float32{1})
	s.Add([]float32{1, 0}, []float32{1})
	s.Add([]float32{1, 1}, []float32{0})
	return s
}

// TwoBlobs returns a linearly separable 2-class set with n examples per
// class and one-hot desired vectors. The classes are Gaussian blobs
// centered at (-separation, -separation) and (+separation, +separation)
// with unit-fraction spread, so any separation above ~2 keeps the
// classes apart with a wide margin.
func TwoBlobs(n int, separation float64) *Set {
	s := New(2, 2)
	blob := func(mu float64) distuv.Normal {
		return distuv.Normal{Mu: mu, Sigma: 0.3}
	}
	neg, pos := blob(-separation), blob(separation)

	for i := 0; i < n; i++ {
		s.Add([]float32{float32(neg.Rand()), float32(neg.Rand())}, []float32{1, 0})
		s.Add([]float32{float32(pos.Rand()), float32(pos.Rand())}, []float32{0, 1})
	}
	return s
}
