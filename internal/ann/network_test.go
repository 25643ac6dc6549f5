package ann

import (
	"fmt"
	"testing"
)

// countingAllocator tracks live buffers and can be told to fail at the
// k-th allocation, to exercise the construction failure paths.
type countingAllocator struct {
	allocs int
	live   int
	failAt int // fail when allocs reaches this count; -1 disables
}

func newCountingAllocator(failAt int) *countingAllocator {
	return &countingAllocator{failAt: failAt}
}

func (a *countingAllocator) Floats(n int) ([]float32, error) {
	if a.failAt >= 0 && a.allocs == a.failAt {
		return nil, fmt.Errorf("forced allocation failure at %d", a.allocs)
	}
	a.allocs++
	a.live++
	return make([]float32, n), nil
}

func (a *countingAllocator) Release(_ []float32) {
	a.live--
}

// TestCountWeights verifies the learnable-weight count for the
// convenience constructors: bias units are never counted as targets.
func TestCountWeights(t *testing.T) {
	cases := []struct {
		name  string
		build func() (*Network, error)
		want  int
	}{
		// 2+bias input units, 1 output: 3 weights.
		{"2-1", func() (*Network, error) { return New2(2, 1) }, 3},
		// hidden(3+bias)x1 + input(2+bias)x3 = 4 + 9.
		{"2-3-1", func() (*Network, error) { return New3(2, 3, 1) }, 13},
		// hidden2(4+bias)x1 + hidden(3+bias)x4 + input(2+bias)x3.
		{"2-3-4-1", func() (*Network, error) { return New4(2, 3, 4, 1) }, 30},
		// general topology through New: output-first unit counts.
		// hidden(5+bias)x3 + input(4+bias)x5 = 18 + 25.
		{"3-5-4", func() (*Network, error) { return New(3, 5, 4) }, 43},
	}
	for _, tc := range cases {
		net, err := tc.build()
		if err != nil {
			t.Fatalf("%s: construction failed: %v", tc.name, err)
		}
		if got := net.CountWeights(); got != tc.want {
			t.Errorf("%s: CountWeights() = %d, want %d", tc.name, got, tc.want)
		}
		net.Free()
	}
}

// TestDerivedUnitCounts checks the input/output unit queries exclude the
// input layer's bias unit.
func TestDerivedUnitCounts(t *testing.T) {
	net, err := New3(7, 4, 3)
	if err != nil {
		t.Fatalf("New3 failed: %v", err)
	}
	defer net.Free()

	if got := net.InputUnits(); got != 7 {
		t.Errorf("InputUnits() = %d, want 7", got)
	}
	if got := net.OutputUnits(); got != 3 {
		t.Errorf("OutputUnits() = %d, want 3", got)
	}
	if got := net.Layers(); got != 3 {
		t.Errorf("Layers() = %d, want 3", got)
	}
	// Hidden and input layers carry the appended bias unit.
	if got := net.Units(1); got != 5 {
		t.Errorf("Units(1) = %d, want 5", got)
	}
	if got := net.Units(2); got != 8 {
		t.Errorf("Units(2) = %d, want 8", got)
	}
}

// TestBiasOutputPinned verifies every bias unit's output stays exactly
// 1.0 through input loading and any number of forward passes.
func TestBiasOutputPinned(t *testing.T) {
	net, err := New4(3, 4, 4, 2)
	if err != nil {
		t.Fatalf("New4 failed: %v", err)
	}
	defer net.Free()

	for pass := 0; pass < 5; pass++ {
		net.SetInput([]float32{0.3, -0.7, 0.9})
		net.Simulate()
		for l := 1; l < net.Layers(); l++ {
			bias := net.Units(l) - 1
			if got := net.Output(l, bias); got != 1 {
				t.Fatalf("pass %d: bias output of layer %d = %f, want exactly 1", pass, l, got)
			}
		}
	}
}

// TestSetInputLength verifies SetInput writes exactly InputUnits values
// and nothing else.
func TestSetInputLength(t *testing.T) {
	net, err := New3(2, 2, 1)
	if err != nil {
		t.Fatalf("New3 failed: %v", err)
	}
	defer net.Free()

	net.SetInput([]float32{0.25, 0.75})
	last := net.Layers() - 1
	if got := net.Output(last, 0); got != 0.25 {
		t.Errorf("input slot 0 = %f, want 0.25", got)
	}
	if got := net.Output(last, 1); got != 0.75 {
		t.Errorf("input slot 1 = %f, want 0.75", got)
	}
	if got := net.Output(last, 2); got != 1 {
		t.Errorf("bias slot = %f, want 1", got)
	}
}

// TestCloneIndependence verifies a clone shares no buffer with the
// original in either direction.
func TestCloneIndependence(t *testing.T) {
	net, err := New3(2, 3, 1)
	if err != nil {
		t.Fatalf("New3 failed: %v", err)
	}
	defer net.Free()

	net.SetInput([]float32{1, 0})
	net.Simulate()

	clone, err := net.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}
	defer clone.Free()

	// Every buffer matches right after cloning.
	for l := 1; l < net.Layers(); l++ {
		for target := 0; target < net.Units(l-1); target++ {
			for source := 0; source < net.Units(l); source++ {
				if net.Weight(l, target, source) != clone.Weight(l, target, source) {
					t.Fatalf("clone weight (%d,%d,%d) differs right after Clone", l, target, source)
				}
			}
		}
	}
	if clone.NPlus != net.NPlus || clone.LearningRate != net.LearningRate {
		t.Error("clone did not preserve hyperparameters")
	}

	// Mutating the clone must not leak into the original.
	before := net.Weight(1, 0, 0)
	clone.SetWeight(1, 0, 0, before+42)
	if got := net.Weight(1, 0, 0); got != before {
		t.Errorf("original weight changed after clone mutation: %f, want %f", got, before)
	}

	// And the other way round.
	cloneBefore := clone.Weight(2, 0, 1)
	net.SetWeight(2, 0, 1, cloneBefore-17)
	if got := clone.Weight(2, 0, 1); got != cloneBefore {
		t.Errorf("clone weight changed after original mutation: %f, want %f", got, cloneBefore)
	}

	// Training the clone leaves the original's outputs untouched.
	inputs := []float32{0, 0, 0, 1, 1, 0, 1, 1}
	desired := []float32{0, 1, 1, 0}
	clone.Train(inputs, desired, 0.000001, 50, 4, RProp)
	if got := net.Weight(1, 0, 0); got != before {
		t.Errorf("original weight changed after clone training: %f, want %f", got, before)
	}
}

// TestAllocationFailureCleanup forces an allocation failure at every
// possible allocation index during construction and verifies that no
// buffer stays live afterwards.
func TestAllocationFailureCleanup(t *testing.T) {
	// Count the allocations a successful construction performs.
	probe := newCountingAllocator(-1)
	net, err := NewWithConfig(Config{Allocator: probe}, 2, 4, 3)
	if err != nil {
		t.Fatalf("construction with counting allocator failed: %v", err)
	}
	total := probe.allocs
	net.Free()
	if probe.live != 0 {
		t.Fatalf("%d buffers live after Free, want 0", probe.live)
	}

	for failAt := 0; failAt < total; failAt++ {
		a := newCountingAllocator(failAt)
		net, err := NewWithConfig(Config{Allocator: a}, 2, 4, 3)
		if err == nil {
			net.Free()
			t.Fatalf("failAt=%d: expected construction failure, got none", failAt)
		}
		if net != nil {
			t.Fatalf("failAt=%d: failed construction returned non-nil network", failAt)
		}
		if a.live != 0 {
			t.Errorf("failAt=%d: %d buffers leaked", failAt, a.live)
		}
	}
}

// TestCloneAllocationFailure verifies a failing clone releases its
// partial copy.
func TestCloneAllocationFailure(t *testing.T) {
	a := newCountingAllocator(-1)
	net, err := NewWithConfig(Config{Allocator: a}, 1, 2, 2)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	defer net.Free()

	liveBefore := a.live
	a.failAt = a.allocs + 3 // fail partway through the clone
	clone, err := net.Clone()
	if err == nil {
		clone.Free()
		t.Fatal("expected clone failure, got none")
	}
	if a.live != liveBefore {
		t.Errorf("%d buffers live after failed clone, want %d", a.live, liveBefore)
	}
}

// TestScaleWeights verifies uniform weight scaling.
func TestScaleWeights(t *testing.T) {
	net, err := New2(2, 1)
	if err != nil {
		t.Fatalf("New2 failed: %v", err)
	}
	defer net.Free()

	net.SetWeight(1, 0, 0, 0.5)
	net.SetWeight(1, 0, 1, -0.25)
	net.SetWeight(1, 0, 2, 1)
	net.ScaleWeights(2)

	want := []float32{1, -0.5, 2}
	for i, w := range want {
		if got := net.Weight(1, 0, i); got != w {
			t.Errorf("scaled weight %d = %f, want %f", i, got, w)
		}
	}
}

// TestRandomWeightRange verifies the initialization range [-0.05, 0.05).
func TestRandomWeightRange(t *testing.T) {
	net, err := New3(5, 8, 5)
	if err != nil {
		t.Fatalf("New3 failed: %v", err)
	}
	defer net.Free()

	for l := 1; l < net.Layers(); l++ {
		for target := 0; target < net.Units(l-1); target++ {
			for source := 0; source < net.Units(l); source++ {
				w := net.Weight(l, target, source)
				if w < -0.05 || w >= 0.05 {
					t.Fatalf("weight (%d,%d,%d) = %f outside [-0.05, 0.05)", l, target, source, w)
				}
			}
		}
	}
}
