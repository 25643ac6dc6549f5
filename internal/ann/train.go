package ann

import "fmt"

// Algorithm selects the weight-update rule used by Train.
type Algorithm int

const (
	// RProp adapts a per-weight step size from the sign consistency of
	// the set-wise gradient across epochs.
	RProp Algorithm = iota
	// GD scales the accumulated gradient by the global learning rate.
	GD
)

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	switch a {
	case RProp:
		return "rprop"
	case GD:
		return "gd"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ResilientEpoch runs one RPROP epoch over a flat dataset of setLen
// examples: accumulate every example's gradient into sgradient, then
// apply the resilient adaptation once. Returns the mean error over the
// set, measured before the weight update.
func (n *Network) ResilientEpoch(inputs, desired []float32, setLen int) float32 {
	in, out := n.InputUnits(), n.OutputUnits()
	var errSum float32

	n.ResetSGradient()
	for j := 0; j < setLen; j++ {
		input := inputs[j*in : (j+1)*in]
		want := desired[j*out : (j+1)*out]
		errSum += n.SimulateError(input, want)
		n.CalculateGradients(want)
		n.UpdateSGradient()
	}
	n.AdjustWeightsResilient()
	return errSum / float32(setLen)
}

// GDEpoch runs one gradient descent epoch over a flat dataset. The
// weight adjustment is applied after every single example, not once per
// epoch: the rule is structured as batch descent but behaves as an
// online variant. This matches the reference training curve exactly and
// is kept deliberately.
func (n *Network) GDEpoch(inputs, desired []float32, setLen int) float32 {
	in, out := n.InputUnits(), n.OutputUnits()
	var errSum float32

	for j := 0; j < setLen; j++ {
		input := inputs[j*in : (j+1)*in]
		want := desired[j*out : (j+1)*out]
		n.SetDeltas(0)
		errSum += n.SimulateError(input, want)
		n.CalculateGradients(want)
		n.UpdateDeltasGD()
		n.AdjustWeights(setLen)
	}
	return errSum / float32(setLen)
}

// Train runs epochs of the selected algorithm until the mean error drops
// below maxError or maxEpochs is exhausted, and returns the last epoch's
// mean error. Both terminal states are normal returns.
func (n *Network) Train(inputs, desired []float32, maxError float32, maxEpochs, setLen int, algo Algorithm) float32 {
	e := maxError + 1
	for i := 0; i < maxEpochs && e >= maxError; i++ {
		switch algo {
		case RProp:
			e = n.ResilientEpoch(inputs, desired, setLen)
		case GD:
			e = n.GDEpoch(inputs, desired, setLen)
		default:
			panic(fmt.Sprintf("ann: unknown training algorithm %d", int(algo)))
		}
	}
	return e
}

// classError reports whether the argmax of the output vector disagrees
// with the one-hot class index of desired. Call after Simulate.
func (n *Network) classError(desired []float32) bool {
	outputs := n.OutputUnits()

	classID := outputs
	for i := 0; i < outputs; i++ {
		if desired[i] == 1 {
			classID = i
			break
		}
	}

	outID := 0
	maxOut := n.layer[0].output[0]
	for i := 1; i < outputs; i++ {
		if o := n.layer[0].output[i]; o > maxOut {
			outID = i
			maxOut = o
		}
	}
	return outID != classID
}

// TestError evaluates the network over a flat dataset without mutating
// any weights. It returns the mean error and the percentage of examples
// whose argmax classification disagrees with the one-hot desired vector.
func (n *Network) TestError(inputs, desired []float32, setLen int) (avgError, classErrorPct float32) {
	in, out := n.InputUnits(), n.OutputUnits()
	var errSum float32
	classErrors := 0

	for j := 0; j < setLen; j++ {
		input := inputs[j*in : (j+1)*in]
		want := desired[j*out : (j+1)*out]
		errSum += n.SimulateError(input, want)
		if n.classError(want) {
			classErrors++
		}
	}
	return errSum / float32(setLen), float32(classErrors) * 100 / float32(setLen)
}
