package ann

// GlobalError returns half the sum of the squared per-output-unit
// differences between desired and the current outputs. Pure scoring, no
// side effects.
func (n *Network) GlobalError(desired []float32) float32 {
	var e float32
	out := n.layer[0].output
	for i := range out {
		t := desired[i] - out[i]
		e += t * t
	}
	return 0.5 * e
}

// CalculateOutputError fills the output layer's error vector with the
// derivative of the mean squared error with respect to each output:
// (2/outputUnits) * (output - desired).
func (n *Network) CalculateOutputError(desired []float32) {
	units := n.OutputUnits()
	factor := float32(2) / float32(units)
	out := n.layer[0].output
	errv := n.layer[0].error
	for j := 0; j < units; j++ {
		errv[j] = factor * (out[j] - desired[j])
	}
}

// CalculateGradients computes the output error and back-propagates it
// through the network, writing the per-weight gradient of every layer.
//
// Walking from the output layer toward the input layer, each node's
// error signal is its error times the sigmoid derivative o*(1-o). The
// signal both writes the gradient row for the node's incoming weights
// and accumulates, scaled by those weights, into the error vector of the
// adjacent layer nearer the input.
func (n *Network) CalculateGradients(desired []float32) {
	n.CalculateOutputError(desired)

	for j := 0; j < len(n.layer)-1; j++ {
		l := &n.layer[j]
		prev := &n.layer[j+1] // adjacent layer nearer the input
		units := l.units
		prevUnits := prev.units

		// Bias units have no incoming connections, so they propagate
		// nothing; their pinned output 1.0 makes the derivative zero
		// anyway.
		if j > 1 {
			units--
		}
		for i := 0; i < prevUnits; i++ {
			prev.error[i] = 0
		}
		for i := 0; i < units; i++ {
			oi := l.output[i]
			errorSignal := l.error[i] * oi * (1 - oi)

			row := i * prevUnits
			scaleTo(prev.gradient[row:row+prevUnits], errorSignal, prev.output)
			axpy(errorSignal, prev.weight[row:row+prevUnits], prev.error)
		}
	}
}

// numericalStep is the perturbation used by CalculateGradientsNumerical.
const numericalStep = 0.001

// CalculateGradientsNumerical fills the gradient buffers with a forward
// finite-difference estimate of d GlobalError / d weight: perturb one
// weight, re-run the forward pass, divide the error delta by the
// perturbation. Orders of magnitude slower than CalculateGradients; it
// exists as the correctness oracle for the analytic backward pass.
func (n *Network) CalculateGradientsNumerical(desired []float32) {
	for j := 1; j < len(n.layer); j++ {
		weights := n.layer[j].units * n.layer[j-1].units
		for i := 0; i < weights; i++ {
			n.Simulate()
			e1 := n.GlobalError(desired)

			saved := n.layer[j].weight[i]
			n.layer[j].weight[i] += numericalStep
			n.Simulate()
			e2 := n.GlobalError(desired)
			n.layer[j].weight[i] = saved

			n.layer[j].gradient[i] = (e2 - e1) / numericalStep
		}
	}
}
