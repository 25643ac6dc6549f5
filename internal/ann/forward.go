package ann

// SetInput copies exactly InputUnits() values into the input layer's
// non-bias output slots. The bias slot is never written.
func (n *Network) SetInput(input []float32) {
	last := len(n.layer) - 1
	out := n.layer[last].output
	copy(out[:n.InputUnits()], input)
}

// Simulate runs one forward pass: from the input side toward the output
// side, every non-bias unit gets the sigmoid of the dot product between
// its weight row and the full output vector of the adjacent layer nearer
// the input. Bias outputs stay pinned to 1.0.
//
// Simulate never allocates and has no failure path; it assumes the
// buffers match the network shape.
func (n *Network) Simulate() {
	for i := len(n.layer) - 1; i > 0; i-- {
		units := n.layer[i].units
		next := n.layer[i-1].units
		if i > 1 { // don't output on bias units
			next--
		}
		weight := n.layer[i].weight
		output := n.layer[i].output
		for j := 0; j < next; j++ {
			a := dot(weight[j*units:(j+1)*units], output)
			n.layer[i-1].output[j] = sigmoid(a)
		}
	}
}

// SimulateError loads input, runs one forward pass, and returns the
// global error against desired.
func (n *Network) SimulateError(input, desired []float32) float32 {
	n.SetInput(input)
	n.Simulate()
	return n.GlobalError(desired)
}
