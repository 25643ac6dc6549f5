package ann

// UpdateDeltasGD accumulates the current per-example gradients into the
// delta buffers. Under gradient descent delta is not a step size but a
// running gradient sum for the epoch; SetDeltas(0) resets it.
func (n *Network) UpdateDeltasGD() {
	for j := 1; j < len(n.layer); j++ {
		g := n.layer[j].gradient
		d := n.layer[j].delta
		for i := range d {
			d[i] += g[i]
		}
	}
}

// AdjustWeights applies the accumulated deltas scaled by the learning
// rate over the set length: weight -= LearningRate/setLen * delta.
func (n *Network) AdjustWeights(setLen int) {
	factor := n.LearningRate / float32(setLen)
	for j := 1; j < len(n.layer); j++ {
		w := n.layer[j].weight
		d := n.layer[j].delta
		for i := range w {
			w[i] -= factor * d[i]
		}
	}
}
