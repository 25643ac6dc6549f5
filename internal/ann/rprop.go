package ann

// sign returns -1, 0 or +1 following the sign of x.
func sign(x float32) float32 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// UpdateSGradient adds the current per-example gradients into the
// epoch-accumulated sgradient buffers. RPROP works with the sign of the
// derivative over the whole training set, so the accumulation is a plain
// sum, not an average.
func (n *Network) UpdateSGradient() {
	for j := 1; j < len(n.layer); j++ {
		g := n.layer[j].gradient
		sg := n.layer[j].sgradient
		for i := range sg {
			sg[i] += g[i]
		}
	}
}

// AdjustWeightsResilient applies one RPROP adaptation after a full epoch
// of gradient accumulation. Per weight, the product of the previous and
// the current epoch's accumulated gradient drives a three-way branch:
//
//   - same sign: the direction is stable, grow the step up to MaxUpdate
//     and move the weight against the gradient sign;
//   - sign flip: the last step overshot, shrink the step down to
//     MinUpdate, undo the previous move, and forget the previous
//     direction so the next epoch restarts from the tie case;
//   - zero product: first epoch or a dead gradient, move by the current
//     step without adapting it.
//
// The rule is purely local per weight. It must run exactly once per
// epoch; delta and pgradient carry state across epochs.
func (n *Network) AdjustWeightsResilient() {
	for j := 1; j < len(n.layer); j++ {
		l := &n.layer[j]
		weights := l.units * n.layer[j-1].units
		if j-1 > 0 { // bias units are never update targets
			weights--
		}
		for i := 0; i < weights; i++ {
			t := l.pgradient[i] * l.sgradient[i]
			delta := l.delta[i]

			switch {
			case t > 0:
				delta = min(delta*n.NPlus, n.MaxUpdate)
				l.weight[i] -= sign(l.sgradient[i]) * delta
				l.delta[i] = delta
				l.pgradient[i] = l.sgradient[i]
			case t < 0:
				pastStep := -sign(l.pgradient[i]) * delta
				l.delta[i] = max(delta*n.NMinus, n.MinUpdate)
				l.weight[i] -= pastStep
				l.pgradient[i] = 0
			default: // t == 0, keep delta untouched
				l.weight[i] -= sign(l.sgradient[i]) * delta
				l.pgradient[i] = l.sgradient[i]
			}
		}
	}
}
