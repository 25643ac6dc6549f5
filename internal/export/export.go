// Package export renders a trained network for human inspection or for
// evaluation outside the engine. It consumes only the read-only
// accessors of the public ann package and never mutates network state.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ember-ml/ember/ann"
)

// layerName returns the conventional name of a layer given the reverse
// indexing (0 = output, last = input).
func layerName(net *ann.Network, l int) string {
	switch l {
	case 0:
		return "Output"
	case net.Layers() - 1:
		return "Input"
	default:
		return "Hidden"
	}
}

// Fprint writes a human-readable dump of the network: per layer, the
// unit counts, the weight matrix with its auxiliary arrays, and the
// output and error vectors.
func Fprint(w io.Writer, net *ann.Network) error {
	bw := bufio.NewWriter(w)

	for l := 0; l < net.Layers(); l++ {
		fmt.Fprintf(bw, "%s layer %d, units %d\n", layerName(net, l), l, net.Units(l))
		if l > 0 {
			// Bias units are never targets, so their rows are omitted.
			targets := net.Units(l - 1)
			if l-1 > 0 {
				targets--
			}
			matrices := []struct {
				tag string
				at  func(target, source int) float32
			}{
				{"W", func(t, s int) float32 { return net.Weight(l, t, s) }},
				{"g", func(t, s int) float32 { return net.Gradient(l, t, s) }},
				{"G", func(t, s int) float32 { return net.SGradient(l, t, s) }},
				{"P", func(t, s int) float32 { return net.PGradient(l, t, s) }},
				{"D", func(t, s int) float32 { return net.Delta(l, t, s) }},
			}
			for _, m := range matrices {
				fmt.Fprintf(bw, "\t%s", m.tag)
				for target := 0; target < targets; target++ {
					fmt.Fprint(bw, " (")
					for source := 0; source < net.Units(l); source++ {
						if source > 0 {
							fmt.Fprint(bw, " ")
						}
						fmt.Fprintf(bw, "%f", m.at(target, source))
					}
					fmt.Fprint(bw, ")")
				}
				fmt.Fprint(bw, "\n")
			}
		}
		fmt.Fprint(bw, "\tO:")
		for i := 0; i < net.Units(l); i++ {
			fmt.Fprintf(bw, " %f", net.Output(l, i))
		}
		fmt.Fprint(bw, "\n\tE:")
		for i := 0; i < net.Units(l); i++ {
			fmt.Fprintf(bw, " %f", net.ErrorSignal(l, i))
		}
		fmt.Fprint(bw, "\n")
	}
	return bw.Flush()
}

// Tcl emits a self-contained Tcl procedure `ann` that reproduces the
// network's forward pass: the weights are baked in as constants, and
// every unit becomes one sigmoid-wrapped expression. The generated
// procedure takes the input vector as a list and returns the output
// list.
func Tcl(w io.Writer, net *ann.Network) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "proc ann input {\n")
	fmt.Fprint(bw, "    set output {")
	for i := 0; i < net.OutputUnits(); i++ {
		fmt.Fprint(bw, "0 ")
	}
	fmt.Fprint(bw, "}\n")

	last := net.Layers() - 1
	for l := last; l > 0; l-- {
		units := net.Units(l)
		targets := net.Units(l - 1)
		if l > 1 { // don't output on bias units
			targets--
		}
		for j := 0; j < targets; j++ {
			if l == 1 {
				fmt.Fprintf(bw, "    lset output %d", j)
			} else {
				fmt.Fprintf(bw, "    set O_%d_%d", l-1, j)
			}
			fmt.Fprint(bw, " [expr { \\\n")
			for k := 0; k < units; k++ {
				weight := net.Weight(l, j, k)
				switch {
				case k == units-1:
					// Bias connection: constant additive term. Every
					// source layer inside this loop carries a bias unit.
					fmt.Fprintf(bw, "        (%.9f)", weight)
				case l == last:
					fmt.Fprintf(bw, "        (%.9f*[lindex $input %d])", weight, k)
				default:
					fmt.Fprintf(bw, "        (%.9f*$O_%d_%d)", weight, l, k)
				}
				if k+1 < units {
					fmt.Fprint(bw, "+ \\\n")
				}
			}
			fmt.Fprint(bw, "}]\n")
			if l == 1 {
				fmt.Fprintf(bw, "    lset output %d [expr {1/(1+exp(-[lindex $output %d]))}]\n", j, j)
			} else {
				fmt.Fprintf(bw, "    set O_%d_%d [expr {1/(1+exp(-$O_%d_%d))}]\n", l-1, j, l-1, j)
			}
		}
	}
	fmt.Fprint(bw, "    return $output\n")
	fmt.Fprint(bw, "}\n")
	return bw.Flush()
}
