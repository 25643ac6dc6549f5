// Package main provides the Ember neural network engine CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ember-ml/ember/ann"
	"github.com/ember-ml/ember/internal/dataset"
	"github.com/ember-ml/ember/internal/export"
)

const version = "v0.1.0-dev"

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Ember %s\n", version)
			return
		case "xor":
			trainXOR(os.Args[2:])
			return
		}
	}

	fmt.Println("Ember - compact feed-forward neural networks for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  xor        Train a 2-3-1 network on the XOR truth table")
}

// trainXOR runs the demo training loop: RPROP on the XOR truth table,
// with per-epoch progress logging and an optional export of the trained
// network.
func trainXOR(args []string) {
	fs := flag.NewFlagSet("xor", flag.ExitOnError)
	var (
		epochs = fs.Int("epochs", 1000, "epoch budget")
		target = fs.Float64("target", 0.001, "mean error convergence threshold")
		useGD  = fs.Bool("gd", false, "use gradient descent instead of RPROP")
		dump   = fs.Bool("dump", false, "print the network internals after training")
		tcl    = fs.Bool("tcl", false, "emit a Tcl procedure for the trained network")
	)
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	algo := ann.RProp
	if *useGD {
		algo = ann.GD
	}
	runID := uuid.NewString()[:8]
	logger := log.With().Str("run", runID).Stringer("algo", algo).Logger()

	net, err := ann.New3(2, 3, 1)
	if err != nil {
		logger.Fatal().Err(err).Msg("network allocation failed")
	}
	defer net.Free()

	set := dataset.XOR()
	var e float32
	for epoch := 1; epoch <= *epochs; epoch++ {
		switch algo {
		case ann.GD:
			e = net.GDEpoch(set.Inputs(), set.Desired(), set.Len())
		default:
			e = net.ResilientEpoch(set.Inputs(), set.Desired(), set.Len())
		}
		if epoch%100 == 0 {
			logger.Info().Int("epoch", epoch).Float64("error", float64(e)).Msg("training")
		}
		if float64(e) < *target {
			logger.Info().Int("epoch", epoch).Float64("error", float64(e)).Msg("converged")
			break
		}
	}

	for i := 0; i < set.Len(); i++ {
		input, desired := set.Example(i)
		net.SetInput(input)
		net.Simulate()
		logger.Info().
			Floats32("input", input).
			Float32("output", net.Output(0, 0)).
			Float32("desired", desired[0]).
			Msg("evaluation")
	}

	if *dump {
		if err := export.Fprint(os.Stdout, net); err != nil {
			logger.Fatal().Err(err).Msg("dump failed")
		}
	}
	if *tcl {
		if err := export.Tcl(os.Stdout, net); err != nil {
			logger.Fatal().Err(err).Msg("tcl export failed")
		}
	}
}
