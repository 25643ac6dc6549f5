// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ann is the public API of the Ember feed-forward neural
// network engine.
//
// The package re-exports the engine from internal/ann: network
// construction and lifecycle, forward simulation, backpropagation,
// RPROP and gradient descent training, and dataset evaluation.
//
// Example:
//
//	net, err := ann.New3(2, 3, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer net.Free()
//
//	inputs := []float32{0, 0, 0, 1, 1, 0, 1, 1}
//	desired := []float32{0, 1, 1, 0}
//	e := net.Train(inputs, desired, 0.01, 1000, 4, ann.RProp)
package ann

import (
	internal "github.com/ember-ml/ember/internal/ann"
)

// Network is a feed-forward neural network. Layer 0 is the output
// layer, layer Layers()-1 the input layer; every layer except the output
// layer carries one bias unit pinned to 1.0.
type Network = internal.Network

// Config holds construction-time options; zero-value fields fall back
// to the package defaults.
type Config = internal.Config

// Allocator backs a Network's float32 buffers.
type Allocator = internal.Allocator

// Algorithm selects the training rule used by Train.
type Algorithm = internal.Algorithm

// Training algorithms.
const (
	RProp = internal.RProp
	GD    = internal.GD
)

// Default hyperparameters applied at construction.
const (
	DefaultNPlus        = internal.DefaultNPlus
	DefaultNMinus       = internal.DefaultNMinus
	DefaultMaxUpdate    = internal.DefaultMaxUpdate
	DefaultMinUpdate    = internal.DefaultMinUpdate
	DefaultLearningRate = internal.DefaultLearningRate
	InitialDelta        = internal.InitialDelta
)

// New creates a fully initialized network; unit counts run from the
// output layer to the input layer, excluding bias units.
func New(unitsOutputToInput ...int) (*Network, error) {
	return internal.New(unitsOutputToInput...)
}

// NewWithConfig is New with explicit hyperparameters, allocator, and
// random source.
func NewWithConfig(cfg Config, unitsOutputToInput ...int) (*Network, error) {
	return internal.NewWithConfig(cfg, unitsOutputToInput...)
}

// New2 creates a 2-layer "linear" network (no hidden layer).
func New2(inputs, outputs int) (*Network, error) { return internal.New2(inputs, outputs) }

// New3 creates a 3-layer input/hidden/output network.
func New3(inputs, hidden, outputs int) (*Network, error) {
	return internal.New3(inputs, hidden, outputs)
}

// New4 creates a 4-layer network with two hidden layers.
func New4(inputs, hidden, hidden2, outputs int) (*Network, error) {
	return internal.New4(inputs, hidden, hidden2, outputs)
}

// SetVectorized selects between the BLAS fast path and the scalar
// fallback for the engine's inner loops.
func SetVectorized(on bool) { internal.SetVectorized(on) }

// Vectorized reports whether the BLAS fast path is active.
func Vectorized() bool { return internal.Vectorized() }
