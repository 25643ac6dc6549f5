// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ann implements a compact feed-forward neural network engine
// with two training algorithms: batch gradient descent and Resilient
// Backpropagation (RPROP).
//
// # Overview
//
// The engine is built around a single Network value which owns every
// numeric buffer: per-layer outputs, error signals, weights, and the
// auxiliary per-weight arrays used by the optimizers. All numeric state
// is float32 held in flat, contiguous slices so the hot loops stay
// friendly to vectorized kernels.
//
// Layers are indexed from the output side: layer 0 is the output layer
// and layer Layers()-1 is the input layer. Every layer except the output
// layer carries one synthetic bias unit whose output is pinned to 1.0.
//
// # Basic Usage
//
//	net, err := ann.New3(2, 3, 1) // 2 inputs, 3 hidden, 1 output
//	if err != nil {
//	    // allocation failure
//	}
//	defer net.Free()
//
//	// Train on a flat dataset: setLen examples, each example occupying
//	// InputUnits() / OutputUnits() consecutive slots.
//	avg := net.Train(inputs, desired, 0.01, 1000, setLen, ann.RProp)
//
//	// Inference.
//	net.SetInput([]float32{1, 0})
//	net.Simulate()
//	y := net.Output(0, 0)
//
// # Training Algorithms
//
// RPROP adapts a per-weight step size from the sign relationship between
// the current and previous epoch's accumulated gradient, ignoring the
// gradient magnitude. Gradient descent scales the accumulated gradient by
// a global learning rate. Both are driven by epoch-level primitives
// (ResilientEpoch, GDEpoch) sequenced by Train.
//
// # Concurrency
//
// A Network is single-threaded state. Concurrent access to the same
// Network is undefined behavior; Clone exists precisely so callers can
// run parallel experiments on independent copies.
package ann
