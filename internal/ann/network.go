package ann

import (
	"fmt"
	"math/rand"
)

// Default hyperparameters, applied by New and NewWithConfig when the
// corresponding Config field is zero.
const (
	DefaultNPlus        = 1.2
	DefaultNMinus       = 0.5
	DefaultMaxUpdate    = 50
	DefaultMinUpdate    = 0.000001
	DefaultLearningRate = 0.1

	// InitialDelta is the step size every weight starts from before the
	// first RPROP adaptation.
	InitialDelta = 0.1
)

// Allocator provides the float32 buffers backing a Network.
//
// The default heap allocator never fails. Tests inject failing or
// counting allocators to exercise the construction failure paths and to
// verify that no buffer leaks when construction aborts halfway.
type Allocator interface {
	// Floats returns a zeroed buffer of n elements, or an error on
	// allocation failure.
	Floats(n int) ([]float32, error)

	// Release returns a buffer previously obtained from Floats. The
	// default allocator treats this as a no-op; bookkeeping allocators
	// use it to track live buffers.
	Release(buf []float32)
}

// heapAllocator is the default Allocator: plain make, never fails.
type heapAllocator struct{}

func (heapAllocator) Floats(n int) ([]float32, error) { return make([]float32, n), nil }
func (heapAllocator) Release([]float32)               {}

// Config holds construction-time options for a Network.
//
// Zero-value fields fall back to the package defaults, so
// NewWithConfig(Config{}, ...) behaves exactly like New(...).
type Config struct {
	NPlus        float32 // RPROP step growth factor (default 1.2)
	NMinus       float32 // RPROP step shrink factor (default 0.5)
	MaxUpdate    float32 // RPROP step upper bound (default 50)
	MinUpdate    float32 // RPROP step lower bound (default 1e-6)
	LearningRate float32 // gradient descent learning rate (default 0.1)

	// Allocator backs every buffer of the network. Defaults to the heap.
	Allocator Allocator

	// Rand is the source for the initial random weights. Defaults to the
	// shared math/rand source.
	Rand *rand.Rand
}

// layer is one stage of the network.
//
// The weight buffer (and its same-shaped auxiliaries) connects this
// layer to the adjacent layer nearer the output: row j holds the
// incoming weights of target unit j in layer l-1, with stride units, so
// weight[j*units+k] connects source unit k of this layer to target j.
type layer struct {
	units  int
	output []float32
	error  []float32

	// nil for the output layer (index 0), which has no incoming matrix.
	weight    []float32
	gradient  []float32 // per-example gradient
	sgradient []float32 // gradient summed over the epoch (RPROP)
	pgradient []float32 // previous epoch's summed gradient (RPROP)
	delta     []float32 // per-weight step size (RPROP) / gradient sum (GD)
}

// Network is a feed-forward neural network.
//
// Layer 0 is the output layer, layer Layers()-1 the input layer. The
// hyperparameter fields are plain mutable configuration; changing them
// takes effect on the next weight adjustment.
type Network struct {
	layer []layer
	alloc Allocator

	NPlus        float32
	NMinus       float32
	MaxUpdate    float32
	MinUpdate    float32
	LearningRate float32
}

// Alloc returns a network with nlayers zeroed layers and default
// hyperparameters. The layers carry no buffers until InitLayer is called
// for each of them; most callers want New instead.
func Alloc(nlayers int, a Allocator) (*Network, error) {
	if nlayers < 1 {
		panic(fmt.Sprintf("ann: Alloc: invalid layer count %d", nlayers))
	}
	if a == nil {
		a = heapAllocator{}
	}
	return &Network{
		layer:        make([]layer, nlayers),
		alloc:        a,
		NPlus:        DefaultNPlus,
		NMinus:       DefaultNMinus,
		MaxUpdate:    DefaultMaxUpdate,
		MinUpdate:    DefaultMinUpdate,
		LearningRate: DefaultLearningRate,
	}, nil
}

// freeLayer releases every buffer of l and resets it to the zero state.
func (n *Network) freeLayer(l *layer) {
	for _, buf := range [][]float32{
		l.output, l.error, l.weight, l.gradient, l.sgradient, l.pgradient, l.delta,
	} {
		if buf != nil {
			n.alloc.Release(buf)
		}
	}
	*l = layer{}
}

// InitLayer sizes and zero-fills the buffers of layer i with the given
// unit count. When bias is true one bias unit is appended and its output
// pinned to 1.0. Layers must be initialized in order from the output
// side, since layer i's weight matrix is sized against layer i-1.
//
// On allocation failure the layer is released and reset without touching
// its siblings, and a non-nil error is returned.
func (n *Network) InitLayer(i, units int, bias bool) error {
	if bias {
		units++
	}
	l := &n.layer[i]

	var err error
	alloc := func(m int) []float32 {
		if err != nil {
			return nil
		}
		var buf []float32
		if buf, err = n.alloc.Floats(m); err != nil {
			return nil
		}
		return buf
	}

	l.output = alloc(units)
	l.error = alloc(units)
	if i > 0 { // the output layer has no incoming weight matrix
		weights := units * n.layer[i-1].units
		l.weight = alloc(weights)
		l.gradient = alloc(weights)
		l.sgradient = alloc(weights)
		l.pgradient = alloc(weights)
		l.delta = alloc(weights)
	}
	if err != nil {
		n.freeLayer(l)
		return fmt.Errorf("ann: init layer %d: %w", i, err)
	}
	l.units = units
	if bias {
		l.output[units-1] = 1
	}
	return nil
}

// Free releases every layer's buffers, then the layer sequence. The
// network must not be used afterwards.
func (n *Network) Free() {
	for i := range n.layer {
		n.freeLayer(&n.layer[i])
	}
	n.layer = nil
}

// Clone returns a fully independent deep copy of the network: every
// buffer and every hyperparameter is copied, nothing is shared. The copy
// uses the same allocator. On allocation failure the partial copy is
// released and a non-nil error returned.
func (n *Network) Clone() (*Network, error) {
	copy2, err := Alloc(len(n.layer), n.alloc)
	if err != nil {
		return nil, err
	}
	for j := range n.layer {
		src := &n.layer[j]
		bias := j > 0
		units := src.units
		if bias {
			units--
		}
		if err := copy2.InitLayer(j, units, bias); err != nil {
			copy2.Free()
			return nil, err
		}
		dst := &copy2.layer[j]
		copy(dst.output, src.output)
		copy(dst.error, src.error)
		if j > 0 {
			copy(dst.weight, src.weight)
			copy(dst.gradient, src.gradient)
			copy(dst.sgradient, src.sgradient)
			copy(dst.pgradient, src.pgradient)
			copy(dst.delta, src.delta)
		}
	}
	copy2.NPlus = n.NPlus
	copy2.NMinus = n.NMinus
	copy2.MaxUpdate = n.MaxUpdate
	copy2.MinUpdate = n.MinUpdate
	copy2.LearningRate = n.LearningRate
	return copy2, nil
}

// New creates a fully initialized network. The unit counts are given
// from the output layer to the input layer, excluding bias units (every
// layer except the output layer gets one appended automatically).
// Weights start at uniform random values in [-0.05, +0.05), every step
// size at InitialDelta, and the hyperparameters at their defaults.
//
// A non-nil error means allocation failure; any partially constructed
// state has already been released.
func New(unitsOutputToInput ...int) (*Network, error) {
	return NewWithConfig(Config{}, unitsOutputToInput...)
}

// NewWithConfig is New with explicit hyperparameters, allocator, and
// random source. Zero-value Config fields fall back to the defaults.
func NewWithConfig(cfg Config, unitsOutputToInput ...int) (*Network, error) {
	if len(unitsOutputToInput) < 2 {
		panic(fmt.Sprintf("ann: network needs at least 2 layers, got %d", len(unitsOutputToInput)))
	}
	net, err := Alloc(len(unitsOutputToInput), cfg.Allocator)
	if err != nil {
		return nil, err
	}
	for i, units := range unitsOutputToInput {
		if units < 1 {
			net.Free()
			panic(fmt.Sprintf("ann: layer %d needs at least 1 unit, got %d", i, units))
		}
		if err := net.InitLayer(i, units, i > 0); err != nil {
			net.Free()
			return nil, err
		}
	}
	if cfg.NPlus != 0 {
		net.NPlus = cfg.NPlus
	}
	if cfg.NMinus != 0 {
		net.NMinus = cfg.NMinus
	}
	if cfg.MaxUpdate != 0 {
		net.MaxUpdate = cfg.MaxUpdate
	}
	if cfg.MinUpdate != 0 {
		net.MinUpdate = cfg.MinUpdate
	}
	if cfg.LearningRate != 0 {
		net.LearningRate = cfg.LearningRate
	}
	if cfg.Rand != nil {
		net.SetRandomWeightsFrom(cfg.Rand)
	} else {
		net.SetRandomWeights()
	}
	net.SetDeltas(InitialDelta)
	return net, nil
}

// New2 creates a 2-layer "linear" network (no hidden layer).
func New2(inputs, outputs int) (*Network, error) {
	return New(outputs, inputs)
}

// New3 creates a 3-layer input/hidden/output network.
func New3(inputs, hidden, outputs int) (*Network, error) {
	return New(outputs, hidden, inputs)
}

// New4 creates a 4-layer network with two hidden layers.
func New4(inputs, hidden, hidden2, outputs int) (*Network, error) {
	return New(outputs, hidden2, hidden, inputs)
}

// Layers returns the number of layers, input and output included.
func (n *Network) Layers() int { return len(n.layer) }

// Units returns the unit count of layer l, bias unit included.
func (n *Network) Units(l int) int { return n.layer[l].units }

// InputUnits returns the number of input units, excluding the input
// layer's bias unit.
func (n *Network) InputUnits() int {
	last := len(n.layer) - 1
	units := n.layer[last].units
	if last > 0 {
		units--
	}
	return units
}

// OutputUnits returns the number of output units.
func (n *Network) OutputUnits() int { return n.layer[0].units }

// Output returns the activation of unit i in layer l.
func (n *Network) Output(l, i int) float32 { return n.layer[l].output[i] }

// ErrorSignal returns the backpropagated error of unit i in layer l.
func (n *Network) ErrorSignal(l, i int) float32 { return n.layer[l].error[i] }

// widx maps (target unit in layer l-1, source unit in layer l) to the
// flat offset inside layer l's weight buffer and its auxiliaries.
func (n *Network) widx(l, target, source int) int {
	return target*n.layer[l].units + source
}

// Weight returns the connection strength between source unit in layer l
// and target unit in layer l-1.
func (n *Network) Weight(l, target, source int) float32 {
	return n.layer[l].weight[n.widx(l, target, source)]
}

// SetWeight sets one connection strength; see Weight for the indexing.
func (n *Network) SetWeight(l, target, source int, w float32) {
	n.layer[l].weight[n.widx(l, target, source)] = w
}

// Gradient returns the last computed per-example gradient for a weight.
func (n *Network) Gradient(l, target, source int) float32 {
	return n.layer[l].gradient[n.widx(l, target, source)]
}

// SGradient returns the gradient accumulated over the current epoch.
func (n *Network) SGradient(l, target, source int) float32 {
	return n.layer[l].sgradient[n.widx(l, target, source)]
}

// PGradient returns the previous epoch's accumulated gradient.
func (n *Network) PGradient(l, target, source int) float32 {
	return n.layer[l].pgradient[n.widx(l, target, source)]
}

// Delta returns the current per-weight step size.
func (n *Network) Delta(l, target, source int) float32 {
	return n.layer[l].delta[n.widx(l, target, source)]
}

// CountWeights returns the total number of learnable weights: bias units
// are never targets, so their rows are excluded.
func (n *Network) CountWeights() int {
	weights := 0
	for i := len(n.layer) - 1; i > 0; i-- {
		next := n.layer[i-1].units
		if i > 1 { // layer i-1 carries a bias unit, never a target
			next--
		}
		weights += n.layer[i].units * next
	}
	return weights
}

// SetRandomWeights replaces every weight with a uniform random value in
// [-0.05, +0.05), using the shared math/rand source.
func (n *Network) SetRandomWeights() {
	for j := 1; j < len(n.layer); j++ {
		w := n.layer[j].weight
		for i := range w {
			//nolint:gosec // weight initialization is not security-critical
			w[i] = -0.05 + 0.1*rand.Float32()
		}
	}
}

// SetRandomWeightsFrom is SetRandomWeights with a caller-supplied source,
// for reproducible experiments.
func (n *Network) SetRandomWeightsFrom(r *rand.Rand) {
	for j := 1; j < len(n.layer); j++ {
		w := n.layer[j].weight
		for i := range w {
			w[i] = -0.05 + 0.1*r.Float32()
		}
	}
}

// ScaleWeights multiplies every weight by factor.
func (n *Network) ScaleWeights(factor float32) {
	for j := 1; j < len(n.layer); j++ {
		w := n.layer[j].weight
		for i := range w {
			w[i] *= factor
		}
	}
}

// SetDeltas sets every per-weight step size to v.
func (n *Network) SetDeltas(v float32) {
	for j := 1; j < len(n.layer); j++ {
		d := n.layer[j].delta
		for i := range d {
			d[i] = v
		}
	}
}

// ResetSGradient zeroes the epoch-accumulated gradients.
func (n *Network) ResetSGradient() {
	for j := 1; j < len(n.layer); j++ {
		sg := n.layer[j].sgradient
		for i := range sg {
			sg[i] = 0
		}
	}
}
