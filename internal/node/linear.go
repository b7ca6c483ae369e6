package node

import (
	"fmt"

	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/magnet/internal/params"
)

var linearTable = params.Table{
	{Key: "b", Default: true},
}

// Linear is a fully connected node with deferred construction. The
// output size o is the one required argument; input features are
// inferred at build time as the product of the input's non-batch
// dimensions, and Forward flattens higher-rank inputs accordingly, so
// a Linear can directly follow a convolution stack.
//
//	fc := node.NewLinear(10)
type Linear struct {
	base
}

// NewLinear declares a fully connected node producing o output
// features. Further args follow the table (b: bias). Invalid
// arguments panic, like Born layer constructors.
func NewLinear(o int, args ...any) *Linear {
	l := &Linear{}
	l.base = *mustBase("Linear", linearTable, args, l.buildModule)
	l.args["o"] = o
	return l
}

func linearFromArgs(args params.Resolved, name string) *Linear {
	l := &Linear{}
	l.base = base{class: "Linear", name: name, table: linearTable, args: args}
	l.base.build = l.buildModule
	return l
}

// Repeat returns the receiver plus n-1 fresh nodes sharing its
// resolved arguments.
func (l *Linear) Repeat(n int) []Node {
	if n < 1 {
		return nil
	}
	nodes := make([]Node, 0, n)
	nodes = append(nodes, l)
	for i := 1; i < n; i++ {
		nodes = append(nodes, linearFromArgs(l.args.Clone(), l.name))
	}
	return nodes
}

// RepeatWith returns one fresh Linear per value, interpreting each as
// that copy's output size. Handy for declaring a stack of shrinking
// fully connected layers in one line.
func (l *Linear) RepeatWith(vs ...any) ([]Node, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("%s: replicate with overrides: no values given", l.class)
	}
	nodes := make([]Node, 0, len(vs))
	for i, v := range vs {
		if _, ok := v.(int); !ok {
			return nil, fmt.Errorf("%s: override %d: output size must be an int, got %T", l.class, i, v)
		}
		args := l.args.Clone()
		args["o"] = v
		nodes = append(nodes, linearFromArgs(args, l.name))
	}
	return nodes, nil
}

func (l *Linear) buildModule(in tensor.Shape, dev Device) (Module, error) {
	if len(in) < 2 {
		return nil, &UnsupportedRankError{Class: l.class, Rank: len(in)}
	}
	if !l.args.Bool("b") {
		// Born's Linear always carries a bias; reject rather than
		// silently training one the caller asked to omit.
		return nil, fmt.Errorf("%s: bias-free linear: %w", l.class, errUnsupported)
	}
	inFeatures := prod(in[1:])
	fc := nn.NewLinear(inFeatures, l.args.Int("o"), dev)
	return &flatten{inFeatures: inFeatures, fc: fc}, nil
}

// flatten reshapes rank>2 inputs to [batch, features] before the
// underlying Born Linear.
type flatten struct {
	inFeatures int
	fc         *nn.Linear[tensor.Backend]
}

func (m *flatten) Forward(x *Tensor) *Tensor {
	if len(x.Shape()) > 2 {
		x = x.Reshape(x.Shape()[0], m.inFeatures)
	}
	return m.fc.Forward(x)
}

func (m *flatten) Parameters() []*Parameter {
	return m.fc.Parameters()
}

func (m *flatten) StateDict() map[string]*tensor.RawTensor {
	return m.fc.StateDict()
}

func (m *flatten) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return m.fc.LoadStateDict(stateDict)
}
