package node

import (
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/magnet/internal/params"
)

// Wrap adapts an already-constructed Born module into a node, so
// activations, poolings and user modules mix freely with lazy nodes
// in a pipeline. The node is built from birth.
//
//	relu := node.NewWrap(nn.NewReLU[tensor.Backend]())
type Wrap struct {
	base
}

// NewWrap declares a node around an existing module. The display
// name defaults to the module's type name. Only a Named option is
// meaningful in args.
func NewWrap(m Module, args ...any) *Wrap {
	w := &Wrap{}
	w.base = *mustBase("Wrap", params.Table{}, args, nil)
	if w.name == "Wrap" {
		if kind := kindName(m); kind != "" {
			w.name = kind
		}
	}
	w.module = m
	return w
}

// Repeat returns the receiver n times: the wrapped module has
// construction-time parameters this package cannot re-derive, so
// copies would silently share weights anyway. Sharing the node makes
// that explicit.
func (w *Wrap) Repeat(n int) []Node {
	if n < 1 {
		return nil
	}
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i] = w
	}
	return nodes
}

// Custom is a lazily built node around a caller-supplied build
// function, for shape-dependent modules this package has no dedicated
// kind for.
//
//	pool := node.NewCustom("MaxPool", func(in tensor.Shape, dev node.Device) (node.Module, error) {
//		return nn.NewMaxPool2D(2, 2, dev), nil
//	})
type Custom struct {
	base
	buildCustom BuildFunc
}

// BuildFunc constructs a Born module for an input shape on a device.
type BuildFunc func(in tensor.Shape, dev Device) (Module, error)

// NewCustom declares a lazily built node with the given display name
// and build function.
func NewCustom(name string, build BuildFunc, args ...any) *Custom {
	c := &Custom{buildCustom: build}
	c.base = *mustBase(name, params.Table{}, args, func(in tensor.Shape, dev Device) (Module, error) {
		return build(in, dev)
	})
	return c
}

// Repeat returns the receiver plus n-1 fresh nodes sharing the build
// function.
func (c *Custom) Repeat(n int) []Node {
	if n < 1 {
		return nil
	}
	nodes := make([]Node, 0, n)
	nodes = append(nodes, c)
	for i := 1; i < n; i++ {
		clone := NewCustom(c.class, c.buildCustom)
		clone.SetName(c.name)
		nodes = append(nodes, clone)
	}
	return nodes
}
