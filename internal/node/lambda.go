package node

import (
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/magnet/internal/params"
)

// Lambda wraps a plain tensor function as a parameterless node. It is
// built from birth: there is nothing shape-dependent to construct.
//
// The display name defaults to the function's symbol name when the
// runtime can resolve one, "Lambda" otherwise.
//
//	double := node.NewLambda(func(x *node.Tensor) *node.Tensor {
//		return x.MulScalar(float32(2))
//	})
type Lambda struct {
	base
	fn func(*Tensor) *Tensor
}

// NewLambda declares a function node. Only a Named option is
// meaningful in args.
func NewLambda(fn func(*Tensor) *Tensor, args ...any) *Lambda {
	l := &Lambda{fn: fn}
	l.base = *mustBase("Lambda", params.Table{}, args, nil)
	if l.name == "Lambda" {
		if symbol := FuncName(fn); symbol != "" {
			l.name = symbol
		}
	}
	l.module = &funcModule{fn: fn}
	return l
}

// Repeat returns the receiver plus n-1 nodes sharing the function.
func (l *Lambda) Repeat(n int) []Node {
	if n < 1 {
		return nil
	}
	nodes := make([]Node, 0, n)
	nodes = append(nodes, l)
	for i := 1; i < n; i++ {
		clone := NewLambda(l.fn)
		clone.SetName(l.name)
		nodes = append(nodes, clone)
	}
	return nodes
}

// funcModule satisfies the Born module interface for a bare function.
type funcModule struct {
	fn func(*Tensor) *Tensor
}

func (m *funcModule) Forward(x *Tensor) *Tensor { return m.fn(x) }

func (m *funcModule) Parameters() []*Parameter { return nil }

func (m *funcModule) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{}
}

func (m *funcModule) LoadStateDict(map[string]*tensor.RawTensor) error { return nil }
