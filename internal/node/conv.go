package node

import (
	"fmt"

	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/magnet/internal/params"
)

// convTable mirrors the shorthand keys of the original node:
// output channels, kernel size, padding, stride, dilation, groups,
// bias. Output channels default to nil: unless given, they are
// derived from the input at build time (stride x input channels).
var convTable = params.Table{
	{Key: "c", Default: nil},
	{Key: "k", Default: 3},
	{Key: "p", Default: "half"},
	{Key: "s", Default: 1},
	{Key: "d", Default: 1},
	{Key: "g", Default: 1},
	{Key: "b", Default: true},
}

// Conv is a convolution node with deferred construction.
//
// Dimensionality (1-D or 2-D) and input channels are inferred from
// the first input tensor, whose shape is [batch, channels,
// spatial...]. Padding may be given as a concrete int or as a
// symbolic mode:
//
//   - "half": output spatial size is half the input's (stride 2)
//   - "same": output spatial size matches the input's (stride 1)
//   - a float downscale factor f, resolved to stride 1/f
//
// Symbolic modes also fix dilation to 1 and padding to k/2. A factor
// without an integral stride fails the build with
// *InvalidPaddingError.
//
//	conv := node.NewConv(64)                           // c=64, rest defaulted
//	conv := node.NewConv(64, 5, params.KV{"s", 2})     // c=64, k=5, s=2
type Conv struct {
	base
}

// NewConv declares a convolution node. Arguments follow the table
// order c, k, p, s, d, g, b; see package params for the shorthand
// rules. Invalid arguments panic, like Born layer constructors.
func NewConv(args ...any) *Conv {
	c := &Conv{}
	c.base = *mustBase("Conv", convTable, args, c.buildModule)
	return c
}

func convFromArgs(args params.Resolved, name string) *Conv {
	c := &Conv{}
	c.base = base{class: "Conv", name: name, table: convTable, args: args}
	c.base.build = c.buildModule
	return c
}

// Repeat returns the receiver plus n-1 fresh convolutions sharing its
// resolved arguments.
func (c *Conv) Repeat(n int) []Node {
	if n < 1 {
		return nil
	}
	nodes := make([]Node, 0, n)
	nodes = append(nodes, c)
	for i := 1; i < n; i++ {
		nodes = append(nodes, convFromArgs(c.args.Clone(), c.name))
	}
	return nodes
}

// buildModule runs the deferred construction: resolve symbolic
// padding against the input shape, derive output channels, and
// instantiate the Born convolution for the inferred dimensionality.
func (c *Conv) buildModule(in tensor.Shape, dev Device) (Module, error) {
	spatial := len(in) - 2
	if spatial < 1 || spatial > 2 {
		return nil, &UnsupportedRankError{Class: c.class, Rank: len(in)}
	}

	if err := c.resolvePadding(); err != nil {
		return nil, err
	}
	if d := c.args.Int("d"); d != 1 {
		return nil, fmt.Errorf("%s: dilation %d: %w", c.class, d, errUnsupported)
	}
	if g := c.args.Int("g"); g != 1 {
		return nil, fmt.Errorf("%s: groups %d: %w", c.class, g, errUnsupported)
	}

	inChannels := in[1]
	if c.args.IsNil("c") {
		c.args["c"] = c.args.Int("s") * inChannels
	}

	var (
		outChannels = c.args.Int("c")
		kernel      = c.args.Int("k")
		stride      = c.args.Int("s")
		padding     = c.args.Int("p")
		bias        = c.args.Bool("b")
	)

	if spatial == 1 {
		// Born only ships a 2-D convolution; lower 1-D onto it with a
		// k x 1 kernel, padding the length axis by hand since Conv2D
		// would otherwise pad the unit width axis too.
		conv := nn.NewConv2D(inChannels, outChannels, kernel, 1, stride, 0, bias, dev)
		return &conv1d{pad: padding, conv: conv}, nil
	}
	return nn.NewConv2D(inChannels, outChannels, kernel, kernel, stride, padding, bias, dev), nil
}

// resolvePadding converts a symbolic padding mode into concrete
// padding, stride and dilation values. Concrete int padding passes
// through untouched.
func (c *Conv) resolvePadding() error {
	var factor float64
	switch p := c.args["p"].(type) {
	case string:
		switch p {
		case "half":
			factor = 0.5
		case "same":
			factor = 1
		default:
			return &InvalidPaddingError{Class: c.class, Mode: p}
		}
	case float64:
		factor = p
	case float32:
		factor = float64(p)
	default:
		return nil
	}

	if factor <= 0 || factor > 1 {
		return &InvalidPaddingError{Class: c.class, Mode: c.args["p"]}
	}
	stride := 1 / factor
	if stride != float64(int(stride)) {
		return &InvalidPaddingError{Class: c.class, Mode: c.args["p"]}
	}

	c.args["d"] = 1
	c.args["s"] = int(stride)
	c.args["p"] = c.args.Int("k") / 2
	return nil
}

// conv1d adapts Born's Conv2D to rank-3 inputs [batch, channels,
// length].
type conv1d struct {
	pad  int
	conv *nn.Conv2D[tensor.Backend]
}

func (m *conv1d) Forward(x *Tensor) *Tensor {
	if m.pad > 0 {
		shape := x.Shape()
		zeros := tensor.Zeros[float32](tensor.Shape{shape[0], shape[1], m.pad}, x.Backend())
		x = tensor.Cat([]*Tensor{zeros, x, zeros}, 2)
	}
	x = x.Unsqueeze(3) // [N, C, L, 1]
	y := m.conv.Forward(x)
	return y.Squeeze(3)
}

func (m *conv1d) Parameters() []*Parameter {
	return m.conv.Parameters()
}

func (m *conv1d) StateDict() map[string]*tensor.RawTensor {
	return m.conv.StateDict()
}

func (m *conv1d) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return m.conv.LoadStateDict(stateDict)
}
