// Package node implements self-parametrizing layer wrappers ("Nodes")
// for the Born ML framework.
//
// A Node is declared without input shapes: shape-dependent
// construction of the underlying Born module is deferred until the
// first forward pass, when the input tensor supplies its rank,
// channel count and backend. A Conv can infer its dimensionality and
// input channels, a Linear its input features, so a model definition
// carries only the architecture's free choices.
//
// The package pins Born's backend type parameter to the
// tensor.Backend interface itself, so nodes of different concrete
// backends share one type and a process-wide default device remains
// expressible.
package node

import (
	"fmt"

	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/magnet/internal/device"
	"github.com/born-ml/magnet/internal/params"
)

// Device is a Born compute backend.
type Device = tensor.Backend

// Tensor is the float32 tensor type all nodes operate on.
type Tensor = tensor.Tensor[float32, tensor.Backend]

// Module is the Born module interface nodes delegate to once built.
type Module = nn.Module[tensor.Backend]

// Parameter is a trainable parameter of a built node.
type Parameter = nn.Parameter[tensor.Backend]

// Node is a lazily built Born module.
//
// It satisfies Born's nn.Module interface, so built nodes compose
// with ordinary Born modules. Before the first call Parameters and
// StateDict are empty; LoadStateDict fails until the node is built.
type Node interface {
	// Forward builds the node on first use (honoring the build mode)
	// and delegates to the underlying module. Build failures panic
	// with the typed error, matching Born's Forward conventions.
	Forward(input *Tensor) *Tensor

	// Parameters returns the built module's trainable parameters,
	// or nil while the node is unbuilt.
	Parameters() []*Parameter

	// StateDict returns the built module's state dictionary,
	// or an empty map while the node is unbuilt.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict loads parameters into the built module.
	// It fails while the node is unbuilt, since parameter shapes are
	// unknown until the first input arrives.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error

	// Name returns the display name (the kind name unless set).
	Name() string

	// SetName replaces the display name.
	SetName(name string)

	// Built reports whether deferred construction has happened.
	Built() bool

	// Build constructs the underlying module for the given input
	// shape on the given device. It is a no-op on a built node.
	// A failed build leaves the node unbuilt and reusable.
	Build(in tensor.Shape, dev Device) error

	// OutputShape builds the node if necessary (on the default
	// device), runs one probe forward pass and returns the output
	// shape. The probe tensor never enters a gradient tape.
	OutputShape(in tensor.Shape) (tensor.Shape, error)

	// Args renders the resolved constructor arguments.
	Args() string

	// Repeat returns n nodes sharing this node's resolved arguments:
	// the receiver followed by n-1 fresh unbuilt clones.
	Repeat(n int) []Node

	// RepeatWith returns one fresh node per override value, each a
	// clone with the value applied in a kind-specific way. Kinds
	// without a meaningful interpretation return an error wrapping
	// errors.ErrUnsupported.
	RepeatWith(vs ...any) ([]Node, error)
}

// BuildMode is the process-wide deferred-construction policy.
type BuildMode int

const (
	// BuildOnce builds each node on its first call and never again.
	BuildOnce BuildMode = iota

	// BuildAlways rebuilds a node on every call. Useful when probing
	// a node against inputs of different shapes.
	BuildAlways

	// BuildSuspended never builds: calling an unbuilt node panics
	// with ErrSuspended. Lets inspection code route tensors through
	// a model without mutating any node.
	BuildSuspended
)

// mode is plain process-wide state, read and written without
// synchronization: node construction and invocation happen on one
// logical thread of control.
var mode = BuildOnce

// SetBuildMode sets the process-wide build mode.
func SetBuildMode(m BuildMode) { mode = m }

// Mode returns the process-wide build mode.
func Mode() BuildMode { return mode }

// buildFunc constructs the underlying Born module for an input shape
// on a device.
type buildFunc func(in tensor.Shape, dev Device) (Module, error)

// base carries the shared lazy-build machinery. Concrete kinds embed
// it and install their buildFunc at construction time.
type base struct {
	class  string
	name   string
	table  params.Table
	args   params.Resolved
	build  buildFunc
	module Module
	dev    Device
}

func newBase(class string, table params.Table, args []any, build buildFunc) (*base, error) {
	resolved, name, err := params.Resolve(class, table, args)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = class
	}
	return &base{
		class: class,
		name:  name,
		table: table,
		args:  resolved,
		build: build,
	}, nil
}

// mustBase is the constructor-path variant: argument resolution
// failures are programmer errors, so they panic like Born's own layer
// constructors do on invalid configuration.
func mustBase(class string, table params.Table, args []any, build buildFunc) *base {
	b, err := newBase(class, table, args, build)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *base) Name() string        { return b.name }
func (b *base) SetName(name string) { b.name = name }
func (b *base) Built() bool         { return b.module != nil }
func (b *base) Args() string        { return b.args.Format(b.table) }

// Build constructs the module explicitly. Unlike Forward it ignores
// the build mode: an explicit Build is always intentional.
func (b *base) Build(in tensor.Shape, dev Device) error {
	if b.module != nil {
		return nil
	}
	return b.rebuild(in, dev)
}

func (b *base) rebuild(in tensor.Shape, dev Device) error {
	if b.build == nil {
		// Built-from-birth kinds (Lambda, Wrap) have nothing to defer.
		return nil
	}
	module, err := b.build(in, dev)
	if err != nil {
		return err
	}
	b.module = module
	b.dev = dev
	return nil
}

// ensureBuilt applies the process-wide build mode before a forward
// pass. UNBUILT transitions to BUILT at most once under BuildOnce.
func (b *base) ensureBuilt(in tensor.Shape, dev Device) error {
	switch mode {
	case BuildSuspended:
		if b.module == nil {
			return fmt.Errorf("%s %q called while %w", b.class, b.name, ErrSuspended)
		}
		return nil
	case BuildAlways:
		return b.rebuild(in, dev)
	default:
		if b.module != nil {
			return nil
		}
		return b.rebuild(in, dev)
	}
}

func (b *base) Forward(input *Tensor) *Tensor {
	if err := b.ensureBuilt(input.Shape(), input.Backend()); err != nil {
		panic(err)
	}
	return b.module.Forward(input)
}

func (b *base) Parameters() []*Parameter {
	if b.module == nil {
		return nil
	}
	return b.module.Parameters()
}

func (b *base) StateDict() map[string]*tensor.RawTensor {
	if b.module == nil {
		return map[string]*tensor.RawTensor{}
	}
	return b.module.StateDict()
}

func (b *base) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if b.module == nil {
		return fmt.Errorf("%s %q: cannot load state into an unbuilt node", b.class, b.name)
	}
	return b.module.LoadStateDict(stateDict)
}

// OutputShape probes the node with a random tensor of the given
// shape. The first call on an unbuilt node triggers the build; later
// calls reuse the module and report the same shape. The probe runs on
// the node's own device once built, otherwise on the default device,
// which is a plain backend with no gradient tape.
func (b *base) OutputShape(in tensor.Shape) (out tensor.Shape, err error) {
	dev := b.dev
	if dev == nil {
		dev = device.Default()
	}
	if err := b.Build(in, dev); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = recoveredErr(b.class, b.name, r)
		}
	}()
	probe := tensor.Randn[float32](in, dev)
	return b.module.Forward(probe).Shape(), nil
}

// RepeatWith is the default "not meaningful for this kind" answer;
// kinds that support override replication shadow it.
func (b *base) RepeatWith(vs ...any) ([]Node, error) {
	return nil, fmt.Errorf("%s: replicate with overrides: %w", b.class, errUnsupported)
}

// recoveredErr converts a recovered Forward panic into an error.
func recoveredErr(class, name string, r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%s %q: %w", class, name, err)
	}
	return fmt.Errorf("%s %q: %v", class, name, r)
}

// prod multiplies shape dimensions; prod of no dimensions is 1.
func prod(dims tensor.Shape) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}
