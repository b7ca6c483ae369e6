// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package node

import (
	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/magnet/internal/node"
	"github.com/born-ml/magnet/internal/params"
)

// Device is a Born compute backend. Nodes pin Born's backend type
// parameter to this interface, so nodes of different concrete backends
// share one type.
type Device = tensor.Backend

// Tensor is the float32 tensor type all nodes operate on.
type Tensor = tensor.Tensor[float32, tensor.Backend]

// Module is the Born module interface nodes delegate to once built.
type Module = nn.Module[tensor.Backend]

// Parameter is a trainable parameter of a built node.
type Parameter = nn.Parameter[tensor.Backend]

// Node is a lazily built Born module. See the package documentation
// for the build lifecycle.
type Node = node.Node

// BuildMode is the process-wide deferred-construction policy.
type BuildMode = node.BuildMode

const (
	// BuildOnce builds each node on its first call and never again.
	BuildOnce = node.BuildOnce

	// BuildAlways rebuilds a node on every call.
	BuildAlways = node.BuildAlways

	// BuildSuspended never builds: calling an unbuilt node panics with
	// ErrSuspended.
	BuildSuspended = node.BuildSuspended
)

// SetBuildMode sets the process-wide build mode.
func SetBuildMode(m BuildMode) { node.SetBuildMode(m) }

// Mode returns the process-wide build mode.
func Mode() BuildMode { return node.Mode() }

// Node kinds.

// Conv is a lazy convolution: dimensionality and input channels come
// from the first input tensor.
type Conv = node.Conv

// NewConv declares a convolution node. Parameters, in positional
// order: c (output channels), k (kernel size, 3), p (padding, "half"),
// s (stride, 1), d (dilation, 1), g (groups, 1), b (bias, true).
//
//	node.NewConv(64)                    // 3x3, "half" padding
//	node.NewConv(64, 5, "same")         // 5x5, size-preserving
//	node.NewConv(64, node.WithStride(2))
func NewConv(args ...any) *Conv {
	return node.NewConv(args...)
}

// Linear is a lazy fully connected layer: input features come from
// the first input tensor, which is flattened beyond rank 2.
type Linear = node.Linear

// NewLinear declares a linear node with o output features.
func NewLinear(o int, args ...any) *Linear {
	return node.NewLinear(o, args...)
}

// Lambda wraps a parameterless tensor function as a node.
type Lambda = node.Lambda

// NewLambda declares a function node. The display name is derived
// from the function's symbol where one exists.
//
//	double := node.NewLambda(func(x *node.Tensor) *node.Tensor {
//		return x.MulScalar(2)
//	})
func NewLambda(fn func(*Tensor) *Tensor, args ...any) *Lambda {
	return node.NewLambda(fn, args...)
}

// Wrap adapts an already-constructed Born module into a node.
type Wrap = node.Wrap

// NewWrap declares a node around an existing module.
//
//	relu := node.NewWrap(nn.NewReLU[tensor.Backend]())
func NewWrap(m Module, args ...any) *Wrap {
	return node.NewWrap(m, args...)
}

// Custom is a lazily built node around a caller-supplied build
// function.
type Custom = node.Custom

// BuildFunc constructs a Born module for an input shape on a device.
type BuildFunc = node.BuildFunc

// NewCustom declares a lazily built node with the given display name
// and build function.
//
//	pool := node.NewCustom("MaxPool", func(in tensor.Shape, dev node.Device) (node.Module, error) {
//		return nn.NewMaxPool2D(2, 2, dev), nil
//	})
func NewCustom(name string, build BuildFunc, args ...any) *Custom {
	return node.NewCustom(name, build, args...)
}

// Constructor options.

// KV is an explicit keyword argument for a node constructor.
type KV = params.KV

// Named sets a node's display name from a constructor argument list.
type Named = params.Named

// WithArg overrides a parameter table entry by key.
func WithArg(key string, value any) KV {
	return KV{Key: key, Value: value}
}

// WithName sets the node's display name. The name must be non-empty.
func WithName(name string) Named {
	return Named(name)
}

// WithKernel overrides a convolution's kernel size k.
func WithKernel(k int) KV { return KV{Key: "k", Value: k} }

// WithPadding overrides a convolution's padding p: an explicit int, a
// symbolic mode ("half", "same") or a float downscale factor.
func WithPadding(p any) KV { return KV{Key: "p", Value: p} }

// WithStride overrides a convolution's stride s.
func WithStride(s int) KV { return KV{Key: "s", Value: s} }

// WithBias overrides whether a layer carries a bias term.
func WithBias(b bool) KV { return KV{Key: "b", Value: b} }

// State files.

// SaveState writes a built node's state dictionary to a .born file.
func SaveState(n Node, path string) error {
	return node.SaveState(n, path)
}

// LoadState restores a built node's parameters from a .born file,
// materializing tensors on dev (nil means the default device).
func LoadState(n Node, path string, dev Device) error {
	return node.LoadState(n, path, dev)
}
