// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package inspect provides stateless introspection helpers for Born
// modules and nodes: parameter counting, output-shape probing and
// function naming.
package inspect

import (
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/magnet/internal/inspect"
	"github.com/born-ml/magnet/node"
)

// NumParams counts the scalar parameters of a module, partitioned by
// trainability. State-dict entries without a backing trainable
// parameter are buffers, counted as non-trainable. An unbuilt node
// counts as zero on both sides.
func NumParams(m node.Module) (trainable, nonTrainable int) {
	return inspect.NumParams(m)
}

// OutputShape reports the output shape a module produces for a
// hypothetical input shape, by running one forward pass over a random
// tensor on dev (the process-wide default device when nil). The probe
// never enters a gradient tape; an unbuilt node builds once as a side
// effect, like any other first call.
func OutputShape(m node.Module, in tensor.Shape, dev node.Device) (tensor.Shape, error) {
	return inspect.OutputShape(m, in, dev)
}

// FuncName returns a best-effort display name for a function value;
// "" when the runtime cannot resolve a useful symbol.
func FuncName(fn any) string {
	return inspect.FuncName(fn)
}
