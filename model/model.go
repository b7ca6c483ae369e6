// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model turns heterogeneous declarative specifications into
// nodes.
//
// A model specification mixes whatever is most convenient per layer:
// node values, bare tensor functions, registered layer kind names,
// named blocks and nested sequences all normalize to the same Node
// interface.
//
//	net := model.NewPipeline(
//		node.NewConv(6, 5, 0),
//		"relu",
//		map[string]any{"maxpool": map[string]any{"k": 2}},
//		node.NewLinear(10),
//	)
//
// The same structure loads from YAML:
//
//	name: lenet
//	layers:
//	  - conv: {c: 6, k: 5, p: 0}
//	  - relu
//	  - maxpool: {k: 2}
//	  - linear: {o: 10}
//
// Projects register their own layer kinds with Register.
package model

import (
	"github.com/born-ml/magnet/internal/model"
	"github.com/born-ml/magnet/node"
)

// Pipeline chains nodes: each node's output is the next node's input.
// It is itself a Node, so pipelines nest.
type Pipeline = model.Pipeline

// NewPipeline normalizes each item through ToNode and chains the
// results. Invalid items panic, like Born layer constructors; use
// ToNode directly for error handling.
func NewPipeline(items ...any) *Pipeline {
	return model.NewPipeline(items...)
}

// ToNode normalizes a heterogeneous specification value into a Node:
// nodes pass through, functions become Lambdas, strings and single-key
// maps build through the layer registry, slices become Pipelines,
// Born modules are wrapped, and a single-key map whose key is not a
// registered kind names its normalized value.
func ToNode(x any) (node.Node, error) {
	return model.ToNode(x)
}

// Builder constructs a node from a declarative argument map (possibly
// nil).
type Builder = model.Builder

// Register adds (or replaces) a declarative layer kind, so projects
// can use their own nodes in spec files.
func Register(kind string, build Builder) {
	model.Register(kind, build)
}

// Kinds returns the registered layer kinds, sorted.
func Kinds() []string {
	return model.Kinds()
}

// ParseYAML decodes a YAML architecture document into an unbuilt node
// tree.
func ParseYAML(data []byte) (node.Node, error) {
	return model.ParseYAML(data)
}

// LoadYAML reads and parses a YAML architecture file.
func LoadYAML(path string) (node.Node, error) {
	return model.LoadYAML(path)
}
