// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package node provides self-parametrizing layer wrappers for Born.
//
// # Overview
//
// A Node is a lazily built Born module: it is declared without input
// shapes, and constructs its underlying nn module on the first
// forward pass, inferring dimensionality, input channels or input
// features from the actual input tensor.
//
//	conv := node.NewConv(64)     // kernel 3, "half" padding, channels inferred
//	fc := node.NewLinear(10)     // input features inferred, input flattened
//
//	input := tensor.Randn[float32](tensor.Shape{32, 3, 28, 28}, dev)
//	hidden := conv.Forward(input) // Conv2D built here: 3 -> 64 channels
//	logits := fc.Forward(hidden)  // Linear built here
//
// # Shorthand arguments
//
// Constructors take a mixed argument list: bare values bind
// positionally to the node's parameter table, options override by
// key.
//
//	node.NewConv(64, 5)                              // c=64, k=5
//	node.NewConv(64, node.WithStride(2))             // c=64, s=2
//	node.NewConv(node.WithPadding("same"), node.WithName("enc1"))
//
// Conv parameters, in table order: c (output channels, default
// derived), k (kernel, 3), p (padding, "half"), s (stride, 1),
// d (dilation, 1), g (groups, 1), b (bias, true).
//
// # Build modes
//
// Deferred construction is governed by a process-wide mode: build
// once (the default), rebuild on every call, or suspend building
// entirely for inspection workflows. See SetBuildMode.
//
// Nodes satisfy Born's nn.Module interface, so built nodes compose
// with plain Born modules and serialize through the usual .born
// state files (SaveState, LoadState).
package node
