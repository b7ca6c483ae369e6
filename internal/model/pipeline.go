// Package model turns heterogeneous declarative specifications into
// nodes: bare functions, named blocks, nested sequences, existing
// Born modules and YAML architecture files all normalize to the same
// Node interface.
package model

import (
	"fmt"
	"strings"

	"github.com/born-ml/born/tensor"

	"github.com/born-ml/magnet/internal/device"
	"github.com/born-ml/magnet/internal/node"
)

// Pipeline chains nodes: each node's output is the next node's input.
// It is itself a Node, so pipelines nest. Construction is deferred
// node by node: the pipeline is built by routing a tensor through it,
// each lazy member inferring its own configuration from what the
// previous members produce.
type Pipeline struct {
	name  string
	nodes []node.Node
}

// NewPipeline normalizes each item through ToNode and chains the
// results. Invalid items panic, like Born layer constructors; use
// ToNode directly for error handling.
func NewPipeline(items ...any) *Pipeline {
	nodes := make([]node.Node, len(items))
	for i, item := range items {
		n, err := ToNode(item)
		if err != nil {
			panic(fmt.Errorf("pipeline item %d: %w", i, err))
		}
		nodes[i] = n
	}
	return &Pipeline{name: "Pipeline", nodes: nodes}
}

// Nodes returns the pipeline members in order.
func (p *Pipeline) Nodes() []node.Node { return p.nodes }

// Name returns the display name.
func (p *Pipeline) Name() string { return p.name }

// SetName replaces the display name.
func (p *Pipeline) SetName(name string) { p.name = name }

// Forward routes the input through every member in order, building
// unbuilt members on the way.
func (p *Pipeline) Forward(input *node.Tensor) *node.Tensor {
	output := input
	for _, n := range p.nodes {
		output = n.Forward(output)
	}
	return output
}

// Parameters concatenates the members' parameters in order.
func (p *Pipeline) Parameters() []*node.Parameter {
	var params []*node.Parameter
	for _, n := range p.nodes {
		params = append(params, n.Parameters()...)
	}
	return params
}

// StateDict merges the members' state dictionaries, keys prefixed
// with the member index to avoid collisions (Born's Sequential
// convention).
func (p *Pipeline) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for i, n := range p.nodes {
		for name, raw := range n.StateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = raw
		}
	}
	return stateDict
}

// LoadStateDict splits an index-prefixed state dictionary back onto
// the members.
func (p *Pipeline) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for i, n := range p.nodes {
		prefix := fmt.Sprintf("%d.", i)
		member := make(map[string]*tensor.RawTensor)
		for key, raw := range stateDict {
			if strings.HasPrefix(key, prefix) {
				member[strings.TrimPrefix(key, prefix)] = raw
			}
		}
		if len(member) > 0 {
			if err := n.LoadStateDict(member); err != nil {
				return fmt.Errorf("pipeline member %d (%s): %w", i, n.Name(), err)
			}
		}
	}
	return nil
}

// Built reports whether every member is built.
func (p *Pipeline) Built() bool {
	for _, n := range p.nodes {
		if !n.Built() {
			return false
		}
	}
	return true
}

// Build routes a probe tensor through the pipeline so every member
// builds against the shapes its predecessors produce.
func (p *Pipeline) Build(in tensor.Shape, dev node.Device) (err error) {
	if p.Built() {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = recoveredPipelineErr(p.name, r)
		}
	}()
	probe := tensor.Randn[float32](in, dev)
	p.Forward(probe)
	return nil
}

// OutputShape probes the pipeline on the default device, building
// members as needed, and returns the final output shape.
func (p *Pipeline) OutputShape(in tensor.Shape) (out tensor.Shape, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredPipelineErr(p.name, r)
		}
	}()
	probe := tensor.Randn[float32](in, device.Default())
	return p.Forward(probe).Shape(), nil
}

// Args lists the member names.
func (p *Pipeline) Args() string {
	names := make([]string, len(p.nodes))
	for i, n := range p.nodes {
		names[i] = n.Name()
	}
	return strings.Join(names, " -> ")
}

// Repeat returns the receiver plus n-1 structural clones. Each clone
// member is a fresh unbuilt node sharing its original's resolved
// arguments (a member's Repeat(2) yields exactly one such clone).
func (p *Pipeline) Repeat(n int) []node.Node {
	if n < 1 {
		return nil
	}
	out := make([]node.Node, 0, n)
	out = append(out, p)
	for i := 1; i < n; i++ {
		members := make([]node.Node, len(p.nodes))
		for j, member := range p.nodes {
			members[j] = member.Repeat(2)[1]
		}
		out = append(out, &Pipeline{name: p.name, nodes: members})
	}
	return out
}

// RepeatWith has no pipeline-wide interpretation.
func (p *Pipeline) RepeatWith(vs ...any) ([]node.Node, error) {
	return nil, fmt.Errorf("Pipeline: replicate with overrides: %w", errUnsupported)
}

func recoveredPipelineErr(name string, r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("pipeline %q: %w", name, err)
	}
	return fmt.Errorf("pipeline %q: %v", name, r)
}
