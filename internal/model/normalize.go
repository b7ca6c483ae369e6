package model

import (
	"errors"
	"fmt"

	"github.com/born-ml/magnet/internal/node"
)

var errUnsupported = errors.ErrUnsupported

// ToNode normalizes a heterogeneous specification into a Node:
//
//   - a Node passes through;
//   - a func(*Tensor) *Tensor becomes a Lambda;
//   - a single-key map names its value: {"block1": spec} normalizes
//     spec and sets its display name to "block1";
//   - a slice becomes a Pipeline of its normalized elements;
//   - a registered layer kind name ("relu", {"conv": {...}}) builds
//     through the registry;
//   - a Born module is wrapped.
//
// Anything else is an error.
func ToNode(x any) (node.Node, error) {
	switch v := x.(type) {
	case node.Node:
		return v, nil

	case func(*node.Tensor) *node.Tensor:
		return node.NewLambda(v), nil

	case string:
		return fromRegistry(v, nil)

	case map[string]any:
		if len(v) != 1 {
			return nil, fmt.Errorf("spec map must have exactly one key, got %d", len(v))
		}
		for key, value := range v {
			if registered(key) {
				args, err := argsMap(key, value)
				if err != nil {
					return nil, err
				}
				return fromRegistry(key, args)
			}
			child, err := ToNode(value)
			if err != nil {
				return nil, fmt.Errorf("block %q: %w", key, err)
			}
			child.SetName(key)
			return child, nil
		}
		panic("unreachable")

	case []any:
		pipeline := &Pipeline{name: "Pipeline"}
		for i, item := range v {
			n, err := ToNode(item)
			if err != nil {
				return nil, fmt.Errorf("sequence item %d: %w", i, err)
			}
			pipeline.nodes = append(pipeline.nodes, n)
		}
		return pipeline, nil

	case node.Module:
		return node.NewWrap(v), nil

	default:
		return nil, fmt.Errorf("cannot normalize %T into a node", x)
	}
}

// argsMap coerces a registry layer's value into its argument map. A
// nil value ({"relu": nil} or bare "relu") means no arguments.
func argsMap(kind string, value any) (map[string]any, error) {
	switch args := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return args, nil
	default:
		return nil, fmt.Errorf("layer %q: arguments must be a map, got %T", kind, value)
	}
}
