package model

import (
	"fmt"
	"sort"

	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"
	"github.com/pkg/errors"

	"github.com/born-ml/magnet/internal/node"
	"github.com/born-ml/magnet/internal/params"
)

// Builder constructs a node from a declarative argument map (possibly
// nil).
type Builder func(args map[string]any) (node.Node, error)

// registry maps declarative layer kinds to builders. Process-wide,
// populated at init and by Register; unsynchronized like the rest of
// the package-level configuration.
var registry = map[string]Builder{}

// Register adds (or replaces) a declarative layer kind, so projects
// can use their own nodes in spec files.
func Register(kind string, build Builder) {
	registry[kind] = build
}

// Kinds returns the registered layer kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func registered(kind string) bool {
	_, ok := registry[kind]
	return ok
}

func fromRegistry(kind string, args map[string]any) (node.Node, error) {
	build, ok := registry[kind]
	if !ok {
		return nil, errors.Errorf("unknown layer kind %q (known: %v)", kind, Kinds())
	}
	n, err := build(args)
	if err != nil {
		return nil, errors.Wrapf(err, "layer %q", kind)
	}
	return n, nil
}

// kvArgs converts a declarative argument map into resolver keyword
// overrides, catching panics from the shorthand constructors so spec
// loading reports errors instead of crashing.
func kvArgs(args map[string]any) []any {
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	kvs := make([]any, 0, len(args))
	for _, key := range keys {
		kvs = append(kvs, params.KV{Key: key, Value: args[key]})
	}
	return kvs
}

func buildShorthand(construct func() node.Node) (n node.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = rerr
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	return construct(), nil
}

func intArg(args map[string]any, key string, fallback int) (int, error) {
	v, ok := args[key]
	if !ok {
		return fallback, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, errors.Errorf("argument %q must be an integer, got %v", key, v)
}

func init() {
	Register("conv", func(args map[string]any) (node.Node, error) {
		return buildShorthand(func() node.Node { return node.NewConv(kvArgs(args)...) })
	})

	Register("linear", func(args map[string]any) (node.Node, error) {
		o, err := intArg(args, "o", 0)
		if err != nil {
			return nil, err
		}
		if o <= 0 {
			return nil, errors.New("linear layer needs a positive output size o")
		}
		rest := make(map[string]any, len(args))
		for key, value := range args {
			if key != "o" {
				rest[key] = value
			}
		}
		return buildShorthand(func() node.Node { return node.NewLinear(o, kvArgs(rest)...) })
	})

	Register("maxpool", func(args map[string]any) (node.Node, error) {
		k, err := intArg(args, "k", 2)
		if err != nil {
			return nil, err
		}
		s, err := intArg(args, "s", k)
		if err != nil {
			return nil, err
		}
		return node.NewCustom("MaxPool", func(_ tensor.Shape, dev node.Device) (node.Module, error) {
			return nn.NewMaxPool2D(k, s, dev), nil
		}), nil
	})

	Register("relu", func(map[string]any) (node.Node, error) {
		return node.NewWrap(nn.NewReLU[tensor.Backend]()), nil
	})

	Register("sigmoid", func(map[string]any) (node.Node, error) {
		return node.NewWrap(nn.NewSigmoid[tensor.Backend]()), nil
	})

	Register("tanh", func(map[string]any) (node.Node, error) {
		return node.NewWrap(nn.NewTanh[tensor.Backend]()), nil
	})
}
