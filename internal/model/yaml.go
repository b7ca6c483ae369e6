package model

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/magnet/internal/node"
)

// specFile is the on-disk architecture format:
//
//	name: lenet
//	layers:
//	  - conv: {c: 6, k: 5, p: 0}
//	  - relu
//	  - maxpool: {k: 2}
//	  - features:
//	      - conv: {c: 16, k: 5, p: 0}
//	      - relu
//	  - linear: {o: 10}
type specFile struct {
	Name   string `yaml:"name"`
	Layers []any  `yaml:"layers"`
}

// ParseYAML decodes a YAML architecture document into an unbuilt
// node tree.
func ParseYAML(data []byte) (node.Node, error) {
	var spec specFile
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(err, "decode model spec")
	}
	if len(spec.Layers) == 0 {
		return nil, errors.New("model spec has no layers")
	}

	root, err := ToNode(spec.Layers)
	if err != nil {
		return nil, errors.Wrap(err, "normalize model spec")
	}
	if spec.Name != "" {
		root.SetName(spec.Name)
	}
	return root, nil
}

// LoadYAML reads and parses a YAML architecture file.
func LoadYAML(path string) (node.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read model spec %s", path)
	}
	n, err := ParseYAML(data)
	if err != nil {
		return nil, errors.Wrapf(err, "model spec %s", path)
	}
	return n, nil
}
