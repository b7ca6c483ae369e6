// Package inspect provides stateless introspection helpers for Born
// modules: parameter counting, output-shape probing and function
// naming.
package inspect

import (
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/magnet/internal/device"
	"github.com/born-ml/magnet/internal/node"
)

// NumParams counts the scalar parameters of a module, partitioned by
// trainability. Born modules expose trainable parameters through
// Parameters(); state-dict entries without a backing parameter are
// buffers, counted as non-trainable.
func NumParams(m node.Module) (trainable, nonTrainable int) {
	backing := make(map[*tensor.RawTensor]struct{})
	for _, p := range m.Parameters() {
		trainable += p.Tensor().NumElements()
		backing[p.Tensor().Raw()] = struct{}{}
	}
	for _, raw := range m.StateDict() {
		if _, ok := backing[raw]; !ok {
			nonTrainable += raw.NumElements()
		}
	}
	return trainable, nonTrainable
}

// OutputShape reports the output shape a module produces for a
// hypothetical input shape, by running one forward pass over a random
// tensor. The probe runs on dev (the process-wide default device when
// nil), a plain backend with no gradient tape, so nothing is recorded
// or mutated beyond a node's one-time build.
func OutputShape(m node.Module, in tensor.Shape, dev node.Device) (out tensor.Shape, err error) {
	if dev == nil {
		dev = device.Default()
	}
	defer func() {
		if r := recover(); r != nil {
			err = probeErr(r)
		}
	}()
	probe := tensor.Randn[float32](in, dev)
	return m.Forward(probe).Shape(), nil
}

// FuncName returns a best-effort display name for a function value;
// "" when the runtime cannot resolve a useful symbol.
func FuncName(fn any) string {
	return node.FuncName(fn)
}
