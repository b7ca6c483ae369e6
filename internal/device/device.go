// Package device holds the process-wide default compute device.
//
// In Born, a backend is a device: tensors and modules are bound to the
// backend that created them. This package keeps a single default
// backend used wherever no explicit one is available (shape probing,
// spec loading, checkpoint restore), plus a small name registry so
// binaries can select a device from a flag.
//
// All state here is plain unsynchronized package variables: device
// selection happens once at startup, before any model runs, on a
// single goroutine.
package device

import (
	"fmt"
	"sort"

	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/tensor"
)

// Device is a Born compute backend.
type Device = tensor.Backend

var defaultDevice Device

// Set replaces the process-wide default device.
func Set(d Device) {
	defaultDevice = d
}

// Default returns the process-wide default device, initializing it to
// the CPU backend on first use.
func Default() Device {
	if defaultDevice == nil {
		defaultDevice = cpu.New()
	}
	return defaultDevice
}

// factories maps device names to constructors. "cpu" is always
// present; GPU backends register themselves from build-tagged files.
var factories = map[string]func() (Device, error){
	"cpu": func() (Device, error) { return cpu.New(), nil },
}

// ByName constructs a device by registry name.
func ByName(name string) (Device, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown device %q (available: %v)", name, Names())
	}
	return factory()
}

// Names returns the registered device names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
