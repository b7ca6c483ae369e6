// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device holds the process-wide default compute device.
//
// In Born, a backend is a device: tensors and modules are bound to the
// backend that created them. This package keeps a single default
// backend used wherever no explicit one is available, plus a name
// registry so binaries can select a device from a flag.
//
//	dev, err := device.ByName("cpu")
//	if err != nil { ... }
//	device.Set(dev)
//
// Device selection happens once at startup, before any model runs;
// the package state is not synchronized.
package device

import (
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/magnet/internal/device"
)

// Device is a Born compute backend.
type Device = tensor.Backend

// Set replaces the process-wide default device.
func Set(d Device) {
	device.Set(d)
}

// Default returns the process-wide default device, initializing it to
// the CPU backend on first use.
func Default() Device {
	return device.Default()
}

// ByName constructs a device by registry name ("cpu"; "webgpu" where
// the backend is available).
func ByName(name string) (Device, error) {
	return device.ByName(name)
}

// Names returns the registered device names, sorted.
func Names() []string {
	return device.Names()
}
