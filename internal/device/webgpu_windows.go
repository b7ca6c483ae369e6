//go:build windows

package device

import "github.com/born-ml/born/backend/webgpu"

// Born's WebGPU backend currently builds on windows only; mirror that
// gating here so the registry matches what the framework can provide.
func init() {
	factories["webgpu"] = func() (Device, error) {
		return webgpu.New()
	}
}
