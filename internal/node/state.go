package node

import (
	"fmt"

	"github.com/born-ml/born/nn"

	"github.com/born-ml/magnet/internal/device"
)

// SaveState writes a built node's state dictionary to a .born file
// through the framework's serializer.
func SaveState(n Node, path string) error {
	if !n.Built() {
		return fmt.Errorf("%s: cannot save an unbuilt node", n.Name())
	}
	return nn.Save[Device](n, path, n.Name(), nil)
}

// LoadState restores a built node's parameters from a .born file,
// materializing tensors on dev. A nil dev means the process-wide
// default device. The in-memory counterpart is the node's own
// LoadStateDict.
func LoadState(n Node, path string, dev Device) error {
	if !n.Built() {
		return fmt.Errorf("%s: cannot load state into an unbuilt node", n.Name())
	}
	if dev == nil {
		dev = device.Default()
	}
	if _, err := nn.Load(path, dev, Module(n)); err != nil {
		return fmt.Errorf("%s: load state from %s: %w", n.Name(), path, err)
	}
	return nil
}
