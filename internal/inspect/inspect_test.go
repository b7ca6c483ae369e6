package inspect

import (
	"testing"

	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/magnet/internal/node"
)

func TestNumParams_Linear(t *testing.T) {
	var dev node.Device = cpu.New()
	fc := nn.NewLinear(4, 10, dev)

	trainable, nonTrainable := NumParams(fc)
	assert.Equal(t, 4*10+10, trainable)
	assert.Equal(t, 0, nonTrainable)
}

func TestNumParams_UnbuiltNodeIsEmpty(t *testing.T) {
	trainable, nonTrainable := NumParams(node.NewLinear(10))
	assert.Equal(t, 0, trainable)
	assert.Equal(t, 0, nonTrainable)
}

func TestOutputShape_Module(t *testing.T) {
	var dev node.Device = cpu.New()
	fc := nn.NewLinear(8, 3, dev)

	out, err := OutputShape(fc, tensor.Shape{5, 8}, dev)
	require.NoError(t, err)
	assert.True(t, out.Equal(tensor.Shape{5, 3}))
}

func TestOutputShape_MismatchReportsError(t *testing.T) {
	var dev node.Device = cpu.New()
	fc := nn.NewLinear(8, 3, dev)

	_, err := OutputShape(fc, tensor.Shape{5, 9}, dev)
	require.Error(t, err)
}

func TestOutputShape_LazyNodeOnDefaultDevice(t *testing.T) {
	conv := node.NewConv(2)

	out, err := OutputShape(conv, tensor.Shape{1, 1, 8, 8}, nil)
	require.NoError(t, err)
	assert.True(t, out.Equal(tensor.Shape{1, 2, 4, 4}))
	assert.True(t, conv.Built())
}
