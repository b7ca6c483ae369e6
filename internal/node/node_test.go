package node

import (
	"testing"

	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/magnet/internal/params"
)

func TestOutputShape_BuildsOnceAndStays(t *testing.T) {
	conv := NewConv(4, params.KV{Key: "p", Value: "same"})
	in := tensor.Shape{1, 3, 8, 8}

	first, err := conv.OutputShape(in)
	require.NoError(t, err)
	assert.True(t, conv.Built())
	built := conv.module

	for i := 0; i < 3; i++ {
		again, err := conv.OutputShape(in)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
	assert.Same(t, built, conv.module)
	assert.True(t, first.Equal(tensor.Shape{1, 4, 8, 8}))
}

func TestOutputShape_PropagatesBuildError(t *testing.T) {
	conv := NewConv(4, params.KV{Key: "p", Value: 0.3}) // stride 10/3

	_, err := conv.OutputShape(tensor.Shape{1, 3, 8, 8})
	var padErr *InvalidPaddingError
	require.ErrorAs(t, err, &padErr)
}

func TestArgs_Format(t *testing.T) {
	conv := NewConv(4, 5)
	assert.Equal(t, "c=4, k=5, p=half, s=1, d=1, g=1, b=true", conv.Args())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Conv", NewConv().Name())
	assert.Equal(t, "enc1", NewConv(params.Named("enc1")).Name())

	n := NewLinear(10)
	n.SetName("head")
	assert.Equal(t, "head", n.Name())
}

func TestLambda_NameAndForward(t *testing.T) {
	dev := testDevice()
	l := NewLambda(double)
	assert.Equal(t, "double", l.Name())
	assert.True(t, l.Built())

	input, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, dev)
	require.NoError(t, err)
	output := l.Forward(input)
	assert.Equal(t, []float32{2, 4, 6}, output.Data())
}

// double is a named helper so Lambda naming has a symbol to find.
func double(x *Tensor) *Tensor {
	return x.MulScalar(2)
}

func TestLambda_AnonymousFallsBack(t *testing.T) {
	l := NewLambda(func(x *Tensor) *Tensor { return x })
	assert.Equal(t, "Lambda", l.Name())
}

func TestWrap_NameAndDelegation(t *testing.T) {
	dev := testDevice()
	w := NewWrap(nn.NewReLU[tensor.Backend]())
	assert.Equal(t, "ReLU", w.Name())
	assert.True(t, w.Built())

	input, err := tensor.FromSlice([]float32{-1, 2}, tensor.Shape{1, 2}, dev)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 2}, w.Forward(input).Data())
}

func TestCustom_BuildsLazily(t *testing.T) {
	dev := testDevice()
	pool := NewCustom("MaxPool", func(in tensor.Shape, d Device) (Module, error) {
		return nn.NewMaxPool2D(2, 2, d), nil
	})
	assert.False(t, pool.Built())

	input := tensor.Randn[float32](tensor.Shape{1, 3, 8, 8}, dev)
	output := pool.Forward(input)
	assert.True(t, pool.Built())
	assert.True(t, output.Shape().Equal(tensor.Shape{1, 3, 4, 4}))
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "double", FuncName(double))
	assert.Equal(t, "", FuncName(42))
	assert.Equal(t, "", FuncName(func(x int) int { return x }))
}
