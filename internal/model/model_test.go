package model

import (
	"testing"

	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/magnet/internal/node"
)

func TestToNode_PassThrough(t *testing.T) {
	conv := node.NewConv(4)
	n, err := ToNode(conv)
	require.NoError(t, err)
	assert.Same(t, node.Node(conv), n)
}

func TestToNode_Func(t *testing.T) {
	n, err := ToNode(func(x *node.Tensor) *node.Tensor { return x })
	require.NoError(t, err)
	assert.IsType(t, &node.Lambda{}, n)
}

func TestToNode_SingleKeyMapNamesBlock(t *testing.T) {
	n, err := ToNode(map[string]any{
		"block1": []any{"relu", "relu"},
	})
	require.NoError(t, err)
	assert.Equal(t, "block1", n.Name())
	assert.IsType(t, &Pipeline{}, n)
}

func TestToNode_MultiKeyMapFails(t *testing.T) {
	_, err := ToNode(map[string]any{"a": "relu", "b": "relu"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one key")
}

func TestToNode_BornModuleWraps(t *testing.T) {
	n, err := ToNode(nn.NewReLU[tensor.Backend]())
	require.NoError(t, err)
	assert.Equal(t, "ReLU", n.Name())
}

func TestToNode_UnknownKind(t *testing.T) {
	_, err := ToNode("transformer9000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown layer kind")
}

func TestToNode_Garbage(t *testing.T) {
	_, err := ToNode(42)
	require.Error(t, err)
}

func TestPipeline_ForwardAndShapes(t *testing.T) {
	var dev node.Device = cpu.New()

	p := NewPipeline(
		node.NewConv(6, 5, 0), // c=6, k=5, p=0
		"relu",
		map[string]any{"maxpool": map[string]any{"k": 2}},
		node.NewLinear(10),
	)
	assert.False(t, p.Built())

	input := tensor.Randn[float32](tensor.Shape{2, 1, 28, 28}, dev)
	output := p.Forward(input)

	// conv -> [2,6,24,24], pool -> [2,6,12,12], linear -> [2,10]
	assert.True(t, output.Shape().Equal(tensor.Shape{2, 10}))
	assert.True(t, p.Built())
}

func TestPipeline_OutputShapeStable(t *testing.T) {
	p := NewPipeline(node.NewConv(2), node.NewLinear(5))

	first, err := p.OutputShape(tensor.Shape{1, 1, 8, 8})
	require.NoError(t, err)
	again, err := p.OutputShape(tensor.Shape{1, 1, 8, 8})
	require.NoError(t, err)

	assert.True(t, first.Equal(tensor.Shape{1, 5}))
	assert.True(t, first.Equal(again))
}

func TestPipeline_StateDictPrefixes(t *testing.T) {
	var dev node.Device = cpu.New()
	p := NewPipeline(node.NewLinear(4), "relu", node.NewLinear(2))
	require.NoError(t, p.Build(tensor.Shape{1, 8}, dev))

	stateDict := p.StateDict()
	assert.Contains(t, stateDict, "0.weight")
	assert.Contains(t, stateDict, "0.bias")
	assert.Contains(t, stateDict, "2.weight")

	require.NoError(t, p.LoadStateDict(stateDict))
}

func TestPipeline_Repeat(t *testing.T) {
	p := NewPipeline(node.NewConv(4), "relu")
	clones := p.Repeat(2)
	require.Len(t, clones, 2)
	assert.Same(t, node.Node(p), clones[0])

	clone, ok := clones[1].(*Pipeline)
	require.True(t, ok)
	require.Len(t, clone.Nodes(), 2)
	assert.False(t, clone.Nodes()[0].Built())
}

func TestPipeline_BuildErrorSurfaces(t *testing.T) {
	var dev node.Device = cpu.New()
	p := NewPipeline(node.NewConv(4, 3, 0.3)) // fractional padding factor

	err := p.Build(tensor.Shape{1, 1, 8, 8}, dev)
	require.Error(t, err)

	var padErr *node.InvalidPaddingError
	assert.ErrorAs(t, err, &padErr)
}

func TestParseYAML_LeNet(t *testing.T) {
	doc := []byte(`
name: lenet
layers:
  - conv: {c: 6, k: 5, p: 0}
  - relu
  - maxpool: {k: 2}
  - features:
      - conv: {c: 16, k: 5, p: 0}
      - relu
      - maxpool: {k: 2}
  - linear: {o: 10}
`)
	n, err := ParseYAML(doc)
	require.NoError(t, err)
	assert.Equal(t, "lenet", n.Name())

	out, err := n.OutputShape(tensor.Shape{1, 1, 28, 28})
	require.NoError(t, err)
	assert.True(t, out.Equal(tensor.Shape{1, 10}))
}

func TestParseYAML_Errors(t *testing.T) {
	_, err := ParseYAML([]byte("layers: []"))
	require.Error(t, err)

	_, err = ParseYAML([]byte("layers:\n  - warpdrive"))
	require.Error(t, err)

	_, err = ParseYAML([]byte(":::"))
	require.Error(t, err)
}

func TestLoadYAML_MissingFile(t *testing.T) {
	_, err := LoadYAML("does/not/exist.yaml")
	require.Error(t, err)
}
