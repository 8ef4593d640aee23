package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criterion-ml/criterion/internal/backend/cpu"
	"github.com/criterion-ml/criterion/internal/tensor"
)

// TestBackendInterface verifies that cpu.CPUBackend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.CPUBackend)(nil)
}

func TestShapeNumElements(t *testing.T) {
	assert.Equal(t, 6, tensor.Shape{2, 3}.NumElements())
	assert.Equal(t, 4, tensor.Shape{4}.NumElements())
	assert.Equal(t, 1, tensor.Shape{}.NumElements(), "scalar shape has one element")
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, tensor.Shape{2, 3}.Validate())
	assert.Error(t, tensor.Shape{2, 0}.Validate())
	assert.Error(t, tensor.Shape{-1, 3}.Validate())
}

func TestShapeComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, tensor.Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, tensor.Shape{5}.ComputeStrides())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      tensor.Shape
		want      tensor.Shape
		broadcast bool
		wantErr   bool
	}{
		{"same shape", tensor.Shape{3, 5}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, false, false},
		{"column vector", tensor.Shape{3, 1}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, true, false},
		{"row vector", tensor.Shape{1, 5}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, true, false},
		{"missing leading dim", tensor.Shape{5}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, true, false},
		{"incompatible", tensor.Shape{3, 4}, tensor.Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := tensor.BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}
}

func TestNewRaw(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	assert.True(t, raw.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float32, raw.DType())
	assert.Equal(t, tensor.CPU, raw.Device())
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())

	// Freshly allocated memory is zeroed.
	for _, v := range raw.AsFloat32() {
		assert.Zero(t, v)
	}

	_, err = tensor.NewRaw(tensor.Shape{2, 0}, tensor.Float32, tensor.CPU)
	assert.Error(t, err)
}

func TestRawTensorTypedViewPanics(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	assert.Panics(t, func() { raw.AsFloat64() })
	assert.Panics(t, func() { raw.AsInt32() })
}

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, x.Data())
	assert.Equal(t, tensor.Float32, x.DType())

	_, err = tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, backend)
	assert.Error(t, err, "element count must match shape")
}

func TestAtSetItem(t *testing.T) {
	backend := cpu.New()

	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
	x.Set(42, 1, 2)
	assert.Equal(t, float32(42), x.At(1, 2))
	assert.Equal(t, float32(0), x.At(0, 0))

	assert.Panics(t, func() { x.At(2, 0) }, "row out of bounds")
	assert.Panics(t, func() { x.At(1) }, "wrong index count")
	assert.Panics(t, func() { x.Item() }, "Item on multi-element tensor")

	scalar, err := tensor.FromSlice([]float32{7}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	assert.Equal(t, float32(7), scalar.Item())
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	ones := tensor.Ones[float32](tensor.Shape{2, 2}, backend)
	assert.Equal(t, []float32{1, 1, 1, 1}, ones.Data())

	full := tensor.Full[float64](tensor.Shape{3}, 2.5, backend)
	assert.Equal(t, []float64{2.5, 2.5, 2.5}, full.Data())
}

func TestClone(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	y := x.Clone()
	y.Data()[0] = 99
	assert.Equal(t, float32(1), x.Data()[0], "clone must not share memory")
}
