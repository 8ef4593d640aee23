package loss_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criterion-ml/criterion/internal/backend/cpu"
	"github.com/criterion-ml/criterion/internal/loss"
	"github.com/criterion-ml/criterion/internal/tensor"
)

func TestRegistryNames(t *testing.T) {
	assert.Equal(t, []string{
		"CategoricalCrossentropy.v1",
		"SequenceCategoricalCrossentropy.v1",
		"L2Distance.v1",
		"CosineDistance.v1",
	}, loss.Names())
}

func TestRegistryBuildsEveryKernel(t *testing.T) {
	backend := cpu.New()

	for _, name := range loss.Names() {
		obj, err := loss.Build(name, backend)
		require.NoError(t, err, name)
		require.NotNil(t, obj, name)
	}
}

func TestRegistryConcreteTypes(t *testing.T) {
	backend := cpu.New()

	obj, err := loss.Build(loss.CategoricalCrossentropyV1, backend, loss.WithNames([]string{"a", "b"}))
	require.NoError(t, err)
	_, ok := obj.(*loss.CategoricalCrossentropy[Backend])
	assert.True(t, ok)

	obj, err = loss.Build(loss.SequenceCategoricalCrossentropyV1, backend)
	require.NoError(t, err)
	_, ok = obj.(*loss.SequenceCategoricalCrossentropy[Backend])
	assert.True(t, ok)

	obj, err = loss.Build(loss.L2DistanceV1, backend, loss.WithNormalize(false))
	require.NoError(t, err)
	l2, ok := obj.(*loss.L2Distance[Backend])
	require.True(t, ok)

	// The built kernel honors its options.
	guesses := floats(t, []float32{1, 3}, tensor.Shape{1, 2})
	truths := floats(t, []float32{0, 1}, tensor.Shape{1, 2})
	grad, err := l2.GetGrad(guesses, truths)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, grad.Data())

	obj, err = loss.Build(loss.CosineDistanceV1, backend, loss.WithIgnoreZeros(true))
	require.NoError(t, err)
	_, ok = obj.(*loss.CosineDistance[Backend])
	assert.True(t, ok)
}

func TestRegistryUnknownName(t *testing.T) {
	_, err := loss.Build("NoSuchLoss.v1", cpu.New())
	assert.True(t, errors.Is(err, loss.ErrConfig))
}
