package loss_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criterion-ml/criterion/internal/backend/cpu"
	"github.com/criterion-ml/criterion/internal/loss"
	"github.com/criterion-ml/criterion/internal/tensor"
)

// refCosine mirrors the row-wise stabilized similarity in float64.
func refCosine(yh, y []float32) float64 {
	const eps = 1e-8
	var dot, nyh, ny float64
	for i := range yh {
		a := float64(yh[i]) + eps
		b := float64(y[i]) + eps
		dot += a * b
		nyh += a * a
		ny += b * b
	}
	return dot / (math.Sqrt(nyh) * math.Sqrt(ny))
}

// refCosineGrad mirrors the negated analytic gradient for one row in
// float64, without normalization.
func refCosineGrad(yh32, y32 []float32) []float64 {
	const eps = 1e-8
	n := len(yh32)
	yh := make([]float64, n)
	y := make([]float64, n)
	for i := range yh32 {
		yh[i] = float64(yh32[i]) + eps
		y[i] = float64(y32[i]) + eps
	}

	var dot, nyh2, ny2 float64
	for i := range yh {
		dot += yh[i] * y[i]
		nyh2 += yh[i] * yh[i]
		ny2 += y[i] * y[i]
	}
	nyh := math.Sqrt(nyh2)
	ny := math.Sqrt(ny2)
	cos := dot / (nyh * ny)

	grad := make([]float64, n)
	for i := range grad {
		grad[i] = -(y[i]/(nyh*ny) - cos*yh[i]/nyh2)
	}
	return grad
}

func TestCosineSimilarityIdenticalRows(t *testing.T) {
	cd := loss.NewCosineDistance(cpu.New())
	x := floats(t, []float32{1, 2, 3, -4, 5, 0.5}, tensor.Shape{2, 3})

	sim, err := cd.GetSimilarity(x, x.Clone())
	require.NoError(t, err)

	assert.True(t, sim.Shape().Equal(tensor.Shape{2, 1}))
	for _, v := range sim.Data() {
		assert.InDelta(t, 1, v, 1e-5)
	}

	l, err := cd.GetLoss(x, x.Clone())
	require.NoError(t, err)
	assert.InDelta(t, 0, l, 1e-5)

	grad, err := cd.GetGrad(x, x.Clone())
	require.NoError(t, err)
	for _, v := range grad.Data() {
		assert.InDelta(t, 0, v, 1e-5)
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	cd := loss.NewCosineDistance(cpu.New(), loss.WithNormalize(false))
	guesses := floats(t, []float32{1, 0}, tensor.Shape{1, 2})
	truths := floats(t, []float32{0, 1}, tensor.Shape{1, 2})

	sim, err := cd.GetSimilarity(guesses, truths)
	require.NoError(t, err)
	assert.InDelta(t, 0, sim.Data()[0], 1e-5)

	l, err := cd.GetLoss(guesses, truths)
	require.NoError(t, err)
	assert.InDelta(t, 1, l, 1e-5) // |0 − 1|
}

func TestCosineSimilarityMatchesReference(t *testing.T) {
	cd := loss.NewCosineDistance(cpu.New(), loss.WithNormalize(false))
	yh := []float32{0.3, -1.2, 2.5}
	y := []float32{0.9, -0.4, 1.1}

	sim, err := cd.GetSimilarity(floats(t, yh, tensor.Shape{1, 3}), floats(t, y, tensor.Shape{1, 3}))
	require.NoError(t, err)
	assert.InDelta(t, refCosine(yh, y), float64(sim.Data()[0]), 1e-5)
}

func TestCosineGradientMatchesReference(t *testing.T) {
	cd := loss.NewCosineDistance(cpu.New(), loss.WithNormalize(false))
	yh := []float32{0.3, -1.2, 2.5, 0.9, -0.4, 1.1}
	y := []float32{1.0, 0.2, -0.6, 0.1, 0.8, 0.7}

	grad, err := cd.GetGrad(floats(t, yh, tensor.Shape{2, 3}), floats(t, y, tensor.Shape{2, 3}))
	require.NoError(t, err)

	data := grad.Data()
	for row := 0; row < 2; row++ {
		want := refCosineGrad(yh[row*3:(row+1)*3], y[row*3:(row+1)*3])
		for col := 0; col < 3; col++ {
			assert.InDelta(t, want[col], float64(data[row*3+col]), 1e-5, "row %d col %d", row, col)
		}
	}
}

func TestCosineNormalizeDividesByBatch(t *testing.T) {
	yh := floats(t, []float32{1, 0, 0, 1}, tensor.Shape{2, 2})
	y := floats(t, []float32{0, 1, 1, 0}, tensor.Shape{2, 2})

	raw := loss.NewCosineDistance(cpu.New(), loss.WithNormalize(false))
	norm := loss.NewCosineDistance(cpu.New())

	rawLoss, err := raw.GetLoss(yh, y)
	require.NoError(t, err)
	normLoss, err := norm.GetLoss(yh, y)
	require.NoError(t, err)
	assert.InDelta(t, rawLoss/2, normLoss, 1e-5)

	rawGrad, err := raw.GetGrad(yh, y)
	require.NoError(t, err)
	normGrad, err := norm.GetGrad(yh, y)
	require.NoError(t, err)
	for i := range rawGrad.Data() {
		assert.InDelta(t, rawGrad.Data()[i]/2, normGrad.Data()[i], 1e-6)
	}
}

func TestCosineZeroTruthWithoutIgnore(t *testing.T) {
	cd := loss.NewCosineDistance(cpu.New())
	guesses := floats(t, []float32{1, 2}, tensor.Shape{1, 2})
	truths := floats(t, []float32{0, 0}, tensor.Shape{1, 2})

	// The stabilizing epsilon keeps zero truth vectors computable.
	grad, l, err := cd.Compute(guesses, truths)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(float64(l)))
	assert.False(t, math.IsInf(float64(l), 0))
	for _, v := range grad.Data() {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestCosineIgnoreZeros(t *testing.T) {
	backend := cpu.New()
	cd := loss.NewCosineDistance(backend, loss.WithNormalize(false), loss.WithIgnoreZeros(true))

	guesses := floats(t, []float32{1, 0, 0.5, 0.5}, tensor.Shape{2, 2})
	truths := floats(t, []float32{0, 1, 0, 0}, tensor.Shape{2, 2})

	grad, l, err := cd.Compute(guesses, truths)
	require.NoError(t, err)

	// The zero-truth row contributes nothing.
	assert.Zero(t, grad.Data()[2])
	assert.Zero(t, grad.Data()[3])

	single := loss.NewCosineDistance(backend, loss.WithNormalize(false))
	wantLoss, err := single.GetLoss(
		floats(t, []float32{1, 0}, tensor.Shape{1, 2}),
		floats(t, []float32{0, 1}, tensor.Shape{1, 2}))
	require.NoError(t, err)
	assert.InDelta(t, wantLoss, l, 1e-5)
}

func TestCosineShapeMismatch(t *testing.T) {
	cd := loss.NewCosineDistance(cpu.New())
	guesses := floats(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	truths := floats(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	_, err := cd.GetSimilarity(guesses, truths)
	assert.True(t, errors.Is(err, loss.ErrShape))

	_, err = cd.GetGrad(guesses, truths)
	assert.True(t, errors.Is(err, loss.ErrShape))

	_, err = cd.GetLoss(guesses, truths)
	assert.True(t, errors.Is(err, loss.ErrShape))
}
