package loss

import (
	"github.com/pkg/errors"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// cosineEps stabilizes the norms so true zero vectors never divide by
// zero. Similarity and gradient reuse the same shifted vectors to stay
// consistent with each other.
const cosineEps float32 = 1e-8

// CosineDistance computes the row-wise cosine distance between guesses
// and dense truths of shape (batch, dims). The loss for a row is
// |cosine − 1|, its distance from perfect alignment; the gradient is the
// negated analytic derivative of the cosine similarity with respect to
// the guesses.
//
// With WithIgnoreZeros, truth rows that are exact zero vectors are
// excluded from both the loss and the gradient. Zero-row detection uses
// the raw truths, not the epsilon-shifted ones.
type CosineDistance[B tensor.Backend] struct {
	backend     B
	normalize   bool
	ignoreZeros bool
}

// NewCosineDistance creates a cosine distance kernel.
func NewCosineDistance[B tensor.Backend](backend B, opts ...Option) *CosineDistance[B] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &CosineDistance[B]{
		backend:     backend,
		normalize:   cfg.normalize,
		ignoreZeros: cfg.ignoreZeros,
	}
}

// GetSimilarity returns the per-row cosine similarity
// (yh·y) / (‖yh‖·‖y‖) as a column tensor of shape (batch, 1).
func (c *CosineDistance[B]) GetSimilarity(guesses, truths *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	if !guesses.Shape().Equal(truths.Shape()) {
		return nil, errors.Wrapf(ErrShape,
			"cannot calculate cosine similarity: mismatched shapes %v vs %v", guesses.Shape(), truths.Shape())
	}

	yh := guesses.AddScalar(cosineEps)
	y := truths.AddScalar(cosineEps)
	mulNorms := yh.Norm(1, true).Mul(y.Norm(1, true))
	return yh.Mul(y).SumDim(1, true).Div(mulNorms), nil
}

// GetGrad returns the gradient of the loss with respect to the guesses:
//
//	−(y / (‖yh‖·‖y‖) − cosine · yh / ‖yh‖²)
//
// computed over the same epsilon-shifted vectors as GetSimilarity.
func (c *CosineDistance[B]) GetGrad(guesses, truths *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	if !guesses.Shape().Equal(truths.Shape()) {
		return nil, errors.Wrapf(ErrShape,
			"cannot calculate cosine similarity: mismatched shapes %v vs %v", guesses.Shape(), truths.Shape())
	}

	// Find the zero vectors before the epsilon shift.
	var zeroRows []int
	if c.ignoreZeros {
		zeroRows = zeroRowIndices(truths)
	}

	yh := guesses.AddScalar(cosineEps)
	y := truths.AddScalar(cosineEps)
	normYh := yh.Norm(1, true)
	mulNorms := normYh.Mul(y.Norm(1, true))
	cosine := yh.Mul(y).SumDim(1, true).Div(mulNorms)

	dYh := y.Div(mulNorms).Sub(cosine.Mul(yh.Div(normYh.Mul(normYh))))

	if c.ignoreZeros {
		zeroOutRows(dYh, zeroRows)
	}
	if c.normalize {
		dYh = dYh.DivScalar(batchSize(guesses))
	}

	// The loss is distance from perfect similarity, so the similarity
	// gradient flips sign.
	return dYh.MulScalar(-1), nil
}

// GetLoss returns the total distance from perfect alignment,
// Σ |cosine − 1| over rows.
func (c *CosineDistance[B]) GetLoss(guesses, truths *tensor.Tensor[float32, B]) (float32, error) {
	cosine, err := c.GetSimilarity(guesses, truths)
	if err != nil {
		return 0, err
	}

	losses := cosine.AddScalar(-1).Abs()
	if c.ignoreZeros {
		data := losses.Data()
		for _, row := range zeroRowIndices(truths) {
			data[row] = 0
		}
	}
	if c.normalize {
		losses = losses.DivScalar(batchSize(guesses))
	}
	return losses.Sum().Item(), nil
}

// Compute returns the gradient and the loss.
func (c *CosineDistance[B]) Compute(guesses, truths *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], float32, error) {
	grad, err := c.GetGrad(guesses, truths)
	if err != nil {
		return nil, 0, err
	}
	l, err := c.GetLoss(guesses, truths)
	if err != nil {
		return nil, 0, err
	}
	return grad, l, nil
}

// zeroRowIndices returns the rows whose absolute sum is exactly zero.
func zeroRowIndices[B tensor.Backend](t *tensor.Tensor[float32, B]) []int {
	sums := t.Abs().SumDim(1, false).Data()
	var rows []int
	for i, v := range sums {
		if v == 0 {
			rows = append(rows, i)
		}
	}
	return rows
}

// zeroOutRows clears whole rows of a (batch, dims) tensor in place.
func zeroOutRows[B tensor.Backend](t *tensor.Tensor[float32, B], rows []int) {
	shape := t.Shape()
	rowLen := shape.NumElements() / shape[0]
	data := t.Data()
	for _, row := range rows {
		rowData := data[row*rowLen : (row+1)*rowLen]
		for i := range rowData {
			rowData[i] = 0
		}
	}
}
