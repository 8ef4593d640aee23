package loss

import (
	"github.com/pkg/errors"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// L2Distance computes the squared L2 distance between guesses and dense
// truths of the same shape. The gradient is the residual
// (guesses − truths), divided by the batch size when normalizing; the
// loss is the sum of squared gradient elements.
type L2Distance[B tensor.Backend] struct {
	backend   B
	normalize bool
}

// NewL2Distance creates a squared L2 distance kernel.
func NewL2Distance[B tensor.Backend](backend B, opts ...Option) *L2Distance[B] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &L2Distance[B]{
		backend:   backend,
		normalize: cfg.normalize,
	}
}

// GetGrad returns the gradient of the loss with respect to the guesses.
func (l *L2Distance[B]) GetGrad(guesses, truths *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	if !guesses.Shape().Equal(truths.Shape()) {
		return nil, errors.Wrapf(ErrShape,
			"cannot calculate L2 distance: mismatched shapes %v vs %v", guesses.Shape(), truths.Shape())
	}

	difference := guesses.Sub(truths)
	if l.normalize {
		difference = difference.DivScalar(batchSize(guesses))
	}
	return difference, nil
}

// GetLoss returns the sum of squared gradient elements.
func (l *L2Distance[B]) GetLoss(guesses, truths *tensor.Tensor[float32, B]) (float32, error) {
	grad, err := l.GetGrad(guesses, truths)
	if err != nil {
		return 0, err
	}
	return sumSquares(grad), nil
}

// Compute returns the gradient and the loss from a single gradient
// evaluation.
func (l *L2Distance[B]) Compute(guesses, truths *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], float32, error) {
	grad, err := l.GetGrad(guesses, truths)
	if err != nil {
		return nil, 0, err
	}
	return grad, sumSquares(grad), nil
}
