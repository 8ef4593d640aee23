package loss

import (
	"github.com/pkg/errors"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// SequenceCategoricalCrossentropy applies categorical cross-entropy to an
// ordered sequence of (guesses, truths) pairs, one step at a time. Each
// step is processed independently by the inner kernel; there is no shared
// normalization or masking across steps.
type SequenceCategoricalCrossentropy[B tensor.Backend] struct {
	inner *CategoricalCrossentropy[B]
}

// NewSequenceCategoricalCrossentropy creates a sequence kernel wrapping
// an inner categorical cross-entropy with the same options.
func NewSequenceCategoricalCrossentropy[B tensor.Backend](backend B, opts ...Option) *SequenceCategoricalCrossentropy[B] {
	return &SequenceCategoricalCrossentropy[B]{
		inner: NewCategoricalCrossentropy(backend, opts...),
	}
}

// GetGrad returns one gradient tensor per step. The guess and truth
// sequences must have equal length.
func (s *SequenceCategoricalCrossentropy[B]) GetGrad(
	guesses []*tensor.Tensor[float32, B],
	truths []Truths,
) ([]*tensor.Tensor[float32, B], error) {
	if len(guesses) != len(truths) {
		return nil, errors.Wrapf(ErrShape,
			"cannot calculate sequence categorical cross-entropy: guesses and truths must be same length (%d vs %d)",
			len(guesses), len(truths))
	}
	grads := make([]*tensor.Tensor[float32, B], len(guesses))
	for i, yh := range guesses {
		grad, err := s.inner.GetGrad(yh, truths[i], nil)
		if err != nil {
			return nil, errors.WithMessagef(err, "step %d", i)
		}
		grads[i] = grad
	}
	return grads, nil
}

// GetLoss returns one scalar loss per step.
func (s *SequenceCategoricalCrossentropy[B]) GetLoss(
	guesses []*tensor.Tensor[float32, B],
	truths []Truths,
) ([]float32, error) {
	if len(guesses) != len(truths) {
		return nil, errors.Wrapf(ErrShape,
			"cannot calculate sequence categorical cross-entropy: guesses and truths must be same length (%d vs %d)",
			len(guesses), len(truths))
	}
	losses := make([]float32, len(guesses))
	for i, yh := range guesses {
		l, err := s.inner.GetLoss(yh, truths[i], nil)
		if err != nil {
			return nil, errors.WithMessagef(err, "step %d", i)
		}
		losses[i] = l
	}
	return losses, nil
}

// Compute returns the per-step gradients and losses.
func (s *SequenceCategoricalCrossentropy[B]) Compute(
	guesses []*tensor.Tensor[float32, B],
	truths []Truths,
) ([]*tensor.Tensor[float32, B], []float32, error) {
	grads, err := s.GetGrad(guesses, truths)
	if err != nil {
		return nil, nil, err
	}
	losses := make([]float32, len(grads))
	for i, grad := range grads {
		losses[i] = sumSquares(grad)
	}
	return grads, losses, nil
}
