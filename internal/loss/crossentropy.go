package loss

import (
	"github.com/pkg/errors"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// CategoricalCrossentropy computes the gradient and loss for multi-class
// classification over probability guesses of shape (batch, classes).
//
// The gradient is the residual (guesses − truths), optionally masked and
// divided by the batch size; the reported loss is the squared L2 norm of
// that gradient. Guesses are expected to be probabilities (for example
// post-softmax); values outside [0, 1] are rejected with ErrRange.
//
// Truths may be class indices, string labels (requires WithNames) or an
// already-dense target tensor.
type CategoricalCrossentropy[B tensor.Backend] struct {
	backend     B
	normalize   bool
	names       []string
	nameToIndex map[string]int
}

// NewCategoricalCrossentropy creates a categorical cross-entropy kernel.
//
// Example:
//
//	backend := cpu.New()
//	ce := loss.NewCategoricalCrossentropy(backend, loss.WithNames([]string{"dog", "cat"}))
//	grad, l, err := ce.Compute(guesses, loss.Labels{"dog", "cat"}, nil)
func NewCategoricalCrossentropy[B tensor.Backend](backend B, opts ...Option) *CategoricalCrossentropy[B] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &CategoricalCrossentropy[B]{
		backend:   backend,
		normalize: cfg.normalize,
		names:     cfg.names,
	}
	if cfg.names != nil {
		c.nameToIndex = make(map[string]int, len(cfg.names))
		for i, name := range cfg.names {
			c.nameToIndex[name] = i
		}
	}
	return c
}

// GetGrad returns the gradient of the loss with respect to the guesses:
// (guesses − truths), with masked positions zeroed and, when normalizing,
// divided by the batch size. missing may be nil.
func (c *CategoricalCrossentropy[B]) GetGrad(
	guesses *tensor.Tensor[float32, B],
	truths Truths,
	missing Missing,
) (*tensor.Tensor[float32, B], error) {
	target, err := convertTruths(truths, guesses, c.nameToIndex)
	if err != nil {
		return nil, err
	}
	if !guesses.Shape().Equal(target.Shape()) {
		return nil, errors.Wrapf(ErrShape,
			"cannot calculate categorical cross-entropy: mismatched shapes %v vs %v",
			guesses.Shape(), target.Shape())
	}
	if err := checkUnitInterval("guesses", guesses); err != nil {
		return nil, err
	}
	if err := checkUnitInterval("truths", target); err != nil {
		return nil, err
	}

	difference := guesses.Sub(target)
	if missing != nil {
		mask, err := buildMask(missing, guesses.Shape(), c.backend)
		if err != nil {
			return nil, err
		}
		// difference *= (1 - mask): masked positions drop out entirely
		// before any normalization.
		difference = difference.Mul(mask.MulScalar(-1).AddScalar(1))
	}
	if c.normalize {
		difference = difference.DivScalar(batchSize(guesses))
	}
	return difference, nil
}

// GetLoss returns the sum of squared gradient elements under the same
// configuration as GetGrad, keeping loss and gradient consistent.
func (c *CategoricalCrossentropy[B]) GetLoss(
	guesses *tensor.Tensor[float32, B],
	truths Truths,
	missing Missing,
) (float32, error) {
	grad, err := c.GetGrad(guesses, truths, missing)
	if err != nil {
		return 0, err
	}
	return sumSquares(grad), nil
}

// Compute returns the gradient and the loss from a single gradient
// evaluation, avoiding duplicate conversion, masking and normalization.
func (c *CategoricalCrossentropy[B]) Compute(
	guesses *tensor.Tensor[float32, B],
	truths Truths,
	missing Missing,
) (*tensor.Tensor[float32, B], float32, error) {
	grad, err := c.GetGrad(guesses, truths, missing)
	if err != nil {
		return nil, 0, err
	}
	return grad, sumSquares(grad), nil
}

// checkUnitInterval rejects tensors holding values outside [0, 1].
func checkUnitInterval[B tensor.Backend](what string, t *tensor.Tensor[float32, B]) error {
	for _, v := range t.Data() {
		if v < 0 || v > 1 {
			return errors.Wrapf(ErrRange,
				"cannot calculate categorical cross-entropy with %s outside the [0,1] interval (got %g)", what, v)
		}
	}
	return nil
}
