package loss

import (
	"github.com/pkg/errors"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// Truths is the tagged representation of ground-truth labels. Exactly
// three variants exist: Indices (class index per example), Labels (class
// name per example, resolved through the kernel's name table) and Dense
// (an already-dense target tensor matching the guess shape).
type Truths interface {
	isTruths()
}

// Indices holds one class index per example. Converted to one-hot form
// before use: index i maps to a unit vector with 1.0 at position i.
type Indices []int

func (Indices) isTruths() {}

// Labels holds one class name per example. Resolution requires a name
// table supplied at kernel construction via WithNames.
type Labels []string

func (Labels) isTruths() {}

// Dense wraps an already-dense target tensor (one-hot or soft targets).
// It is passed through unchanged; its shape must match the guesses.
type Dense[B tensor.Backend] struct {
	Tensor *tensor.Tensor[float32, B]
}

func (Dense[B]) isTruths() {}

// OneHot expands class indices to a dense one-hot tensor of shape
// (len(indices), nClasses). The conversion is lossless and deterministic.
func OneHot[B tensor.Backend](indices []int, nClasses int, backend B) (*tensor.Tensor[float32, B], error) {
	out := tensor.Zeros[float32](tensor.Shape{len(indices), nClasses}, backend)
	data := out.Data()
	for row, idx := range indices {
		if idx < 0 || idx >= nClasses {
			return nil, errors.Wrapf(ErrRange, "class index %d at row %d outside [0, %d)", idx, row, nClasses)
		}
		data[row*nClasses+idx] = 1
	}
	return out, nil
}

// convertTruths normalizes a truth representation into a dense target
// tensor with the guesses' class width. Dense truths pass through
// unchanged; Indices and Labels expand to one-hot form. Pure
// transformation, no side effects.
func convertTruths[B tensor.Backend](
	truths Truths,
	guesses *tensor.Tensor[float32, B],
	nameToIndex map[string]int,
) (*tensor.Tensor[float32, B], error) {
	shape := guesses.Shape()
	nClasses := shape[len(shape)-1]

	switch tr := truths.(type) {
	case Dense[B]:
		return tr.Tensor, nil
	case Indices:
		return OneHot(tr, nClasses, guesses.Backend())
	case Labels:
		if nameToIndex == nil {
			return nil, errors.Wrap(ErrConfig,
				"cannot calculate loss from string labels without names; "+
					"pass the class names when creating the loss, e.g. WithNames([]string{\"dog\", \"cat\"})")
		}
		indices := make([]int, len(tr))
		for i, name := range tr {
			idx, ok := nameToIndex[name]
			if !ok {
				return nil, errors.Wrapf(ErrConfig, "label %q not present in the name table", name)
			}
			indices[i] = idx
		}
		return OneHot(indices, nClasses, guesses.Backend())
	default:
		return nil, errors.Wrapf(ErrConfig, "unsupported truth representation %T", truths)
	}
}
