package loss

import (
	"github.com/pkg/errors"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// Missing specifies positions excluded from the loss and gradient.
// Two variants exist: Mask (a pre-built dense float mask, 1.0 fully
// excluded) and Rows (example row indices densified to 1.0 rows).
type Missing interface {
	isMissing()
}

// Rows marks whole example rows as missing.
type Rows []int

func (Rows) isMissing() {}

// Mask is a pre-built dense exclusion mask with the guess shape.
// Values are exclusion weights: 1.0 excludes a position entirely.
type Mask[B tensor.Backend] struct {
	Tensor *tensor.Tensor[float32, B]
}

func (Mask[B]) isMissing() {}

// buildMask densifies a missing specifier into a float mask of the given
// shape. A pre-built Mask is returned as-is after a shape check; Rows
// fills the selected rows of a zero tensor with 1.0.
func buildMask[B tensor.Backend](missing Missing, shape tensor.Shape, backend B) (*tensor.Tensor[float32, B], error) {
	switch m := missing.(type) {
	case Mask[B]:
		if !m.Tensor.Shape().Equal(shape) {
			return nil, errors.Wrapf(ErrShape, "missing mask shape %v does not match guesses %v", m.Tensor.Shape(), shape)
		}
		return m.Tensor, nil
	case Rows:
		mask := tensor.Zeros[float32](shape, backend)
		data := mask.Data()
		rowLen := shape.NumElements() / shape[0]
		for _, row := range m {
			if row < 0 || row >= shape[0] {
				return nil, errors.Wrapf(ErrRange, "missing row %d outside batch of %d", row, shape[0])
			}
			rowData := data[row*rowLen : (row+1)*rowLen]
			for i := range rowData {
				rowData[i] = 1
			}
		}
		return mask, nil
	default:
		return nil, errors.Wrapf(ErrConfig, "unsupported missing specifier %T", missing)
	}
}
