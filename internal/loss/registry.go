package loss

import (
	"github.com/pkg/errors"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// Registry identifiers, consumed by configuration systems that select a
// loss by name. The ".v1" suffix versions the construction contract, not
// the package.
const (
	CategoricalCrossentropyV1         = "CategoricalCrossentropy.v1"
	SequenceCategoricalCrossentropyV1 = "SequenceCategoricalCrossentropy.v1"
	L2DistanceV1                      = "L2Distance.v1"
	CosineDistanceV1                  = "CosineDistance.v1"
)

// Names returns the registered loss identifiers.
func Names() []string {
	return []string{
		CategoricalCrossentropyV1,
		SequenceCategoricalCrossentropyV1,
		L2DistanceV1,
		CosineDistanceV1,
	}
}

// Build constructs the kernel registered under name with the given
// options. The concrete return type depends on the name
// (*CategoricalCrossentropy[B], *SequenceCategoricalCrossentropy[B],
// *L2Distance[B] or *CosineDistance[B]); callers selecting a loss from
// configuration assert the call signature they expect. Unknown names
// report ErrConfig.
func Build[B tensor.Backend](name string, backend B, opts ...Option) (any, error) {
	switch name {
	case CategoricalCrossentropyV1:
		return NewCategoricalCrossentropy(backend, opts...), nil
	case SequenceCategoricalCrossentropyV1:
		return NewSequenceCategoricalCrossentropy(backend, opts...), nil
	case L2DistanceV1:
		return NewL2Distance(backend, opts...), nil
	case CosineDistanceV1:
		return NewCosineDistance(backend, opts...), nil
	default:
		return nil, errors.Wrapf(ErrConfig, "unknown loss %q (registered: %v)", name, Names())
	}
}
