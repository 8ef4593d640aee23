// Package loss implements the loss kernels: categorical cross-entropy
// (single-step and per-timestep sequence variants), squared L2 distance
// and cosine distance, together with truth conversion (class indices,
// string labels, dense targets) and missing-value masking.
//
// Each kernel is configured once at construction and is stateless
// afterwards: every GetGrad/GetLoss/Compute call is a pure function of
// its inputs, safe for concurrent use across independent batches.
//
// For a given kernel configuration the loss and the gradient stay
// mathematically consistent: the cross-entropy and L2 kernels report the
// squared L2 norm of the returned gradient as the loss, so get_loss can
// always be derived from get_grad.
package loss

import (
	"github.com/criterion-ml/criterion/internal/tensor"
)

// sumSquares returns the sum of squared elements of d.
// This is the loss value the residual-gradient kernels report.
func sumSquares[B tensor.Backend](d *tensor.Tensor[float32, B]) float32 {
	return d.Mul(d).Sum().Item()
}

// batchSize returns the leading dimension used for normalization.
func batchSize[B tensor.Backend](t *tensor.Tensor[float32, B]) float32 {
	return float32(t.Shape()[0])
}
