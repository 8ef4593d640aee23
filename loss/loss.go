// Copyright 2025 The Criterion Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package loss

import (
	"github.com/criterion-ml/criterion/internal/loss"
	"github.com/criterion-ml/criterion/tensor"
)

// Sentinel errors reported by the kernels; test with errors.Is.
var (
	ErrShape  = loss.ErrShape
	ErrConfig = loss.ErrConfig
	ErrRange  = loss.ErrRange
)

// Option configures a loss kernel at construction time.
type Option = loss.Option

// WithNormalize controls division of the loss and gradient by the batch
// size. Enabled by default.
func WithNormalize(normalize bool) Option {
	return loss.WithNormalize(normalize)
}

// WithNames supplies the ordered class name table used to resolve string
// labels.
func WithNames(names []string) Option {
	return loss.WithNames(names)
}

// WithIgnoreZeros excludes exact zero-vector truth rows from the cosine
// distance loss and gradient. Disabled by default.
func WithIgnoreZeros(ignoreZeros bool) Option {
	return loss.WithIgnoreZeros(ignoreZeros)
}

// Truth representations

// Truths is the tagged representation of ground-truth labels.
type Truths = loss.Truths

// Indices holds one class index per example.
type Indices = loss.Indices

// Labels holds one class name per example.
type Labels = loss.Labels

// Dense wraps an already-dense target tensor.
type Dense[B tensor.Backend] = loss.Dense[B]

// Missing specifiers

// Missing specifies positions excluded from the loss and gradient.
type Missing = loss.Missing

// Rows marks whole example rows as missing.
type Rows = loss.Rows

// Mask is a pre-built dense exclusion mask (1.0 fully excludes).
type Mask[B tensor.Backend] = loss.Mask[B]

// OneHot expands class indices to a dense one-hot tensor of shape
// (len(indices), nClasses).
func OneHot[B tensor.Backend](indices []int, nClasses int, backend B) (*tensor.Tensor[float32, B], error) {
	return loss.OneHot(indices, nClasses, backend)
}

// Kernels

// CategoricalCrossentropy computes the residual gradient and squared
// residual loss for probability guesses of shape (batch, classes).
type CategoricalCrossentropy[B tensor.Backend] = loss.CategoricalCrossentropy[B]

// NewCategoricalCrossentropy creates a categorical cross-entropy kernel.
//
// Example:
//
//	ce := loss.NewCategoricalCrossentropy(backend, loss.WithNames([]string{"dog", "cat"}))
func NewCategoricalCrossentropy[B tensor.Backend](backend B, opts ...Option) *CategoricalCrossentropy[B] {
	return loss.NewCategoricalCrossentropy(backend, opts...)
}

// SequenceCategoricalCrossentropy applies categorical cross-entropy to
// an ordered sequence of (guesses, truths) pairs, step by step.
type SequenceCategoricalCrossentropy[B tensor.Backend] = loss.SequenceCategoricalCrossentropy[B]

// NewSequenceCategoricalCrossentropy creates a sequence cross-entropy
// kernel sharing its options with the inner per-step kernel.
func NewSequenceCategoricalCrossentropy[B tensor.Backend](backend B, opts ...Option) *SequenceCategoricalCrossentropy[B] {
	return loss.NewSequenceCategoricalCrossentropy(backend, opts...)
}

// L2Distance computes the squared L2 distance between same-shaped
// guesses and truths.
type L2Distance[B tensor.Backend] = loss.L2Distance[B]

// NewL2Distance creates a squared L2 distance kernel.
func NewL2Distance[B tensor.Backend](backend B, opts ...Option) *L2Distance[B] {
	return loss.NewL2Distance(backend, opts...)
}

// CosineDistance computes the row-wise cosine distance between
// same-shaped guesses and truths.
type CosineDistance[B tensor.Backend] = loss.CosineDistance[B]

// NewCosineDistance creates a cosine distance kernel.
func NewCosineDistance[B tensor.Backend](backend B, opts ...Option) *CosineDistance[B] {
	return loss.NewCosineDistance(backend, opts...)
}

// Registry

// Registry identifiers for constructing kernels by name.
const (
	CategoricalCrossentropyV1         = loss.CategoricalCrossentropyV1
	SequenceCategoricalCrossentropyV1 = loss.SequenceCategoricalCrossentropyV1
	L2DistanceV1                      = loss.L2DistanceV1
	CosineDistanceV1                  = loss.CosineDistanceV1
)

// Names returns the registered loss identifiers.
func Names() []string {
	return loss.Names()
}

// Build constructs the kernel registered under name; the concrete return
// type depends on the name. Unknown names report ErrConfig.
func Build[B tensor.Backend](name string, backend B, opts ...Option) (any, error) {
	return loss.Build(name, backend, opts...)
}
