// Copyright 2025 The Criterion Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loss provides the public API for the loss kernels: categorical
// cross-entropy (single-step and sequence variants), squared L2 distance
// and cosine distance.
//
// Each kernel exposes GetGrad, GetLoss and a combined Compute; the loss
// reported by a kernel is always derivable from its gradient under the
// same configuration. Kernels are stateless after construction and safe
// for concurrent use across independent batches.
//
// Truths for the cross-entropy kernels are supplied in tagged form:
// Indices (class index per example), Labels (class name per example,
// resolved through the name table given via WithNames) or Dense (an
// already-dense target tensor). An optional Missing specifier excludes
// positions from the loss and gradient.
//
// Example:
//
//	backend := cpu.New()
//	ce := loss.NewCategoricalCrossentropy(backend, loss.WithNames([]string{"dog", "cat"}))
//	grad, l, err := ce.Compute(guesses, loss.Labels{"dog", "cat", "dog"}, nil)
//
// Kernels can also be constructed by registry name, for configuration
// systems that select a loss by string identifier:
//
//	obj, err := loss.Build(loss.L2DistanceV1, backend, loss.WithNormalize(false))
//	l2 := obj.(*loss.L2Distance[*cpu.Backend])
package loss
