// Copyright 2025 The Criterion Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// The backend implements the full capability set the loss kernels
// require: element-wise arithmetic with NumPy-compatible broadcasting,
// scalar arithmetic, Abs/Sqrt, and axis-wise reductions (sum, L2 norm),
// for Float32 and Float64 tensors.
//
// Usage:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
package cpu
