package cpu

import (
	"fmt"

	"github.com/criterion-ml/criterion/internal/tensor"
)

// Sum reduces the whole tensor to its total sum, returned as shape (1).
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		var total float32
		for _, v := range x.AsFloat32() {
			total += v
		}
		result.AsFloat32()[0] = total
	case tensor.Float64:
		var total float64
		for _, v := range x.AsFloat64() {
			total += v
		}
		result.AsFloat64()[0] = total
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	x := [2, 3] tensor
//	backend.SumDim(x, 1, true)  // shape: [2, 1]
//	backend.SumDim(x, 1, false) // shape: [2]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	// Normalize negative dimension
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("sumdim: dimension %d out of range for %dD tensor", dim, ndim))
	}

	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, ndim-1)
		for i := 0; i < ndim; i++ {
			if i != dim {
				outShape = append(outShape, shape[i])
			}
		}
	}

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sumdim: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		sumAlongDim(x.AsFloat32(), result.AsFloat32(), shape, dim)
	case tensor.Float64:
		sumAlongDim(x.AsFloat64(), result.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Norm computes the L2 norm along the specified dimension:
// sqrt(sum(x², dim)).
func (cpu *CPUBackend) Norm(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	squared := cpu.Mul(x, x)
	return cpu.Sqrt(cpu.SumDim(squared, dim, keepDim))
}

// sumAlongDim accumulates src into dst, collapsing the given dimension.
// dst is zero-initialized by allocation. The output layout is identical
// with and without keepDim, so dst indexing simply skips the reduced dim.
func sumAlongDim[T float32 | float64](src, dst []T, shape tensor.Shape, dim int) {
	strides := shape.ComputeStrides()

	outShape := make(tensor.Shape, 0, len(shape)-1)
	for i, d := range shape {
		if i != dim {
			outShape = append(outShape, d)
		}
	}
	outStrides := outShape.ComputeStrides()

	for i := range src {
		rem := i
		out := 0
		oj := 0
		for d := 0; d < len(shape); d++ {
			coord := rem / strides[d]
			rem %= strides[d]
			if d == dim {
				continue
			}
			out += coord * outStrides[oj]
			oj++
		}
		dst[out] += src[i]
	}
}
