package tensor

// Backend defines the capability set the loss kernels require from a
// compute backend: elementwise arithmetic with broadcasting, scalar
// arithmetic, a little unary math and axis-wise reductions. Kernels are
// written against this interface and stay backend-agnostic; any device
// that can provide these operations can host the loss computation.
//
// Implementations:
//   - internal/backend/cpu: pure Go dense implementation
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with a scalar).
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Math operations (element-wise).
	Abs(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor                           // total sum, shape (1)
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // sum along dimension
	Norm(x *RawTensor, dim int, keepDim bool) *RawTensor   // L2 norm along dimension

	// Metadata.
	Name() string
	Device() Device
}
