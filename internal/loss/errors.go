package loss

import "github.com/pkg/errors"

// Sentinel errors for loss computation contract violations. Call sites
// wrap them with context; callers test with errors.Is. All violations are
// surfaced synchronously to the caller and never retried or swallowed.
var (
	// ErrShape reports mismatched guess/truth shapes or mismatched
	// sequence lengths.
	ErrShape = errors.New("shape mismatch")

	// ErrConfig reports a construction-time contract violation observed
	// at call time, such as string labels without a name table.
	ErrConfig = errors.New("invalid loss configuration")

	// ErrRange reports values outside the interval expected by the loss,
	// such as cross-entropy inputs outside [0, 1].
	ErrRange = errors.New("value out of range")
)
