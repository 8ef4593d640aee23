package loss

// config holds the construction-time settings shared by the kernels.
// Settings are fixed once the kernel is built; kernels never mutate them.
type config struct {
	normalize   bool
	names       []string
	ignoreZeros bool
}

func defaultConfig() config {
	return config{normalize: true}
}

// Option configures a loss kernel at construction time.
type Option func(*config)

// WithNormalize controls division of the loss and gradient by the batch
// size. Enabled by default.
func WithNormalize(normalize bool) Option {
	return func(c *config) {
		c.normalize = normalize
	}
}

// WithNames supplies the ordered class name table used to resolve string
// labels. Index i of the slice is class i. The table is captured at
// construction and never mutated afterwards.
func WithNames(names []string) Option {
	return func(c *config) {
		c.names = names
	}
}

// WithIgnoreZeros excludes truth rows that are exact zero vectors from
// both the loss and the gradient. Only the cosine distance kernel reads
// this setting. Disabled by default.
func WithIgnoreZeros(ignoreZeros bool) Option {
	return func(c *config) {
		c.ignoreZeros = ignoreZeros
	}
}
