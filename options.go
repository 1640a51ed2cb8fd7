package ai

// Options contains configuration for a completion request.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature *float64
	TopP        *float64
}

// Option is a functional option for configuring completion requests.
type Option func(*Options)

// WithModel overrides the adapter's configured model for one request.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature (0.0 to 2.0).
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithTopP sets the nucleus sampling threshold (0.0 to 1.0).
func WithTopP(p float64) Option {
	return func(o *Options) {
		o.TopP = &p
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
