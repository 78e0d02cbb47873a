// Package config declares Config, the construction-time tuning knobs
// shared by the animation engine, node-graph engine, and orchestrator:
// scratch-buffer capacities and per-tick limits. Of the scratch
// capacities, the engines read only ScratchValuesVec, as the initial
// capacity of their WriteBatch; no accumulator pool or bake buffer is
// sized from the others.
//
// Config follows the teacher's NewGraph(opts...) shape exactly: a
// functional Option slice applied over sane defaults, not a struct
// literal callers must fill in field by field.
package config

// Option configures a Config before construction.
type Option func(c *Config)

// Features toggles optional, non-default engine behavior. Reserved0 is a
// placeholder slot for a future flag; it has no effect today.
type Features struct {
	// SelectorNaNFallback, when true, makes a failed selector projection
	// (specification §4.2) produce a NaN-of-shape Value for the frame
	// instead of a SelectorError. Default false: selector failures are
	// strict by default, matching specification §7's stated default.
	SelectorNaNFallback bool

	Reserved0 bool
}

// Config holds every scratch-buffer size and per-tick limit the engines
// need at construction time.
type Config struct {
	// ScratchSamples is the baked-sample scratch capacity. No engine reads
	// it; BakeAnimation sizes its frames from the requested time range and
	// frame rate.
	ScratchSamples int

	// ScratchValuesScalar is the scalar blend-accumulator capacity. No
	// engine reads it.
	ScratchValuesScalar int

	// ScratchValuesVec is the initial WriteBatch capacity of anim.Engine
	// and graphrt.GraphRuntime.
	ScratchValuesVec int

	// ScratchValuesQuat is the quaternion blend-scratch capacity. No
	// engine reads it.
	ScratchValuesQuat int

	// MaxEventsPerTick bounds how many events a single anim UpdateValues
	// call keeps: when more are produced, the oldest are dropped and a
	// warning event is appended.
	MaxEventsPerTick int

	Features Features
}

// defaults mirrors core.NewGraph's "sane zero-value behavior" approach:
// every knob gets a usable, moderate default so New() with no options
// produces a working Config.
func defaults() Config {
	return Config{
		ScratchSamples:      256,
		ScratchValuesScalar: 64,
		ScratchValuesVec:    64,
		ScratchValuesQuat:   32,
		MaxEventsPerTick:    128,
	}
}

// New builds a Config from defaults, applying opts in order.
func New(opts ...Option) Config {
	c := defaults()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithScratchSamples overrides the baked-sample scratch capacity.
func WithScratchSamples(n int) Option {
	return func(c *Config) { c.ScratchSamples = n }
}

// WithScratchValuesScalar overrides the scalar blend-accumulator capacity.
func WithScratchValuesScalar(n int) Option {
	return func(c *Config) { c.ScratchValuesScalar = n }
}

// WithScratchValuesVec overrides the vector blend-accumulator capacity.
func WithScratchValuesVec(n int) Option {
	return func(c *Config) { c.ScratchValuesVec = n }
}

// WithScratchValuesQuat overrides the quaternion blend-scratch capacity.
func WithScratchValuesQuat(n int) Option {
	return func(c *Config) { c.ScratchValuesQuat = n }
}

// WithMaxEventsPerTick overrides the per-tick event cap.
func WithMaxEventsPerTick(n int) Option {
	return func(c *Config) { c.MaxEventsPerTick = n }
}

// WithSelectorNaNFallback enables the NaN-of-shape selector fallback
// instead of a strict SelectorError (specification §4.2, §7).
func WithSelectorNaNFallback(enabled bool) Option {
	return func(c *Config) { c.Features.SelectorNaNFallback = enabled }
}
