package sandboxeval

import "time"

// Option configures an Engine at construction time. The functional-
// option shape mirrors the teacher's own `dwscript.New(WithCompileMode(...))`
// pattern (see pkg/dwscript/compile_mode_test.go).
type Option func(*config)

type config struct {
	timeout       time.Duration
	maxStackDepth int
	complexityCap float64
	depthCap      int
	strictMode    bool
	cacheSize     int
	errorHandler  ErrorHandler
	extraBlocked  []string
}

// WithTimeout overrides the evaluator's wall-clock execution timeout
// (default 5s, per spec §4.F).
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithMaxStackDepth overrides the evaluator's recursion-depth cap
// (default 50 frames, per spec §4.F).
func WithMaxStackDepth(n int) Option {
	return func(c *config) { c.maxStackDepth = n }
}

// WithComplexityCap rejects, at the direct-mode parse stage, any
// expression whose parser-computed complexity score exceeds cap.
// cap <= 0 disables the check.
func WithComplexityCap(cap float64) Option {
	return func(c *config) { c.complexityCap = cap }
}

// WithDepthCap rejects, at the direct-mode parse stage, any expression
// whose structural nesting depth exceeds cap. cap <= 0 disables the
// check.
func WithDepthCap(n int) Option {
	return func(c *config) { c.depthCap = n }
}

// WithStrictMode toggles whether direct mode runs the security
// validator between parse and execute. Strict mode is on by default;
// an Engine built with WithStrictMode(false) still enforces the
// runtime property-denylist re-check inside the evaluator, but skips
// the pre-execution audit entirely.
func WithStrictMode(strict bool) Option {
	return func(c *config) { c.strictMode = strict }
}

// WithCacheSize sets the capacity shared by the parse, validation, and
// template LRU caches. <= 0 means unbounded.
func WithCacheSize(n int) Option {
	return func(c *config) { c.cacheSize = n }
}

// WithErrorHandler installs a caller hook that may convert an
// evaluation error into a success value, per spec §4.F and the
// grounding executor's ExecutionOptions.ErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) { c.errorHandler = h }
}

// WithExtraBlockedIdentifiers extends the security validator's
// identifier denylist beyond the built-in set (§6), registered as a
// custom rule rather than mutating the shared package-level denylist.
func WithExtraBlockedIdentifiers(names ...string) Option {
	return func(c *config) { c.extraBlocked = append(c.extraBlocked, names...) }
}

func defaultConfig() *config {
	return &config{
		timeout:       0, // resolved to eval.DefaultTimeout in New
		maxStackDepth: 0, // resolved to eval.DefaultMaxStackDepth in New
		strictMode:    true,
		cacheSize:     DefaultCacheSize,
	}
}
