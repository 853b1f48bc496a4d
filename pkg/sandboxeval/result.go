package sandboxeval

import (
	"time"

	"github.com/sandboxeval/sandboxeval/internal/errors"
	"github.com/sandboxeval/sandboxeval/internal/security"
	"github.com/sandboxeval/sandboxeval/internal/value"
)

// Metadata accompanies a successful or failed EvalResult with the
// parse-time facts the caller might want for logging or further
// capping decisions.
type Metadata struct {
	Complexity     float64
	Depth          int
	Dependencies   []string
	Functions      []string
	MemoryEstimate int64
	Duration       time.Duration
}

// EvalResult is direct mode's result shape (spec §6): exactly one of
// Value or (Error, ErrorType) is meaningful, selected by Success.
type EvalResult struct {
	Success   bool
	Value     value.Value
	Error     string
	ErrorType errors.ErrorType
	Metadata  *Metadata

	// ProcessedHoles is set only when Evaluate took template mode
	// (spec §4.G point 4); nil in direct mode.
	ProcessedHoles []ProcessedHole
}

// ValidationResult is the `validate` operation's result shape.
type ValidationResult struct {
	Valid      bool
	Violations []security.Violation
	Error      string
}

// ProcessedHole records one `{{ expression }}` occurrence's evaluation
// for template-mode diagnostics (spec §4.G point 4).
type ProcessedHole struct {
	Original   string
	Evaluated  string
	StartIndex int
	EndIndex   int
}

// TemplateResult is template mode's result shape (spec §6).
type TemplateResult struct {
	Success        bool
	Result         string
	Error          string
	ProcessedHoles []ProcessedHole
}
