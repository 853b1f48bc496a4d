package eval

import (
	"strings"

	"github.com/sandboxeval/sandboxeval/internal/errors"
)

// categorizeMessage infers an errors.ErrorType from an error message's
// shape, grounded on the executor's categorizeError — but folding the
// stack-depth message into the timeout bucket per the taxonomy:
// "timeout — wall-clock or stack-depth cap exceeded."
func categorizeMessage(message string) errors.ErrorType {
	message = strings.ToLower(message)

	switch {
	case strings.Contains(message, "timeout"), strings.Contains(message, "stack depth"):
		return errors.ErrorTimeout
	case strings.Contains(message, "denylist"), strings.Contains(message, "security"), strings.Contains(message, "blocked"):
		return errors.ErrorSecurity
	case strings.Contains(message, "argument"), strings.Contains(message, "arity"), strings.Contains(message, "requires at least"), strings.Contains(message, "accepts at most"), strings.Contains(message, "invalid type"):
		return errors.ErrorValueType
	case strings.Contains(message, "unsupported syntax"), strings.Contains(message, "not registered"), strings.Contains(message, "not defined"), strings.Contains(message, "arrow function"):
		return errors.ErrorSyntax
	default:
		return errors.ErrorRuntime
	}
}
