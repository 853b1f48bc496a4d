// Package errors formats diagnostics produced by the parser,
// validator, and evaluator with source context: a line/column header,
// the offending source line, and a caret. It keeps the teacher's
// CompilerError shape almost file-for-file, retyped around
// ast.Position and extended with an ErrorType taxonomy so callers can
// branch on what stage produced a failure.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/sandboxeval/sandboxeval/internal/ast"
)

// ErrorType classifies which pipeline stage raised a SourceError.
type ErrorType string

const (
	ErrorSyntax     ErrorType = "syntax"
	ErrorSecurity   ErrorType = "security"
	ErrorRuntime    ErrorType = "runtime"
	ErrorValueType  ErrorType = "type"
	ErrorComplexity ErrorType = "complexity"
	ErrorTimeout    ErrorType = "timeout"
)

var (
	boldRed = color.New(color.FgRed, color.Bold)
	bold    = color.New(color.Bold)
	dim     = color.New(color.Faint)
)

// SourceError is a single diagnostic with position and source context.
type SourceError struct {
	Type       ErrorType
	Message    string
	Source     string
	Expression string
	File       string
	Pos        ast.Position
}

// New creates a SourceError of the given type.
func New(t ErrorType, pos ast.Position, message, source, file string) *SourceError {
	return &SourceError{
		Type:    t,
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format renders the error with a one-line source snippet and caret.
// If useColor is true, output goes through github.com/fatih/color.
func (e *SourceError) Format(useColor bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("[%s] ", e.Type)
	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%sError in %s:%d:%d\n", header, e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%sError at %d:%d\n", header, e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if useColor {
			sb.WriteString(boldRed.Sprint("^"))
		} else {
			sb.WriteString("^")
		}
		sb.WriteString("\n")
	}

	if useColor {
		sb.WriteString(bold.Sprint(e.Message))
	} else {
		sb.WriteString(e.Message)
	}

	return sb.String()
}

// getSourceLine extracts a specific 1-indexed line from Source.
func (e *SourceError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// getSourceContext returns lines surrounding lineNum, clamped to the
// document bounds.
func (e *SourceError) getSourceContext(lineNum, before, after int) []string {
	if e.Source == "" {
		return nil
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return nil
	}
	start := lineNum - before
	if start < 1 {
		start = 1
	}
	end := lineNum + after
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start-1 : end]
}

// FormatWithContext renders the error with contextLines of source
// before and after the offending line.
func (e *SourceError) FormatWithContext(contextLines int, useColor bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("[%s] ", e.Type)
	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%sError in %s:%d:%d\n", header, e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%sError at %d:%d\n", header, e.Pos.Line, e.Pos.Column))
	}

	lines := e.getSourceContext(e.Pos.Line, contextLines, contextLines)
	if len(lines) == 0 {
		return e.Format(useColor)
	}

	startLine := e.Pos.Line - contextLines
	if startLine < 1 {
		startLine = 1
	}

	for i, line := range lines {
		currentLine := startLine + i
		lineNumStr := fmt.Sprintf("%4d | ", currentLine)

		if currentLine == e.Pos.Line {
			if useColor {
				sb.WriteString(bold.Sprint(lineNumStr + line))
			} else {
				sb.WriteString(lineNumStr + line)
			}
			sb.WriteString("\n")

			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
			if useColor {
				sb.WriteString(boldRed.Sprint("^"))
			} else {
				sb.WriteString("^")
			}
			sb.WriteString("\n")
		} else {
			if useColor {
				sb.WriteString(dim.Sprint(lineNumStr + line))
			} else {
				sb.WriteString(lineNumStr + line)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if useColor {
		sb.WriteString(bold.Sprint(e.Message))
	} else {
		sb.WriteString(e.Message)
	}

	return sb.String()
}

// FormatErrors renders a batch of errors, numbering them when more
// than one is present.
func FormatErrors(errs []*SourceError, useColor bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(useColor)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("evaluation failed with %d error(s):\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[%d of %d]\n", i+1, len(errs)))
		sb.WriteString(e.Format(useColor))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
