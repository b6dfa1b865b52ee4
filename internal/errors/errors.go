// Package errors provides sentinel errors and error types for the drawback
// chess engine. It defines common error conditions and structured error
// types that preserve context while allowing inspection with errors.Is()
// and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move absent from the legal move list.
	ErrIllegalMove = errors.New("illegal move")

	// ErrUnknownDrawback indicates a drawback name missing from the rule set.
	ErrUnknownDrawback = errors.New("unknown drawback")

	// ErrParseFailure indicates a malformed opening-book line or move text.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSearchFailure indicates a branch that could not be searched.
	ErrSearchFailure = errors.New("search failure")
)

// ConfigurationError reports a drawback assignment that could not be made.
type ConfigurationError struct {
	Err    error  // The underlying error
	Colour string // Colour the drawback was assigned to (if applicable)
	Name   string // The requested drawback name
}

// Error returns a formatted error message including all available context.
func (e *ConfigurationError) Error() string {
	var parts []string
	if e.Colour != "" {
		parts = append(parts, strings.ToLower(e.Colour))
	}
	if e.Name != "" {
		parts = append(parts, fmt.Sprintf("drawback %q", e.Name))
	}
	context := strings.Join(parts, ", ")
	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the ConfigurationError wrapper.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IllegalMoveError wraps an illegal move with the position it was tried in.
type IllegalMoveError struct {
	Err  error  // The underlying error
	Move string // The move in coordinate notation
	FEN  string // The position the move was attempted from (if known)
}

// Error returns a formatted error message including all available context.
func (e *IllegalMoveError) Error() string {
	var parts []string
	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Move))
	}
	if e.FEN != "" {
		parts = append(parts, fmt.Sprintf("position %q", e.FEN))
	}
	context := strings.Join(parts, ", ")
	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *IllegalMoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with file location context.
// It's used for opening-book corpus lines and FEN text.
type ParseError struct {
	Err      error  // The underlying error
	File     string // Source file name
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	// File location; the line alone when no file name is known.
	loc := e.File
	if e.Line > 0 {
		if loc != "" {
			loc += ":"
		} else {
			loc = "line "
		}
		loc += fmt.Sprintf("%d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
	}
	if loc != "" {
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SearchFailure records a recovered fault while exploring one move.
type SearchFailure struct {
	Move  string      // The move being explored
	Depth int         // Remaining depth at the failing node
	Cause interface{} // The recovered panic value or error
}

// Error returns a formatted error message.
func (e *SearchFailure) Error() string {
	return fmt.Sprintf("move %s, depth %d: %v: %v", e.Move, e.Depth, ErrSearchFailure, e.Cause)
}

// Unwrap returns the cause when it is an error, else ErrSearchFailure.
func (e *SearchFailure) Unwrap() []error {
	if err, ok := e.Cause.(error); ok {
		return []error{ErrSearchFailure, err}
	}
	return []error{ErrSearchFailure}
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
