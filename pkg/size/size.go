// Package size parses the byte-size literals used in configuration
// documents, such as "2MB" or "80KB".
package size

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value is a byte count resolved from a size literal.
type Value uint64

var (
	// ErrInvalidFormat reports a literal whose numeric portion is not a
	// non-negative base-10 integer, or that overflows a 64-bit byte count.
	ErrInvalidFormat = errors.New("invalid size format")

	// ErrAmbiguousUnit reports a unit table in which two entries share a
	// suffix, making literal matching non-deterministic.
	ErrAmbiguousUnit = errors.New("ambiguous size unit")
)

// ParseError describes why a size literal was rejected.
type ParseError struct {
	Input  string // the literal as given, before trimming
	Reason string // human-readable cause
	err    error  // sentinel for errors.Is
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse size %q: %s", e.Input, e.Reason)
}

// Unwrap exposes the underlying sentinel error.
func (e *ParseError) Unwrap() error { return e.err }

// Unit maps a literal suffix to its byte multiplier.
type Unit struct {
	Suffix     string
	Multiplier uint64
}

// Table is an ordered set of units. Longer suffixes are matched first, so
// overlapping suffix sets resolve the same way on every run.
type Table []Unit

// defaultTable holds the binary units the kernel build understands.
// Multipliers are exact powers of 1024.
var defaultTable = Table{
	{Suffix: "KB", Multiplier: 1 << 10},
	{Suffix: "MB", Multiplier: 1 << 20},
	{Suffix: "GB", Multiplier: 1 << 30},
}

// DefaultTable returns a copy of the built-in KB/MB/GB table.
func DefaultTable() Table {
	return append(Table(nil), defaultTable...)
}

// NewTable builds a Table from the given units. Suffixes are normalized to
// upper case and validated: an empty or duplicate suffix fails with
// ErrAmbiguousUnit. The result is sorted longest-suffix-first.
func NewTable(units ...Unit) (Table, error) {
	seen := make(map[string]bool, len(units))
	t := make(Table, 0, len(units))
	for _, u := range units {
		suffix := strings.ToUpper(strings.TrimSpace(u.Suffix))
		if suffix == "" {
			return nil, fmt.Errorf("size unit with empty suffix: %w", ErrAmbiguousUnit)
		}
		if seen[suffix] {
			return nil, fmt.Errorf("duplicate size unit %q: %w", suffix, ErrAmbiguousUnit)
		}
		if u.Multiplier == 0 {
			return nil, fmt.Errorf("size unit %q has zero multiplier", suffix)
		}
		seen[suffix] = true
		t = append(t, Unit{Suffix: suffix, Multiplier: u.Multiplier})
	}
	sort.SliceStable(t, func(i, j int) bool {
		return len(t[i].Suffix) > len(t[j].Suffix)
	})
	return t, nil
}

// Parse resolves s against the built-in unit table.
func Parse(s string) (Value, error) {
	return defaultTable.Parse(s)
}

// Parse resolves a size literal to its byte count.
//
// A literal is a non-negative base-10 integer with an optional unit
// suffix. Suffix matching is case-insensitive and surrounding whitespace
// is ignored; a literal without a suffix is a raw byte count.
func (t Table) Parse(s string) (Value, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return 0, &ParseError{Input: s, Reason: "empty input", err: ErrInvalidFormat}
	}
	for _, u := range t {
		if !strings.HasSuffix(trimmed, u.Suffix) {
			continue
		}
		digits := strings.TrimSpace(strings.TrimSuffix(trimmed, u.Suffix))
		n, err := parseCount(s, digits)
		if err != nil {
			return 0, err
		}
		if n != 0 && n > math.MaxUint64/u.Multiplier {
			return 0, &ParseError{Input: s, Reason: "value overflows a 64-bit byte count", err: ErrInvalidFormat}
		}
		return Value(n * u.Multiplier), nil
	}
	n, err := parseCount(s, trimmed)
	if err != nil {
		return 0, err
	}
	return Value(n), nil
}

// parseCount parses the numeric portion of a literal. Digits only: signs,
// decimal points, and grouping characters are all rejected.
func parseCount(input, digits string) (uint64, error) {
	if digits == "" {
		return 0, &ParseError{Input: input, Reason: "missing numeric value", err: ErrInvalidFormat}
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		reason := fmt.Sprintf("%q is not a non-negative integer", digits)
		if errors.Is(err, strconv.ErrRange) {
			reason = "value overflows a 64-bit byte count"
		}
		return 0, &ParseError{Input: input, Reason: reason, err: ErrInvalidFormat}
	}
	return n, nil
}
