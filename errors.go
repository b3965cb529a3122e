package breakup

import "errors"

// Error kinds surfaced by this package. Wrap sites add context with %w so
// callers can test with errors.Is.
var (
	// ErrInputIO denotes a required file which is missing or unreadable.
	ErrInputIO = errors.New("input file missing or unreadable")
	// ErrParse denotes a cell, line or record which could not be parsed.
	ErrParse = errors.New("parse error")
	// ErrIncompleteSatellite denotes a satellite build with missing facts.
	ErrIncompleteSatellite = errors.New("incomplete satellite")
	// ErrInputCardinality denotes a parent count not matching the declared simulation kind.
	ErrInputCardinality = errors.New("input cardinality mismatch")
	// ErrConvergenceExhausted denotes an anomaly solve which did not converge.
	ErrConvergenceExhausted = errors.New("convergence exhausted")
	// ErrConfiguration denotes a missing or unusable configuration tag.
	ErrConfiguration = errors.New("configuration error")
)
