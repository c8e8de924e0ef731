// Package domain defines domain-level errors for the charts feature.
package domain

import "errors"

// Domain errors for chart composition.
// These errors represent invalid input data or options and should be mapped
// to client errors by upper layers. None of them are retried internally.
var (
	// ErrEmptyData indicates that a series has no usable numeric values.
	// An axis range computed from nothing would misrepresent the data, so the
	// core fails loudly instead of rendering a default chart.
	ErrEmptyData = errors.New("no usable numeric values")

	// ErrIncompatibleKeyType indicates that a multi-series alignment mixes
	// category-label keys and timestamp keys.
	ErrIncompatibleKeyType = errors.New("mixed category and timestamp keys")

	// ErrInvalidSort indicates that a value-sort was requested on a
	// chronological axis. Time series keep their chronological order.
	ErrInvalidSort = errors.New("value sort requested on a time axis")
)
