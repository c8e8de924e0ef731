// Package domain defines domain-level errors for the datasets feature.
package domain

import "errors"

// Domain errors for dataset upload and lookup.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrDatasetNotFound indicates that no dataset was found with the given ID.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrColumnNotFound indicates that a requested column does not exist in the dataset.
	ErrColumnNotFound = errors.New("column not found")

	// ErrNoColumns indicates that the uploaded table has no numeric columns
	// besides the key column.
	ErrNoColumns = errors.New("no numeric columns")

	// ErrNoRows indicates that the uploaded table has a header but no data rows.
	ErrNoRows = errors.New("no data rows")

	// ErrRowWidth indicates that a row has a different number of cells than the header.
	ErrRowWidth = errors.New("row width does not match header")

	// ErrBadNumber indicates that a non-empty cell could not be parsed as a number.
	ErrBadNumber = errors.New("cell is not a number")

	// ErrBadKey indicates that a key cell could not be parsed in the key column's format.
	ErrBadKey = errors.New("key cell has wrong format")

	// ErrDuplicateKey indicates that the key column contains the same key twice.
	ErrDuplicateKey = errors.New("duplicate key in key column")
)
