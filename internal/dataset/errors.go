package dataset

import "errors"

var (
	// ErrInvalidDimension indicates a group-by dimension that is not
	// part of the record schema.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrInvalidField indicates a filter field that is not part of the
	// record schema.
	ErrInvalidField = errors.New("invalid field")

	// ErrEmptyDataset indicates that no usable rows survived loading.
	ErrEmptyDataset = errors.New("empty dataset")
)
