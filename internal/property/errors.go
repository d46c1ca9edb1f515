package property

import "errors"

var (
	ErrPropertyNotFound    = errors.New("property: not found")
	ErrPropertyNotWritable = errors.New("property: not writable")
	ErrDuplicateProperty   = errors.New("property: already registered")
	ErrInvalidPath         = errors.New("property: invalid path")
	ErrNilAccessor         = errors.New("property: getter is nil")
	ErrInstanceType        = errors.New("property: instance type mismatch")
	ErrValueType           = errors.New("property: value type mismatch")
)
