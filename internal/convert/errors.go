package convert

import "errors"

var (
	ErrNoConverterAvailable = errors.New("convert: no converter available")
	ErrDuplicateConverter   = errors.New("convert: converter already registered")
	ErrNilConverter         = errors.New("convert: converter is nil")
)
