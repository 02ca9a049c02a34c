package types

import "errors"

// Schema errors.
var (
	ErrInvalidValue   = errors.New("value outside field domain")
	ErrUnknownField   = errors.New("unknown field")
	ErrSchemaMismatch = errors.New("header does not match survey schema")
	ErrRowOutOfRange  = errors.New("row index out of range")
)

// Config validation errors.
var (
	ErrDataFileEmpty   = errors.New("data file must not be empty")
	ErrListenEmpty     = errors.New("listen address must not be empty")
	ErrLogLevelUnknown = errors.New("unknown log level")
)
