package validators

import "errors"

var (
	// ErrUnsupportedType is returned for values that are not structs or
	// pointers to structs.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrValidation wraps every rule violation. The wrapped message lists
	// the offending fields by their JSON names.
	ErrValidation = errors.New("validation failed")
)
