package errors

import "strings"

// DuplicateKeyError is returned by repositories when a write hits a storage
// uniqueness constraint. Fields names the colliding columns when known.
type DuplicateKeyError struct {
	Fields []string
}

func (e *DuplicateKeyError) Error() string {
	if len(e.Fields) == 0 {
		return ErrDuplicateValue.Error()
	}
	return ErrDuplicateValue.Error() + " (" + strings.Join(e.Fields, ", ") + ")"
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateValue
}
