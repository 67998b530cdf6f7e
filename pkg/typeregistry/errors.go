package typeregistry

import (
	"errors"
	"fmt"
)

// ErrUnknownTypeID is matched by every lookup failure for an id outside the
// known set. Use errors.Is to test for it.
var ErrUnknownTypeID = errors.New("unknown type id")

// UnknownTypeIDError carries the id that failed to resolve.
type UnknownTypeIDError struct {
	ID TypeID
}

func (e *UnknownTypeIDError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnknownTypeID, int32(e.ID))
}

func (e *UnknownTypeIDError) Is(target error) bool {
	return target == ErrUnknownTypeID
}
