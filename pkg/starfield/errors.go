package starfield

import (
	"fmt"

	"github.com/matzehuels/starfield/pkg/errors"
)

// ErrMissingTarget matches any *MissingTargetError via errors.Is.
var ErrMissingTarget = &MissingTargetError{}

// MissingTargetError reports that the star container does not exist when
// initialization runs. Nothing is appended when it is returned.
type MissingTargetError struct {
	ID string // element id that was looked up; empty for a nil container
}

func (e *MissingTargetError) Error() string {
	if e.ID == "" {
		return "starfield: missing target container"
	}
	return fmt.Sprintf("starfield: missing target container #%s", e.ID)
}

// Is makes every MissingTargetError match ErrMissingTarget.
func (e *MissingTargetError) Is(target error) bool {
	_, ok := target.(*MissingTargetError)
	return ok
}

// Code returns the error code for this error type.
func (e *MissingTargetError) Code() errors.Code {
	return errors.ErrCodeMissingTarget
}
