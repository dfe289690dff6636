package manifest

import (
	"errors"
	"fmt"
)

var (
	ErrLineFormat = errors.New("invalid line format")
	ErrWorkshopID = errors.New("invalid workshop ID")
	ErrModName    = errors.New("invalid mod name, must be a valid file name")
)

// SyntaxError describes an offending line or token. It matches both
// Kind (manager.ErrConfiguration or manager.ErrModListValidation)
// and Err with errors.Is.
type SyntaxError struct {
	Kind error
	Path string
	Line int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.Path, e.Line, e.Err, e.Text)
}

func (e *SyntaxError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
